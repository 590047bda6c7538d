package logger

import (
	"fmt"

	"product-api/pkg/utils"

	zl "github.com/rs/zerolog"
)

// located tags an event with the file and line that called the exported helper
func located(event *zl.Event) *zl.Event {
	return event.Str(lineOfCode, utils.GetFileAndLoC(2))
}

// errorEvent attaches err when there is one
func errorEvent(err error) *zl.Event {
	if err != nil {
		return log.engine.Err(err)
	}
	return log.engine.Error()
}

// Debug logs a debug message
func Debug(message string) {
	located(log.engine.Debug()).Msg(message)
}

// Debugf logs a debug message given a template and arguments
func Debugf(template string, args ...interface{}) {
	located(log.engine.Debug()).Msgf(template, args...)
}

// Info logs an info message
func Info(message string) {
	located(log.engine.Info()).Msg(message)
}

// Infof logs an info message given a template and arguments
func Infof(template string, args ...interface{}) {
	located(log.engine.Info()).Msgf(template, args...)
}

// Warn logs a warning message
func Warn(message string) {
	located(log.engine.Warn()).Msg(message)
}

// Warnf logs a warning message given a template and arguments
func Warnf(template string, args ...interface{}) {
	located(log.engine.Warn()).Msgf(template, args...)
}

// Error logs an error message with the line of code where the log is called
func Error(err error, message string) {
	located(errorEvent(err)).Msg(message)
}

func Errorf(err error, template string, args ...interface{}) {
	located(errorEvent(err)).Msg(fmt.Sprintf(template, args...))
}

func Fatalf(template string, args ...interface{}) {
	located(log.engine.Fatal()).Msgf(template, args...)
}
