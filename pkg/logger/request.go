package logger

import (
	"time"

	zl "github.com/rs/zerolog"
)

// Request describes one served HTTP request
type Request struct {
	Method   string
	Path     string
	Status   int
	Latency  time.Duration
	ClientIP string
	UserID   string // empty for anonymous requests
}

// Access writes one access log line. 5xx responses log at error level, 4xx at warn.
func Access(r Request) {
	accessEvent(r.Status).
		Str(fieldMethod, r.Method).
		Str(fieldPath, r.Path).
		Int(fieldStatus, r.Status).
		Int64(fieldLatency, r.Latency.Milliseconds()).
		Str(fieldClientIP, r.ClientIP).
		Func(func(e *zl.Event) {
			if r.UserID != "" {
				e.Str(fieldUserID, r.UserID)
			}
		}).
		Msgf("%s %s", r.Method, r.Path)
}

func accessEvent(status int) *zl.Event {
	switch {
	case status >= 500:
		return log.engine.Error()
	case status >= 400:
		return log.engine.Warn()
	default:
		return log.engine.Info()
	}
}
