package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	zl "github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zl.Level
	}{
		{in: DebugLevel, want: zl.DebugLevel},
		{in: InfoLevel, want: zl.InfoLevel},
		{in: WarnLevel, want: zl.WarnLevel},
		{in: ErrorLevel, want: zl.ErrorLevel},
		{in: "verbose", want: zl.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, getLogLevel(tt.in))
		})
	}
}

func TestErrorIncludesLocation(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Error(errors.New("boom"), "something failed")

	out := buf.String()
	assert.Contains(t, out, "something failed")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, `"loc":"`)
	assert.Contains(t, out, "logger_test.go")
}

func TestHelpersReportCallerLocation(t *testing.T) {
	tests := []struct {
		name string
		log  func()
	}{
		{name: "debugf", log: func() { Debugf("loading %s", "config") }},
		{name: "info", log: func() { Info("started") }},
		{name: "warnf", log: func() { Warnf("slow %d", 3) }},
		{name: "errorf without error", log: func() { Errorf(nil, "failed %s", "twice") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)

			tt.log()

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Contains(t, line[lineOfCode], "logger_test.go:")
			assert.NotContains(t, line[lineOfCode], "actions.go")
		})
	}
}

func TestAccess(t *testing.T) {
	tests := []struct {
		name   string
		req    Request
		level  zl.Level
		userID interface{}
	}{
		{
			name:   "authenticated ok",
			req:    Request{Method: "GET", Path: "/v1/products", Status: 200, Latency: 15 * time.Millisecond, ClientIP: "10.0.0.1", UserID: "42"},
			level:  zl.InfoLevel,
			userID: "42",
		},
		{
			name:  "anonymous unauthorized",
			req:   Request{Method: "GET", Path: "/v1/user", Status: 401, ClientIP: "10.0.0.1"},
			level: zl.WarnLevel,
		},
		{
			name:   "server error",
			req:    Request{Method: "POST", Path: "/v1/products", Status: 500, ClientIP: "10.0.0.2", UserID: "7"},
			level:  zl.ErrorLevel,
			userID: "7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)

			Access(tt.req)

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, zl.LevelFieldMarshalFunc(tt.level), line[zl.LevelFieldName])
			assert.Equal(t, tt.req.Method, line[fieldMethod])
			assert.Equal(t, tt.req.Path, line[fieldPath])
			assert.Equal(t, float64(tt.req.Status), line[fieldStatus])
			assert.Equal(t, float64(tt.req.Latency.Milliseconds()), line[fieldLatency])
			assert.Equal(t, tt.req.ClientIP, line[fieldClientIP])
			assert.Equal(t, tt.userID, line[fieldUserID])
			assert.NotContains(t, line, lineOfCode)
		})
	}
}
