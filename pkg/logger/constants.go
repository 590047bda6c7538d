package logger

// log level strings
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// log format strings
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// custom error fields
const (
	lineOfCode = "loc"
)

// access log fields
const (
	fieldMethod   = "method"
	fieldPath     = "path"
	fieldStatus   = "status"
	fieldLatency  = "latency_ms"
	fieldClientIP = "client_ip"
	fieldUserID   = "user_id"
)
