package contracts

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	// InfoLevel is the default: device selection, capture start and stop.
	InfoLevel LogLevel = iota
	// DebugLevel adds per-packet detail such as dropped fragments and sent bytes.
	DebugLevel
	// ErrorLevel reports failed transport calls.
	ErrorLevel
	// WarnLevel reports lost data, e.g. full packet or subscriber buffers.
	WarnLevel
	// FatalLevel logs and exits.
	FatalLevel
)

var logLevelNames = [...]string{
	InfoLevel:  "info",
	DebugLevel: "debug",
	ErrorLevel: "error",
	WarnLevel:  "warn",
	FatalLevel: "fatal",
}

func (l LogLevel) String() string {
	if l >= 0 && int(l) < len(logLevelNames) {
		return logLevelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLogLevel accepts the String() names, case-insensitively.
func ParseLogLevel(s string) (LogLevel, error) {
	for l, name := range logLevelNames {
		if strings.EqualFold(s, name) {
			return LogLevel(l), nil
		}
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog writes to stderr.
	ConsoleLog LogDestination = "console"
	// FileLog appends to the file passed to SetDestination.
	FileLog LogDestination = "file"
)

// Field builds typed key/value pairs for log entries. Obtain one from
// Logger.Field.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
	Bytes(key string, val []byte) Field
}

// Logger is the structured logger injected into transports, parsers and sessions.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}

// Syncer is implemented by loggers that buffer output.
type Syncer interface {
	Sync() error
}
