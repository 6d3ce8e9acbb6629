// Package logger holds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps ordinary invocations quiet.
const DefaultLevel = zerolog.WarnLevel

// Logger is disabled until Init is called.
var Logger = zerolog.Nop()

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// return DefaultLevel.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return DefaultLevel
	}
}

// Init configures Logger to write console-formatted lines to w (stderr when nil).
func Init(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
	}
	Logger = zerolog.New(consoleWriter).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}
