package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log encodings accepted by --log-format.
const (
	logFormatConsole = "console"
	logFormatJSON    = "json"
)

// resolveLogFormat picks the flag value, then the environment, then console.
func resolveLogFormat(flagValue, envValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = envValue
	}
	switch f := strings.ToLower(format); f {
	case "", logFormatConsole:
		return logFormatConsole, nil
	case logFormatJSON:
		return logFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: log format %q (must be console or json)", ErrUsage, format)
	}
}

// newLogger builds a logger writing to w. Verbose lowers the level to
// Debug, quiet raises it to Error. Every entry carries the command name
// and a run_id unique to this invocation.
func newLogger(w io.Writer, format, command string, verbose, quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if format == logFormatJSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).With(
		zap.String("command", command),
		zap.String("run_id", uuid.NewString()),
	)
}
