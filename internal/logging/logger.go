// Package logging configures the shared structured logger for the workplan
// generator. All components log through logr backed by zap; verbosity levels
// follow the usual convention where higher V() means chattier output.
package logging

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logger.V(). INFO-level messages use V(0).
const (
	DEBUG = 1
	TRACE = 2
)

// Log is the root logger. It defaults to a production zap configuration and
// is replaced by Setup at process start.
var Log = newLogger("info", false)

// Setup builds the root logger from the configured level ("debug", "info",
// "warn", "error") and output mode, and installs it as Log.
func Setup(level string, development bool) logr.Logger {
	Log = newLogger(level, development)
	return Log
}

// NewTestLogger returns a development-mode logger suitable for test suites
// and installs it as the root logger.
func NewTestLogger() logr.Logger {
	Log = newLogger("debug", true)
	return Log
}

// IntoContext embeds the logger into ctx for retrieval with FromContext.
func IntoContext(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger embedded in ctx, falling back to the root
// logger so callers never receive a discarding logger by accident.
func FromContext(ctx context.Context) logr.Logger {
	if logger, err := logr.FromContext(ctx); err == nil {
		return logger
	}
	return Log
}

func newLogger(level string, development bool) logr.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zapLog, err := cfg.Build()
	if err != nil {
		// The static configs above always build; fall back to a no-op
		// logger rather than panic during init.
		return logr.Discard()
	}
	return zapr.NewLogger(zapLog)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
