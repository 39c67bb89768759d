// Package logging provides the structured logger shared across the
// application. Production mode emits JSON, development mode emits
// console output.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's sugared logger. Callers log with the keysAndValues
// forms (Infow, Debugw, ...).
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger for the given environment. Level is one of
// debug, info, warn, error; empty keeps the environment default.
func New(env, level string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zl.Sugar()}, nil
}

// NewNop returns a logger that discards all output. Used in tests and
// as the default when no logger is supplied.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// With returns a child logger with the given context attached.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{l.SugaredLogger.With(keysAndValues...)}
}

// Named returns a child logger with a component name segment.
func (l *Logger) Named(name string) *Logger {
	return &Logger{l.SugaredLogger.Named(name)}
}

// Sync flushes buffered log entries. Errors are ignored; stderr sinks
// cannot be synced on all platforms.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
