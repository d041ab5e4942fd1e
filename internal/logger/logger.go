// Package logger wraps zap for the service, the HTTP layer and watermill.
package logger

import (
	"go.uber.org/zap"
)

// Logger holds the process logger
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger that discards everything until Init is called
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production JSON logger at the given level
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}
