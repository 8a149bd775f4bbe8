// Package logging adapts zap's structured logger to the core.Logger
// interface the renderer's controller and scheduler expect, the same
// role the source's plain fmt.Printf DefaultLogger played.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// ZapLogger implements core.Logger on top of a *zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a production zap logger (JSON, info level) wrapped as a
// core.Logger.
func New() (*ZapLogger, error) {
	base, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logging: building zap logger: %w", err)
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

// NewDevelopment builds a human-readable console logger; the pathtrace
// and viewer commands use it for every run, image mode included.
func NewDevelopment() (*ZapLogger, error) {
	base, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("logging: building zap logger: %w", err)
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

// Printf implements core.Logger.
func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Sync flushes any buffered log entries; call before process exit.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
