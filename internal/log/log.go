// Package log builds the process-wide zap logger for the CLI.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger writing human-readable output to stderr.
// Verbose enables debug-level output for pipeline tracing.
func New(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
