// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger writing JSON to stderr. verbose lowers
// the level to debug.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.DisableStacktrace = true
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// WithRun tags every entry of logger with a fresh run_id and returns the
// tagged logger and the ID.
func WithRun(logger *zap.Logger) (*zap.Logger, string) {
	id := NewRunID()
	return logger.With(zap.String("run_id", id)), id
}

// NewRunID returns a UUID v7, falling back to v4 if v7 generation fails.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
