// Package logging builds the diagnostic logger. The terminal belongs to the
// UI, so diagnostics go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	File    string
	Level   string
	Verbose bool
}

// New returns a JSON file logger. Verbose forces debug level. An empty File
// yields a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{opts.File}
	config.ErrorOutputPaths = []string{opts.File}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
