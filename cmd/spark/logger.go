package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// configureRuntimeLogger writes JSON logs to path since the TUI owns the
// terminal. If the file cannot be opened the logger falls back to stderr.
func configureRuntimeLogger(path string, debug bool) (*zap.Logger, func()) {
	config := zap.NewProductionConfig()
	config.Encoding = "json"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			config.OutputPaths = []string{path}
			config.ErrorOutputPaths = []string{path}
		}
	}

	logger, err := config.Build()
	if err != nil {
		logger, err = zap.NewProduction()
		if err != nil {
			return zap.NewNop(), func() {}
		}
	}
	return logger, func() {
		_ = logger.Sync()
	}
}
