package config

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It stays a no-op until InitLogger runs,
// which keeps tests and library callers quiet.
var Logger = zap.NewNop()

// InitLogger builds Logger from the configured level. Debug mode switches to
// zap's development encoder.
func InitLogger(level string, debug bool) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(lvl)

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = logger

	Logger.Info("Zap logger initialized", zap.String("level", lvl.String()))
}
