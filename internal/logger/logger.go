// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment. Production
// logs JSON; every other environment gets a human-readable console encoder.
// LOG_LEVEL overrides the default level (debug outside production, info in
// production).
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}

		if raw := os.Getenv("LOG_LEVEL"); raw != "" {
			if level, err := zapcore.ParseLevel(raw); err == nil {
				cfg.Level = zap.NewAtomicLevelAt(level)
			}
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// if Init has not been called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
