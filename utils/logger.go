package utils

import (
	"log"

	"buckler/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration. The LOG_LEVEL knob
// overrides the environment default (info in production, debug elsewhere).
func InitializeLogger() {
	var cfg zap.Config
	fallback := zapcore.DebugLevel

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
		fallback = zapcore.InfoLevel
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(config.AppConfig.LogLevel, fallback))

	// Create logger
	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// parseLevel maps the configured level name onto a zap level. Empty or
// unrecognized values keep the environment default.
func parseLevel(name string, fallback zapcore.Level) zapcore.Level {
	if name == "" {
		return fallback
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fallback
	}
	return lvl
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
