package utils

import (
	"testing"

	"buckler/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevelKnownNames(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug", zapcore.InfoLevel))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn", zapcore.InfoLevel))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error", zapcore.InfoLevel))
}

func TestParseLevelFallsBack(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("", zapcore.DebugLevel))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose", zapcore.InfoLevel))
}

func TestLoggerHonorsConfiguredLevel(t *testing.T) {
	prevLevel := config.AppConfig.LogLevel
	prevLogger := Logger
	t.Cleanup(func() {
		config.AppConfig.LogLevel = prevLevel
		Logger = prevLogger
	})

	config.AppConfig.LogLevel = "warn"
	Logger = nil
	l := GetLogger()

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}
