package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. production json logger, level taken from LOG_LEVEL (debug, info, warn, error). default info.
func New() (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if lv := strings.TrimSpace(os.Getenv("LOG_LEVEL")); lv != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(lv))); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	cfg.DisableStacktrace = true

	return cfg.Build()
}

// NewDevelopment. human readable console logger for cmd tools.
func NewDevelopment() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
