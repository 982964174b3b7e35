package logger

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// GetLogger returns the shared zap.Logger, built once. APP_ENV=production switches to the JSON
// production config, LOG_LEVEL overrides the level. Development config by default.
func GetLogger() *zap.Logger {
	once.Do(func() {
		_ = godotenv.Load()

		cfg := zap.NewDevelopmentConfig()
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		}
		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			level, err := zapcore.ParseLevel(lvl)
			if err == nil {
				cfg.Level = zap.NewAtomicLevelAt(level)
			}
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			panic("failed logger setup : " + err.Error())
		}
	})
	return logger
}
