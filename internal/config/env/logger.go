package env

import (
	"fmt"
	"monad_spin/internal/config"
	"os"

	"go.uber.org/zap/zapcore"
)

const (
	logLevelEnvName    = "LOG_LEVEL"
	environmentEnvName = "ENVIRONMENT"
)

type loggerConfig struct {
	level       string
	environment string
}

func NewLoggerConfig() (config.LoggerConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	environment := os.Getenv(environmentEnvName)
	if len(environment) == 0 {
		environment = "development"
	}

	return &loggerConfig{
		level:       level,
		environment: environment,
	}, nil
}

func (cfg *loggerConfig) Level() string {
	return cfg.level
}

func (cfg *loggerConfig) Environment() string {
	return cfg.environment
}
