package env

import (
	"monad_spin/internal/config"
	"os"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig - DSN необязателен, без него журнал игры отключен
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) Enabled() bool {
	return len(cfg.dsn) > 0
}
