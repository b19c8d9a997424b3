package env

import (
	"fmt"
	"monad_spin/internal/model"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnvName = "CONFIG_PATH"
	defaultConfigPath = "config.yaml"
)

// fileConfig - структура config.yaml
type fileConfig struct {
	RewardTables []model.RewardTable `yaml:"reward_tables"`
	Networks     []model.Network     `yaml:"networks"`
}

func configPath() string {
	return stringFromEnv(configPathEnvName, defaultConfigPath)
}

func readFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
