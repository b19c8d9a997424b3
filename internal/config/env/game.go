package env

import (
	"errors"
	"fmt"
	"monad_spin/internal/config"
	"monad_spin/internal/model"
	"time"
)

const (
	spinDurationEnvName      = "SPIN_DURATION"
	claimedResetDelayEnvName = "CLAIMED_RESET_DELAY"
	noticeTTLEnvName         = "NOTICE_TTL"
	statsPollIntervalEnvName = "STATS_POLL_INTERVAL"
	countdownTickEnvName     = "COUNTDOWN_TICK"
	rewardTableEnvName       = "REWARD_TABLE"

	defaultSpinDuration      = 3 * time.Second
	defaultClaimedResetDelay = 2 * time.Second
	defaultNoticeTTL         = 5 * time.Second
	defaultStatsPollInterval = 30 * time.Second
	defaultCountdownTick     = time.Second
	defaultRewardTable       = "coins"
)

type gameConfig struct {
	spinDuration      time.Duration
	claimedResetDelay time.Duration
	noticeTTL         time.Duration
	statsPollInterval time.Duration
	countdownTick     time.Duration
	rewardTable       model.RewardTable
}

// NewGameConfigFromYAML читает тайминги из env, а активную таблицу наград
// (REWARD_TABLE) из yaml файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	fileCfg, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}

	table, err := selectRewardTable(fileCfg.RewardTables, stringFromEnv(rewardTableEnvName, defaultRewardTable))
	if err != nil {
		return nil, err
	}

	cfg := &gameConfig{rewardTable: table}

	durations := []struct {
		name string
		def  time.Duration
		dst  *time.Duration
	}{
		{spinDurationEnvName, defaultSpinDuration, &cfg.spinDuration},
		{claimedResetDelayEnvName, defaultClaimedResetDelay, &cfg.claimedResetDelay},
		{noticeTTLEnvName, defaultNoticeTTL, &cfg.noticeTTL},
		{statsPollIntervalEnvName, defaultStatsPollInterval, &cfg.statsPollInterval},
		{countdownTickEnvName, defaultCountdownTick, &cfg.countdownTick},
	}
	for _, d := range durations {
		*d.dst, err = durationFromEnv(d.name, d.def)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func NewGameConfig() (config.GameConfig, error) {
	return NewGameConfigFromYAML(configPath())
}

func selectRewardTable(tables []model.RewardTable, name string) (model.RewardTable, error) {
	for _, t := range tables {
		if t.Name != name {
			continue
		}
		if len(t.Rewards) == 0 {
			return model.RewardTable{}, fmt.Errorf("reward table %q is empty", name)
		}
		switch t.Variant {
		case model.VariantCoins, model.VariantNFTWhitelist:
		default:
			return model.RewardTable{}, fmt.Errorf("reward table %q has unknown variant %q", name, t.Variant)
		}
		for _, r := range t.Rewards {
			if r.Points < 0 {
				return model.RewardTable{}, errors.New("reward points must not be negative: " + r.Label)
			}
		}
		return t, nil
	}
	return model.RewardTable{}, fmt.Errorf("reward table %q not found", name)
}

func (cfg *gameConfig) SpinDuration() time.Duration {
	return cfg.spinDuration
}

func (cfg *gameConfig) ClaimedResetDelay() time.Duration {
	return cfg.claimedResetDelay
}

func (cfg *gameConfig) NoticeTTL() time.Duration {
	return cfg.noticeTTL
}

func (cfg *gameConfig) StatsPollInterval() time.Duration {
	return cfg.statsPollInterval
}

func (cfg *gameConfig) CountdownTick() time.Duration {
	return cfg.countdownTick
}

func (cfg *gameConfig) RewardTable() model.RewardTable {
	return cfg.rewardTable
}
