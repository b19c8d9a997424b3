package env

import (
	"errors"
	"fmt"
	"monad_spin/internal/config"
	"monad_spin/internal/model"
	"time"
)

const (
	walletProviderURLEnvName = "WALLET_PROVIDER_URL"
	walletEventPollEnvName   = "WALLET_EVENT_POLL_INTERVAL"
	targetChainIDEnvName     = "TARGET_CHAIN_ID"
	monadChainIDEnvName      = "MONAD_CHAIN_ID"
	defaultWalletEventPoll   = 2 * time.Second
	defaultTargetChainID     = 11155111 // Sepolia
	defaultMonadChainID      = 10143    // 0x27a7
	monadNetworkKey          = "monad"
)

type walletConfig struct {
	providerURL       string
	eventPollInterval time.Duration
	targetChainID     uint64
	networks          model.Networks
}

// NewWalletConfigFromYAML читает настройки кошелька из env и реестр сетей из yaml.
// Chain id сети Monad задаётся только через MONAD_CHAIN_ID
func NewWalletConfigFromYAML(path string) (config.WalletConfig, error) {
	fileCfg, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}
	if len(fileCfg.Networks) == 0 {
		return nil, errors.New("no networks configured")
	}

	pollInterval, err := durationFromEnv(walletEventPollEnvName, defaultWalletEventPoll)
	if err != nil {
		return nil, err
	}

	target, err := uintFromEnv(targetChainIDEnvName, defaultTargetChainID)
	if err != nil {
		return nil, err
	}

	monadID, err := uintFromEnv(monadChainIDEnvName, defaultMonadChainID)
	if err != nil {
		return nil, err
	}

	networks := make(model.Networks, len(fileCfg.Networks))
	copy(networks, fileCfg.Networks)
	for i := range networks {
		if networks[i].Key == monadNetworkKey {
			networks[i].ChainID = monadID
		}
		if networks[i].ChainID == 0 {
			return nil, fmt.Errorf("network %q has no chain id", networks[i].Key)
		}
	}

	if _, ok := networks.Find(target); !ok {
		return nil, fmt.Errorf("target chain %d is not in the network registry", target)
	}

	return &walletConfig{
		providerURL:       stringFromEnv(walletProviderURLEnvName, ""),
		eventPollInterval: pollInterval,
		targetChainID:     target,
		networks:          networks,
	}, nil
}

func NewWalletConfig() (config.WalletConfig, error) {
	return NewWalletConfigFromYAML(configPath())
}

func (cfg *walletConfig) ProviderURL() string {
	return cfg.providerURL
}

func (cfg *walletConfig) EventPollInterval() time.Duration {
	return cfg.eventPollInterval
}

func (cfg *walletConfig) TargetChainID() uint64 {
	return cfg.targetChainID
}

func (cfg *walletConfig) Networks() model.Networks {
	return cfg.networks
}
