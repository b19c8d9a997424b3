package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"monad_spin/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
reward_tables:
  - name: coins
    variant: coins
    rewards:
      - { label: "10", category: "1x", color: "bg-blue-500", points: 10 }
      - { label: "25", category: "2x", color: "bg-green-500", points: 25 }
  - name: broken
    variant: lottery
    rewards:
      - { label: "x", category: "x", color: "x", points: 1 }
networks:
  - key: sepolia
    chain_id: 11155111
    name: Sepolia Testnet
    native_currency: { name: Ethereum, symbol: ETH, decimals: 18 }
    rpc_urls: ["https://sepolia.infura.io/v3/"]
    block_explorer_urls: ["https://sepolia.etherscan.io/"]
  - key: monad
    name: Monad Testnet
    native_currency: { name: Monad, symbol: MON, decimals: 18 }
    rpc_urls: ["https://testnet-rpc.monad.xyz/"]
    block_explorer_urls: ["https://testnet.monadexplorer.com/"]
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o600))
	return path
}

func TestNewGameConfigFromYAML(t *testing.T) {
	path := writeConfig(t)

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := NewGameConfigFromYAML(path)
		require.NoError(t, err)

		assert.Equal(t, 3*time.Second, cfg.SpinDuration())
		assert.Equal(t, 2*time.Second, cfg.ClaimedResetDelay())
		assert.Equal(t, 30*time.Second, cfg.StatsPollInterval())
		assert.Equal(t, time.Second, cfg.CountdownTick())
		assert.Equal(t, model.VariantCoins, cfg.RewardTable().Variant)
		assert.Len(t, cfg.RewardTable().Rewards, 2)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(spinDurationEnvName, "150ms")
		cfg, err := NewGameConfigFromYAML(path)
		require.NoError(t, err)
		assert.Equal(t, 150*time.Millisecond, cfg.SpinDuration())
	})

	t.Run("UnknownTable", func(t *testing.T) {
		t.Setenv(rewardTableEnvName, "missing")
		_, err := NewGameConfigFromYAML(path)
		assert.Error(t, err)
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		t.Setenv(rewardTableEnvName, "broken")
		_, err := NewGameConfigFromYAML(path)
		assert.Error(t, err)
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		t.Setenv(noticeTTLEnvName, "soon")
		_, err := NewGameConfigFromYAML(path)
		assert.Error(t, err)
	})
}

func TestNewWalletConfigFromYAML(t *testing.T) {
	path := writeConfig(t)

	t.Run("MonadChainIDDefault", func(t *testing.T) {
		cfg, err := NewWalletConfigFromYAML(path)
		require.NoError(t, err)

		assert.Equal(t, uint64(11155111), cfg.TargetChainID())
		n, ok := cfg.Networks().Find(10143)
		require.True(t, ok)
		assert.Equal(t, "Monad Testnet", n.Name)
		assert.Equal(t, "0x27a7", n.HexChainID())

		_, ok = cfg.Networks().Find(666)
		assert.False(t, ok)
	})

	t.Run("MonadChainIDOverride", func(t *testing.T) {
		t.Setenv(monadChainIDEnvName, "0x29a")
		cfg, err := NewWalletConfigFromYAML(path)
		require.NoError(t, err)
		assert.Equal(t, "Monad Testnet", cfg.Networks().ChainName(666))
	})

	t.Run("TargetNotInRegistry", func(t *testing.T) {
		t.Setenv(targetChainIDEnvName, "1")
		_, err := NewWalletConfigFromYAML(path)
		assert.Error(t, err)
	})
}

func TestNewContractConfig(t *testing.T) {
	cfg, err := NewContractConfig()
	require.NoError(t, err)
	assert.Equal(t, "0xffDDC37C8d6f91c5Eb40399575F599bf3c5a5BEc", cfg.Address().Hex())
	assert.Equal(t, "1000000000000000", cfg.ClaimFee().String())
	assert.Equal(t, uint64(200000), cfg.ClaimGasLimit())
	assert.Equal(t, uint64(150000), cfg.ConvertGasLimit())

	t.Setenv(contractAddressEnvName, "not-an-address")
	_, err = NewContractConfig()
	assert.Error(t, err)
}
