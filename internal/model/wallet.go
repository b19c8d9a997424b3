package model

import (
	"fmt"

	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/common"
)

// WalletInfo - данные подключенного кошелька
type WalletInfo struct {
	Address common.Address
	Balance string // Баланс в нативной валюте (ether), десятичная строка
	ChainID uint64
}

// WalletSession - открытая сессия с провайдером кошелька
type WalletSession struct {
	Provider eip1193.Provider
	Account  common.Address
	ChainID  uint64
}

// NativeCurrency - метаданные нативной валюты сети
type NativeCurrency struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals uint8  `yaml:"decimals"`
}

// Network - описание поддерживаемой тестовой сети
type Network struct {
	Key            string         `yaml:"key"`
	ChainID        uint64         `yaml:"chain_id"`
	Name           string         `yaml:"name"`
	NativeCurrency NativeCurrency `yaml:"native_currency"`
	RPCURLs        []string       `yaml:"rpc_urls"`
	ExplorerURLs   []string       `yaml:"block_explorer_urls"`
}

// HexChainID - chain id в формате 0x..., как его ждёт кошелёк
func (n Network) HexChainID() string {
	return fmt.Sprintf("0x%x", n.ChainID)
}

// Networks - реестр сетей
type Networks []Network

// Find ищет сеть по chain id
func (ns Networks) Find(chainID uint64) (Network, bool) {
	for _, n := range ns {
		if n.ChainID == chainID {
			return n, true
		}
	}
	return Network{}, false
}

// ChainName - отображаемое имя сети
func (ns Networks) ChainName(chainID uint64) string {
	if n, ok := ns.Find(chainID); ok {
		return n.Name
	}
	switch chainID {
	case 1:
		return "Ethereum Mainnet"
	case 137:
		return "Polygon"
	}
	return fmt.Sprintf("Chain ID: %d", chainID)
}
