package wallet

import (
	"context"
	"fmt"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"

	"go.uber.org/zap"
)

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

type nativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type addChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    nativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

// SwitchNetwork просит кошелёк переключиться на сеть из реестра.
// Если кошелёк сеть не знает (4902), добавляем её, кошелёк переключается сам
func (s *serv) SwitchNetwork(ctx context.Context, chainID uint64) error {
	network, ok := s.networks.Find(chainID)
	if !ok {
		return model.NewError(model.ErrorCodeUnsupportedNetwork, fmt.Sprintf("chain %d is not supported", chainID), nil)
	}

	sess, ok := s.Session()
	if !ok {
		return model.ErrNotConnected
	}
	p := sess.Provider

	_, err := p.Request(ctx, "wallet_switchEthereumChain", switchChainParams{ChainID: network.HexChainID()})
	if err == nil {
		s.logger.Info("network switched", zap.String("network", network.Name))
		return nil
	}
	if !eip1193.HasCode(err, eip1193.CodeUnrecognizedChain) {
		return providerError("failed to switch network", err)
	}

	s.logger.Info("chain unknown to wallet, adding", zap.String("network", network.Name))
	_, err = p.Request(ctx, "wallet_addEthereumChain", addChainParams{
		ChainID:   network.HexChainID(),
		ChainName: network.Name,
		NativeCurrency: nativeCurrency{
			Name:     network.NativeCurrency.Name,
			Symbol:   network.NativeCurrency.Symbol,
			Decimals: network.NativeCurrency.Decimals,
		},
		RPCURLs:           network.RPCURLs,
		BlockExplorerURLs: network.ExplorerURLs,
	})
	if err != nil {
		return providerError("failed to add network", err)
	}
	return nil
}
