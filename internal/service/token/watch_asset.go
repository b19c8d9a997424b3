package token

import (
	"context"

	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type watchAssetOptions struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
	Image    string         `json:"image"`
}

type watchAssetParams struct {
	Type    string            `json:"type"`
	Options watchAssetOptions `json:"options"`
}

// AddTokenToWallet просит кошелёк показать токен SPIN. Ошибки не возвращает
func (s *serv) AddTokenToWallet(ctx context.Context) bool {
	sess, err := s.currentSession()
	if err != nil {
		return false
	}

	var added bool
	err = eip1193.Call(ctx, sess.Provider, &added, "wallet_watchAsset", watchAssetParams{
		Type: "ERC20",
		Options: watchAssetOptions{
			Address:  s.cfg.Address(),
			Symbol:   s.cfg.TokenSymbol(),
			Decimals: s.cfg.TokenDecimals(),
			Image:    s.cfg.TokenImage(),
		},
	})
	if err != nil {
		s.logger.Warn("failed to add token to wallet", zap.Error(err))
		return false
	}
	return added
}
