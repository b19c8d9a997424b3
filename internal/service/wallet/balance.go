package wallet

import (
	"context"

	"monad_spin/internal/model"

	"github.com/ethereum/go-ethereum/common"
)

// GetBalance - баланс адреса в нативной валюте, строкой в ether
func (s *serv) GetBalance(ctx context.Context, address common.Address) (string, error) {
	sess, ok := s.Session()
	if !ok {
		return "", model.ErrNotConnected
	}

	balance, err := readBalance(ctx, sess.Provider, address)
	if err != nil {
		return "", providerError("failed to read balance", err)
	}
	return balance, nil
}
