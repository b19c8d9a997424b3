package wallet

import (
	"context"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"
	"monad_spin/pkg/units"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// Connect запрашивает доступ к аккаунтам и собирает WalletInfo:
// адрес первого аккаунта, баланс в нативной валюте и chain id
func (s *serv) Connect(ctx context.Context) (*model.WalletInfo, error) {
	p, err := s.currentProvider(ctx)
	if err != nil {
		return nil, err
	}

	var accounts []string
	if err := eip1193.Call(ctx, p, &accounts, "eth_requestAccounts"); err != nil {
		return nil, providerError("failed to connect wallet", err)
	}
	if len(accounts) == 0 || !common.IsHexAddress(accounts[0]) {
		return nil, model.NewError(model.ErrorCodeProvider, "failed to connect wallet: no accounts returned", nil)
	}
	address := common.HexToAddress(accounts[0])

	balance, err := readBalance(ctx, p, address)
	if err != nil {
		return nil, providerError("failed to connect wallet", err)
	}

	var chainID hexutil.Uint64
	if err := eip1193.Call(ctx, p, &chainID, "eth_chainId"); err != nil {
		return nil, providerError("failed to connect wallet", err)
	}

	s.mtx.Lock()
	s.session = &model.WalletSession{Provider: p, Account: address, ChainID: uint64(chainID)}
	s.mtx.Unlock()

	s.logger.Info("wallet connected",
		zap.String("address", address.Hex()),
		zap.Uint64("chain_id", uint64(chainID)),
	)

	return &model.WalletInfo{
		Address: address,
		Balance: balance,
		ChainID: uint64(chainID),
	}, nil
}

func readBalance(ctx context.Context, p eip1193.Requester, address common.Address) (string, error) {
	var wei hexutil.Big
	if err := eip1193.Call(ctx, p, &wei, "eth_getBalance", address, "latest"); err != nil {
		return "", err
	}
	return units.FormatEther(wei.ToInt()), nil
}

// providerError переводит ошибку кошелька в код: 4001 - отказ пользователя, остальное - сбой провайдера
func providerError(message string, err error) error {
	if eip1193.HasCode(err, eip1193.CodeUserRejected) {
		return model.NewError(model.ErrorCodeUserRejected, message, err)
	}
	return model.NewError(model.ErrorCodeProvider, message, err)
}
