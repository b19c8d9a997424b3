package service

import (
	"context"

	"monad_spin/internal/model"

	"github.com/ethereum/go-ethereum/common"
)

// WalletGateway - доступ к кошельку пользователя
type WalletGateway interface {
	Connect(ctx context.Context) (*model.WalletInfo, error)
	SwitchNetwork(ctx context.Context, chainID uint64) error
	Disconnect()

	SubscribeAccountsChanged(fn func(accounts []string))
	SubscribeChainChanged(fn func(chainID uint64))
	UnsubscribeAll()

	GetBalance(ctx context.Context, address common.Address) (string, error)
	Session() (*model.WalletSession, bool)
	Networks() model.Networks
}

// PendingTx - отправленная, но ещё не подтверждённая транзакция
type PendingTx interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*model.TxReceipt, error)
}

// TokenGateway - контракт токена SPIN
type TokenGateway interface {
	Initialize(session *model.WalletSession) error
	Close()

	GetTokenStats(ctx context.Context, address common.Address) (*model.TokenStats, error)
	GetContractInfo(ctx context.Context) (*model.ContractInfo, error)

	ClaimTokens(ctx context.Context) (PendingTx, error)
	ConvertPointsToTokens(ctx context.Context, points int64) (PendingTx, error)
	AddTokenToWallet(ctx context.Context) bool

	OnTokensClaimed(fn func(model.TokensClaimed))
	OnPointsConverted(fn func(model.PointsConverted))
	RemoveAllListeners()
}

// GameService - координатор игры, единственный владелец состояния сессии
type GameService interface {
	Start(ctx context.Context) error
	Stop()

	Connect(ctx context.Context) (*model.WalletInfo, error)
	Disconnect(ctx context.Context)
	SwitchNetwork(ctx context.Context, chainID uint64) error

	Spin(ctx context.Context) (*model.SpinResult, error)
	ClaimWinnings(ctx context.Context) (*model.Reward, error)

	RefreshToken(ctx context.Context) (*model.TokenStats, error)
	ClaimTokens(ctx context.Context) (*model.TxReceipt, error)
	ConvertPoints(ctx context.Context, points int64) (*model.TxReceipt, error)
	AddTokenToWallet(ctx context.Context) bool

	Snapshot() model.Session
	Rewards() model.RewardTable
	Networks() model.Networks
}

// JournalService - аудит действий игрока, ошибки только логируются
type JournalService interface {
	Record(ctx context.Context, event model.JournalEvent)
	RecordConversion(ctx context.Context, event model.JournalEvent)
}
