package token

import (
	"context"
	"fmt"
	"sync"

	"monad_spin/internal/config"
	"monad_spin/internal/model"
	"monad_spin/internal/service"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

type serv struct {
	cfg    config.ContractConfig
	abi    abi.ABI
	logger *zap.Logger

	mtx     sync.RWMutex
	session *model.WalletSession

	watchMtx      sync.Mutex
	claimedSubs   []func(model.TokensClaimed)
	convertedSubs []func(model.PointsConverted)
	watchCancel   context.CancelFunc
	watchDone     chan struct{}
}

// NewTokenGateway Создать шлюз контракта SpinToken по адресу из конфига
func NewTokenGateway(cfg config.ContractConfig, logger *zap.Logger) (service.TokenGateway, error) {
	parsed, err := parseABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}
	return &serv{
		cfg:    cfg,
		abi:    parsed,
		logger: logger,
	}, nil
}

// Initialize привязывает контракт к сессии кошелька.
// Вызывается после подключения кошелька и до любых других методов
func (s *serv) Initialize(session *model.WalletSession) error {
	if session == nil || session.Provider == nil {
		return model.ErrNotConnected
	}
	sess := *session

	s.mtx.Lock()
	s.session = &sess
	s.mtx.Unlock()

	s.logger.Debug("token contract initialized",
		zap.String("contract", s.cfg.Address().Hex()),
		zap.String("account", sess.Account.Hex()),
	)
	return nil
}

// Close отвязывает контракт от сессии и останавливает подписки
func (s *serv) Close() {
	s.RemoveAllListeners()

	s.mtx.Lock()
	s.session = nil
	s.mtx.Unlock()
}

func (s *serv) currentSession() (*model.WalletSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.session == nil {
		return nil, model.ErrContractNotInitialized
	}
	return s.session, nil
}
