package wallet

import (
	"context"
	"sync"

	"monad_spin/internal/config"
	"monad_spin/internal/model"
	"monad_spin/internal/service"
	"monad_spin/pkg/eip1193"

	"go.uber.org/zap"
)

// Dialer открывает соединение с кошельком
type Dialer func(ctx context.Context) (eip1193.Provider, error)

type serv struct {
	dial     Dialer
	networks model.Networks
	logger   *zap.Logger

	mtx      sync.RWMutex
	provider eip1193.Provider
	attached bool
	session  *model.WalletSession

	subMtx       sync.RWMutex
	accountsSubs []func(accounts []string)
	chainSubs    []func(chainID uint64)
}

// NewWalletGateway Создать шлюз кошелька. dial == nil означает, что кошелька нет
func NewWalletGateway(cfg config.WalletConfig, dial Dialer, logger *zap.Logger) service.WalletGateway {
	return &serv{
		dial:     dial,
		networks: cfg.Networks(),
		logger:   logger,
	}
}

// NewDialer - подключение к JSON-RPC эндпоинту кошелька из конфига
func NewDialer(cfg config.WalletConfig, logger *zap.Logger) Dialer {
	if cfg.ProviderURL() == "" {
		return nil
	}
	return func(ctx context.Context) (eip1193.Provider, error) {
		return eip1193.Dial(ctx, cfg.ProviderURL(), eip1193.Options{
			EventPollInterval: cfg.EventPollInterval(),
			Logger:            logger,
		})
	}
}

func (s *serv) Networks() model.Networks {
	return s.networks
}

// Session возвращает копию текущей сессии
func (s *serv) Session() (*model.WalletSession, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	if s.session == nil {
		return nil, false
	}
	sess := *s.session
	return &sess, true
}

// Disconnect забывает сессию. Пока есть подписчики, провайдер и его наблюдатель
// остаются открытыми, чтобы accountsChanged пришёл и после отключения.
// Разрешения в кошельке не отзываются
func (s *serv) Disconnect() {
	s.subMtx.RLock()
	subscribed := len(s.accountsSubs) > 0 || len(s.chainSubs) > 0
	s.subMtx.RUnlock()

	s.mtx.Lock()
	hadSession := s.session != nil
	s.session = nil
	p := s.provider
	if subscribed {
		s.mtx.Unlock()
		if hadSession {
			s.logger.Info("wallet session dropped, still listening for wallet events")
		}
		return
	}
	s.provider = nil
	s.attached = false
	s.mtx.Unlock()

	if p == nil {
		return
	}
	p.RemoveAllListeners(eip1193.AccountsChanged)
	p.RemoveAllListeners(eip1193.ChainChanged)
	p.Close()
	s.logger.Info("wallet disconnected")
}

// currentProvider возвращает открытого провайдера или подключается заново
func (s *serv) currentProvider(ctx context.Context) (eip1193.Provider, error) {
	s.mtx.RLock()
	p := s.provider
	s.mtx.RUnlock()
	if p != nil {
		return p, nil
	}

	if s.dial == nil {
		return nil, model.ErrNoProvider
	}
	p, err := s.dial(ctx)
	if err != nil {
		return nil, model.NewError(model.ErrorCodeProvider, "failed to reach wallet provider", err)
	}

	s.mtx.Lock()
	if s.provider != nil {
		// Параллельный Connect успел раньше
		existing := s.provider
		s.mtx.Unlock()
		p.Close()
		return existing, nil
	}
	s.provider = p
	s.mtx.Unlock()

	s.attachListeners()
	return p, nil
}
