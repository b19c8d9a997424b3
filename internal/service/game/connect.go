package game

import (
	"context"

	"monad_spin/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Connect подключает кошелёк. Параллельные вызовы (кнопка и события кошелька)
// схлопываются в один запрос к кошельку
func (s *serv) Connect(ctx context.Context) (*model.WalletInfo, error) {
	v, err, _ := s.connectGroup.Do("connect", func() (interface{}, error) {
		return s.connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	info := *v.(*model.WalletInfo)
	return &info, nil
}

// errConnectCancelled - пока кошелёк отвечал, сессию закрыли через Disconnect
var errConnectCancelled = model.NewError(model.ErrorCodeInvalidState, "connection cancelled by disconnect", nil)

func (s *serv) connect(ctx context.Context) (*model.WalletInfo, error) {
	s.lifeMtx.Lock()
	generation := s.generation
	s.lifeMtx.Unlock()

	_ = s.repo.Update(func(sess *model.Session) error {
		sess.IsConnecting = true
		sess.Error = ""
		return nil
	})

	info, err := s.wallet.Connect(ctx)
	if err != nil {
		s.logger.Warn("wallet connection failed", zap.Error(err))
		_ = s.repo.Update(func(sess *model.Session) error {
			sess.IsConnecting = false
			sess.Error = err.Error()
			return nil
		})
		return nil, err
	}

	// Переключение на целевую сеть не обязательно: при ошибке остаёмся в текущей
	if info.ChainID != s.target {
		if err := s.wallet.SwitchNetwork(ctx, s.target); err != nil {
			s.logger.Warn("failed to switch to target network",
				zap.Uint64("chain_id", info.ChainID),
				zap.Uint64("target_chain_id", s.target),
				zap.Error(err),
			)
		} else if updated, err := s.wallet.Connect(ctx); err != nil {
			s.logger.Warn("failed to refresh wallet after network switch", zap.Error(err))
		} else {
			info = updated
		}
	}

	s.lifeMtx.Lock()
	if s.generation != generation {
		_ = s.repo.Update(func(sess *model.Session) error {
			if sess.State == model.StateDisconnected {
				sess.IsConnecting = false
			}
			return nil
		})
		s.lifeMtx.Unlock()
		s.logger.Info("wallet connected after disconnect, dropping it")
		s.wallet.Disconnect()
		return nil, errConnectCancelled
	}

	// Новая сессия: всё, что осталось от прошлой, останавливаем
	s.stopBackground()
	s.token.Close()

	sessionID := uuid.NewString()
	var snap model.Session
	_ = s.repo.Update(func(sess *model.Session) error {
		wallet := *info
		*sess = model.Session{
			ID:       sessionID,
			State:    model.StateConnected,
			Wallet:   &wallet,
			Rotation: sess.Rotation,
		}
		snap = sess.Clone()
		return nil
	})

	s.bindContract(sessionID)
	s.lifeMtx.Unlock()

	s.logger.Info("session started",
		zap.String("session_id", sessionID),
		zap.String("address", info.Address.Hex()),
		zap.Uint64("chain_id", info.ChainID),
	)
	s.record(snap, model.JournalConnect, 0, s.wallet.Networks().ChainName(info.ChainID), "")

	return info, nil
}

// bindContract подключает контракт к кошельку сессии и запускает фоновые задачи.
// Вызывается под lifeMtx
func (s *serv) bindContract(sessionID string) {
	if walletSession, ok := s.wallet.Session(); ok {
		if err := s.token.Initialize(walletSession); err != nil {
			s.logger.Warn("token contract initialization failed", zap.Error(err))
		} else {
			s.subscribeContractEvents(sessionID)
		}
	}
	s.startBackground(sessionID)
}

// subscribeContractEvents обновляет статистику, когда контракт сообщает о claim или конвертации
func (s *serv) subscribeContractEvents(sessionID string) {
	s.token.OnTokensClaimed(func(e model.TokensClaimed) {
		s.logger.Info("tokens claimed on-chain",
			zap.String("user", e.User.Hex()),
			zap.String("amount", e.Amount.String()),
			zap.Uint64("block", e.BlockNumber),
		)
		s.refreshOwnEvent(sessionID, e.User.Hex())
	})
	s.token.OnPointsConverted(func(e model.PointsConverted) {
		s.logger.Info("points converted on-chain",
			zap.String("user", e.User.Hex()),
			zap.String("points", e.Points.String()),
			zap.String("tokens", e.Tokens.String()),
			zap.Uint64("block", e.BlockNumber),
		)
		s.refreshOwnEvent(sessionID, e.User.Hex())
	})
}

func (s *serv) refreshOwnEvent(sessionID, user string) {
	snap := s.repo.Snapshot()
	if snap.ID != sessionID || snap.Wallet == nil || snap.Wallet.Address.Hex() != user {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.StatsPollInterval())
		defer cancel()
		_, _ = s.refresh(ctx, sessionID)
	}()
}
