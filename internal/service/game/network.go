package game

import (
	"context"
	"fmt"

	"monad_spin/internal/model"

	"go.uber.org/zap"
)

// SwitchNetwork переключает сеть кошелька, затем перечитывает WalletInfo.
// Одновременно выполняется только одно переключение
func (s *serv) SwitchNetwork(ctx context.Context, chainID uint64) error {
	var sessionID string
	err := s.repo.Update(func(sess *model.Session) error {
		switch {
		case sess.State == model.StateDisconnected:
			return model.ErrNotConnected
		case sess.IsSwitchingNetwork:
			return model.ErrActionInProgress
		}
		sess.IsSwitchingNetwork = true
		sessionID = sess.ID
		return nil
	})
	if err != nil {
		return err
	}
	defer s.clearFlag(sessionID, func(sess *model.Session) { sess.IsSwitchingNetwork = false })

	if err := s.wallet.SwitchNetwork(ctx, chainID); err != nil {
		msg := fmt.Sprintf("Failed to switch to %s network", s.wallet.Networks().ChainName(chainID))
		s.logger.Warn("network switch failed", zap.Uint64("chain_id", chainID), zap.Error(err))

		code := model.CodeOf(err)
		if code == "" {
			code = model.ErrorCodeProvider
		}
		switchErr := model.NewError(code, msg, err)
		_ = s.repo.Update(func(sess *model.Session) error {
			if sess.ID == sessionID {
				sess.Error = msg
			}
			return nil
		})
		return switchErr
	}

	return s.rederive(ctx, sessionID)
}

// rederive перечитывает WalletInfo после смены сети и заново привязывает контракт.
// Сессия, очки и баланс сохраняются
func (s *serv) rederive(ctx context.Context, sessionID string) error {
	s.lifeMtx.Lock()
	defer s.lifeMtx.Unlock()

	if snap := s.repo.Snapshot(); snap.ID != sessionID || snap.State == model.StateDisconnected {
		return model.ErrNotConnected
	}

	info, err := s.wallet.Connect(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh wallet after network switch", zap.Error(err))
		s.setError(sessionID, err)
		return err
	}

	s.stopBackground()
	s.token.Close()
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID != sessionID {
			return nil
		}
		wallet := *info
		sess.Wallet = &wallet
		// Статистика относится к контракту прежней сети
		sess.TokenStats = nil
		sess.ContractInfo = nil
		sess.Cooldown = 0
		return nil
	})
	s.bindContract(sessionID)

	s.logger.Info("wallet network changed",
		zap.String("session_id", sessionID),
		zap.Uint64("chain_id", info.ChainID),
	)
	return nil
}
