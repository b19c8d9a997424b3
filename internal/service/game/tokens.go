package game

import (
	"context"
	"fmt"

	"monad_spin/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RefreshToken перечитывает статистику токена для текущей сессии
func (s *serv) RefreshToken(ctx context.Context) (*model.TokenStats, error) {
	snap := s.repo.Snapshot()
	if snap.State == model.StateDisconnected {
		return nil, model.ErrNotConnected
	}
	return s.refresh(ctx, snap.ID)
}

// ClaimTokens выполняет claim на контракте и ждёт подтверждения.
// Повторный вызов во время claim ничего не отправляет
func (s *serv) ClaimTokens(ctx context.Context) (*model.TxReceipt, error) {
	var (
		sessionID string
		claimable decimal.Decimal
	)
	err := s.repo.Update(func(sess *model.Session) error {
		switch {
		case sess.State == model.StateDisconnected:
			return model.ErrNotConnected
		case sess.IsClaiming:
			return model.ErrActionInProgress
		case !sess.CanClaim():
			return model.ErrClaimUnavailable
		}
		sess.IsClaiming = true
		sess.Error = ""
		sessionID = sess.ID
		claimable = sess.TokenStats.ClaimableAmount
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer s.clearFlag(sessionID, func(sess *model.Session) { sess.IsClaiming = false })

	tx, err := s.token.ClaimTokens(ctx)
	if err != nil {
		s.setError(sessionID, err)
		return nil, err
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		s.logger.Warn("claim not confirmed", zap.String("tx", tx.Hash().Hex()), zap.Error(err))
		s.setError(sessionID, err)
		return nil, err
	}

	amount := claimable
	if receipt.Claimed != nil {
		amount = receipt.Claimed.Amount
	}
	s.setNotice(sessionID, fmt.Sprintf("Successfully claimed %s SPIN tokens!", amount.String()))
	s.record(s.repo.Snapshot(), model.JournalTokensClaimed, 0, amount.String(), receipt.TxHash.Hex())

	if _, err := s.refresh(ctx, sessionID); err != nil {
		s.logger.Warn("failed to refresh stats after claim", zap.Error(err))
	}
	return receipt, nil
}

// ConvertPoints конвертирует очки в токены. Локальный счётчик уменьшается
// ровно на points и только после подтверждения транзакции
func (s *serv) ConvertPoints(ctx context.Context, points int64) (*model.TxReceipt, error) {
	if points <= 0 {
		return nil, model.ErrInvalidAmount
	}

	var sessionID string
	err := s.repo.Update(func(sess *model.Session) error {
		switch {
		case sess.State == model.StateDisconnected:
			return model.ErrNotConnected
		case sess.IsConverting:
			return model.ErrActionInProgress
		case points > sess.Points:
			return model.NewError(model.ErrorCodeInsufficientPoints, fmt.Sprintf("you need %d game points to convert", points), nil)
		}
		sess.IsConverting = true
		sess.Error = ""
		sessionID = sess.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer s.clearFlag(sessionID, func(sess *model.Session) { sess.IsConverting = false })

	tx, err := s.token.ConvertPointsToTokens(ctx, points)
	if err != nil {
		s.setError(sessionID, err)
		return nil, err
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		s.logger.Warn("conversion not confirmed", zap.String("tx", tx.Hash().Hex()), zap.Error(err))
		s.setError(sessionID, err)
		return nil, err
	}

	var snap model.Session
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID == sessionID {
			sess.Points -= points
			snap = sess.Clone()
		}
		return nil
	})

	tokens := decimal.NewFromInt(points)
	if receipt.Converted != nil {
		tokens = receipt.Converted.Tokens
	}
	s.setNotice(sessionID, fmt.Sprintf("Successfully converted %d points to %s SPIN tokens!", points, tokens.String()))
	if snap.ID != "" {
		s.record(snap, model.JournalPointsConverted, points, tokens.String(), receipt.TxHash.Hex())
	}

	if _, err := s.refresh(ctx, sessionID); err != nil {
		s.logger.Warn("failed to refresh stats after conversion", zap.Error(err))
	}
	return receipt, nil
}

// AddTokenToWallet просит кошелёк отобразить токен
func (s *serv) AddTokenToWallet(ctx context.Context) bool {
	return s.token.AddTokenToWallet(ctx)
}

// clearFlag снимает флаг занятости, если сессия не сменилась
func (s *serv) clearFlag(sessionID string, fn func(sess *model.Session)) {
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID == sessionID {
			fn(sess)
		}
		return nil
	})
}
