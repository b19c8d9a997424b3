package token

import (
	"context"

	"monad_spin/internal/model"
	"monad_spin/internal/service"

	"go.uber.org/zap"
)

// ClaimTokens отправляет claimTokens() с фиксированной комиссией и лимитом газа.
// Возвращённую транзакцию нужно дождаться через Wait
func (s *serv) ClaimTokens(ctx context.Context) (service.PendingTx, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	hash, err := s.send(ctx, sess, s.cfg.ClaimFee(), s.cfg.ClaimGasLimit(), "claimTokens")
	if err != nil {
		s.logger.Warn("claim transaction failed", zap.Error(err))
		if reason, ok := revertReason(err); ok {
			return nil, model.NewError(model.ErrorCodeClaimFailed, "claim failed: "+reason, err)
		}
		return nil, model.NewError(model.ErrorCodeClaimFailed, "claim failed", err)
	}

	s.logger.Info("claim transaction sent", zap.String("tx", hash.Hex()))
	return s.newPendingTx(sess, hash, model.ErrorCodeClaimFailed), nil
}
