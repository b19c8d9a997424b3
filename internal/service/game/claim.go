package game

import (
	"context"
	"fmt"
	"time"

	"monad_spin/internal/model"
)

// ClaimWinnings забирает выигрыш: монеты идут в баланс, призы вайтлиста - в список собранных.
// Через ClaimedResetDelay автомат возвращается в connected
func (s *serv) ClaimWinnings(_ context.Context) (*model.Reward, error) {
	var (
		reward    model.Reward
		snap      model.Session
		sessionID string
	)
	err := s.repo.Update(func(sess *model.Session) error {
		if sess.State == model.StateDisconnected {
			return model.ErrNotConnected
		}
		if sess.State != model.StateWon || sess.LastWin == nil {
			return model.NewError(model.ErrorCodeInvalidState, fmt.Sprintf("nothing to claim in state %s", sess.State), nil)
		}

		reward = sess.LastWin.Reward
		switch s.table.Variant {
		case model.VariantNFTWhitelist:
			sess.Collected = append(sess.Collected, reward)
		default:
			sess.Balance += reward.Points
		}
		sess.State = model.StateClaimed
		sessionID = sess.ID
		snap = sess.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	time.AfterFunc(s.cfg.ClaimedResetDelay(), func() {
		_ = s.repo.Update(func(sess *model.Session) error {
			if sess.ID == sessionID && sess.State == model.StateClaimed {
				sess.State = model.StateConnected
				sess.LastWin = nil
			}
			return nil
		})
	})

	s.record(snap, model.JournalWinningsClaimed, reward.Points, reward.Label, "")
	return &reward, nil
}
