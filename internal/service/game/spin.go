package game

import (
	"context"
	"fmt"
	"time"

	"monad_spin/internal/model"

	"go.uber.org/zap"
)

// Spin запускает вращение: результат выбирается сразу, состояние won наступает через SpinDuration
func (s *serv) Spin(_ context.Context) (*model.SpinResult, error) {
	var (
		result    model.SpinResult
		sessionID string
	)
	err := s.repo.Update(func(sess *model.Session) error {
		switch {
		case sess.State == model.StateDisconnected:
			return model.ErrNotConnected
		case sess.IsSpinning || sess.State == model.StateSpinning:
			return model.ErrActionInProgress
		case sess.State != model.StateConnected:
			return model.NewError(model.ErrorCodeInvalidState, fmt.Sprintf("cannot spin in state %s", sess.State), nil)
		}

		index := s.draw(len(s.table.Rewards))
		result = model.SpinResult{
			Reward:   s.table.Rewards[index],
			Index:    index,
			Rotation: wheelTarget(sess.Rotation, index, len(s.table.Rewards)),
		}

		pending := result
		sess.State = model.StateSpinning
		sess.IsSpinning = true
		sess.Pending = &pending
		sess.Rotation = result.Rotation
		sess.Error = ""
		sessionID = sess.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("spin started",
		zap.String("session_id", sessionID),
		zap.Int("index", result.Index),
		zap.Float64("rotation", result.Rotation),
	)
	time.AfterFunc(s.cfg.SpinDuration(), func() {
		s.finishSpin(sessionID)
	})
	return &result, nil
}

// finishSpin фиксирует выигрыш, выбранный при старте вращения
func (s *serv) finishSpin(sessionID string) {
	var (
		win  model.SpinResult
		snap model.Session
		done bool
	)
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID != sessionID || sess.State != model.StateSpinning || sess.Pending == nil {
			return nil
		}
		win = *sess.Pending
		sess.LastWin = &win
		sess.Pending = nil
		sess.Points += win.Points
		sess.IsSpinning = false
		sess.State = model.StateWon
		snap = sess.Clone()
		done = true
		return nil
	})
	if !done {
		return
	}

	s.logger.Info("spin finished",
		zap.String("session_id", sessionID),
		zap.String("reward", win.Label),
		zap.Int64("points", snap.Points),
	)
	s.record(snap, model.JournalSpin, win.Points, win.Label, "")
}

func (s *serv) draw(n int) int {
	s.rndMtx.Lock()
	defer s.rndMtx.Unlock()
	return s.rnd.Intn(n)
}
