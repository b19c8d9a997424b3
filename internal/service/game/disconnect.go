package game

import (
	"context"

	"monad_spin/internal/model"

	"go.uber.org/zap"
)

// Disconnect сбрасывает кошелёк и всё игровое состояние, останавливает фоновые задачи
func (s *serv) Disconnect(_ context.Context) {
	s.lifeMtx.Lock()
	defer s.lifeMtx.Unlock()

	s.generation++
	s.stopBackground()
	s.token.Close()
	s.wallet.Disconnect()

	var prev model.Session
	_ = s.repo.Update(func(sess *model.Session) error {
		prev = sess.Clone()
		*sess = model.Session{
			State:    model.StateDisconnected,
			Rotation: sess.Rotation,
		}
		return nil
	})

	if prev.ID == "" {
		return
	}
	s.logger.Info("session ended", zap.String("session_id", prev.ID))
	s.record(prev, model.JournalDisconnect, prev.Points, "", "")
}
