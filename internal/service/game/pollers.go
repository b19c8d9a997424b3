package game

import (
	"context"
	"sync"
	"time"

	"monad_spin/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// startBackground запускает опрос статистики и обратный отсчёт кулдауна для сессии.
// У каждого запуска свой WaitGroup, stopBackground ждёт только его
func (s *serv) startBackground(sessionID string) {
	s.bgMtx.Lock()
	defer s.bgMtx.Unlock()

	if s.bgCancel != nil {
		s.bgCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	s.bgCancel, s.bgWG = cancel, wg

	wg.Add(2)
	go func() {
		defer wg.Done()
		s.pollStats(ctx, sessionID)
	}()
	go func() {
		defer wg.Done()
		s.countdown(ctx, sessionID)
	}()
}

// stopBackground останавливает фоновые задачи и ждёт их завершения
func (s *serv) stopBackground() {
	s.bgMtx.Lock()
	cancel, wg := s.bgCancel, s.bgWG
	s.bgCancel, s.bgWG = nil, nil
	s.bgMtx.Unlock()

	if cancel != nil {
		cancel()
	}
	if wg != nil {
		wg.Wait()
	}
}

func (s *serv) pollStats(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(s.cfg.StatsPollInterval())
	defer ticker.Stop()

	for {
		_, _ = s.refresh(ctx, sessionID)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// countdown уменьшает локальный кулдаун раз в тик и обновляет статистику, когда он дошёл до нуля
func (s *serv) countdown(ctx context.Context, sessionID string) {
	ticker := time.NewTicker(s.cfg.CountdownTick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		expired := false
		_ = s.repo.Update(func(sess *model.Session) error {
			if sess.ID != sessionID || sess.Cooldown <= 0 {
				return nil
			}
			sess.Cooldown--
			expired = sess.Cooldown == 0
			return nil
		})
		if expired {
			_, _ = s.refresh(ctx, sessionID)
		}
	}
}

// refresh читает статистику пользователя и параметры контракта для сессии sessionID
func (s *serv) refresh(ctx context.Context, sessionID string) (*model.TokenStats, error) {
	snap := s.repo.Snapshot()
	if snap.ID != sessionID || snap.Wallet == nil {
		return nil, model.ErrNotConnected
	}

	var (
		stats *model.TokenStats
		info  *model.ContractInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.token.GetTokenStats(gctx, snap.Wallet.Address)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = s.token.GetContractInfo(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("failed to load token data", zap.String("session_id", sessionID), zap.Error(err))
			s.setError(sessionID, err)
		}
		return nil, err
	}

	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID != sessionID {
			return nil
		}
		sess.TokenStats = stats
		sess.ContractInfo = info
		sess.Cooldown = int64(stats.TimeUntilNextClaim / time.Second)
		return nil
	})
	return stats, nil
}
