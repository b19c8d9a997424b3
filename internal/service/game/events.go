package game

import (
	"context"
	"sync"

	"monad_spin/internal/model"

	"go.uber.org/zap"
)

type walletEventKind int

const (
	accountsChanged walletEventKind = iota
	chainChanged
)

type walletEvent struct {
	kind     walletEventKind
	accounts []string
	chainID  uint64
}

// eventQueue - неограниченная очередь событий кошелька.
// push не блокирует, поэтому провайдер никогда не ждёт координатор
type eventQueue struct {
	mtx    sync.Mutex
	items  []walletEvent
	signal chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{signal: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev walletEvent) {
	q.mtx.Lock()
	q.items = append(q.items, ev)
	q.mtx.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pop(ctx context.Context) (walletEvent, bool) {
	for {
		q.mtx.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items = q.items[1:]
			q.mtx.Unlock()
			return ev, true
		}
		q.mtx.Unlock()

		select {
		case <-ctx.Done():
			return walletEvent{}, false
		case <-q.signal:
		}
	}
}

// Start подписывается на события кошелька и запускает их последовательную обработку
func (s *serv) Start(ctx context.Context) error {
	s.loopMtx.Lock()
	defer s.loopMtx.Unlock()
	if s.loopStop != nil {
		return nil
	}

	s.wallet.SubscribeAccountsChanged(func(accounts []string) {
		s.events.push(walletEvent{kind: accountsChanged, accounts: accounts})
	})
	s.wallet.SubscribeChainChanged(func(chainID uint64) {
		s.events.push(walletEvent{kind: chainChanged, chainID: chainID})
	})

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.loopStop, s.loopDone = cancel, done

	go func() {
		defer close(done)
		for {
			ev, ok := s.events.pop(loopCtx)
			if !ok {
				return
			}
			s.handleEvent(loopCtx, ev)
		}
	}()
	return nil
}

// Stop останавливает обработку событий и все задачи сессии, закрывает кошелёк
func (s *serv) Stop() {
	s.loopMtx.Lock()
	cancel, done := s.loopStop, s.loopDone
	s.loopStop, s.loopDone = nil, nil
	s.loopMtx.Unlock()

	if cancel == nil {
		return
	}
	s.wallet.UnsubscribeAll()
	cancel()
	<-done

	s.lifeMtx.Lock()
	s.generation++
	s.stopBackground()
	s.token.Close()
	s.wallet.Disconnect()
	s.lifeMtx.Unlock()

	s.journalWG.Wait()
}

func (s *serv) handleEvent(ctx context.Context, ev walletEvent) {
	switch ev.kind {
	case accountsChanged:
		if len(ev.accounts) == 0 {
			s.logger.Info("wallet reported no accounts")
			if s.repo.Snapshot().State != model.StateDisconnected {
				s.Disconnect(ctx)
			}
			return
		}
		// Другой аккаунт - другой игрок, начинаем новую сессию
		s.logger.Info("wallet account changed, reconnecting")
		if _, err := s.Connect(ctx); err != nil {
			s.logger.Warn("reconnect after wallet event failed", zap.Error(err))
		}
	case chainChanged:
		snap := s.repo.Snapshot()
		if snap.State == model.StateDisconnected || snap.IsConnecting {
			// Сеть прочитает сам connect
			return
		}
		if snap.Wallet != nil && snap.Wallet.ChainID == ev.chainID {
			return
		}
		s.logger.Info("wallet chain changed", zap.Uint64("chain_id", ev.chainID))
		if err := s.rederive(ctx, snap.ID); err != nil {
			s.logger.Warn("failed to follow wallet chain change", zap.Error(err))
		}
	}
}
