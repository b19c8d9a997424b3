package token

import (
	"context"
	"slices"
	"time"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"
	"monad_spin/pkg/units"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

type rpcLog struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	LogIndex    hexutil.Uint   `json:"logIndex"`
	Removed     bool           `json:"removed"`
}

type logFilter struct {
	FromBlock hexutil.Uint64  `json:"fromBlock"`
	ToBlock   hexutil.Uint64  `json:"toBlock"`
	Address   common.Address  `json:"address"`
	Topics    [][]common.Hash `json:"topics"`
}

// OnTokensClaimed подписывает fn на события TokensClaimed
func (s *serv) OnTokensClaimed(fn func(model.TokensClaimed)) {
	s.watchMtx.Lock()
	defer s.watchMtx.Unlock()
	s.claimedSubs = append(s.claimedSubs, fn)
	s.startWatcherLocked()
}

// OnPointsConverted подписывает fn на события PointsConverted
func (s *serv) OnPointsConverted(fn func(model.PointsConverted)) {
	s.watchMtx.Lock()
	defer s.watchMtx.Unlock()
	s.convertedSubs = append(s.convertedSubs, fn)
	s.startWatcherLocked()
}

// RemoveAllListeners снимает подписки и останавливает чтение логов
func (s *serv) RemoveAllListeners() {
	s.watchMtx.Lock()
	cancel, done := s.watchCancel, s.watchDone
	s.watchCancel, s.watchDone = nil, nil
	s.claimedSubs = nil
	s.convertedSubs = nil
	s.watchMtx.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// startWatcherLocked запускает одну горутину чтения логов на сессию.
// Без Initialize подписка ничего не делает
func (s *serv) startWatcherLocked() {
	if s.watchCancel != nil {
		return
	}
	sess, err := s.currentSession()
	if err != nil {
		s.logger.Debug("contract event subscription skipped", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.watchCancel, s.watchDone = cancel, done

	go func() {
		defer close(done)
		s.watchLogs(ctx, sess.Provider)
	}()
}

// watchLogs читает логи контракта начиная с блока, следующего за текущим на момент подписки
func (s *serv) watchLogs(ctx context.Context, p eip1193.Requester) {
	var next uint64
	started := false

	ticker := time.NewTicker(s.cfg.LogPollInterval())
	defer ticker.Stop()

	topics := []common.Hash{
		s.abi.Events[eventTokensClaimed].ID,
		s.abi.Events[eventPointsConverted].ID,
	}

	for {
		var head hexutil.Uint64
		if err := eip1193.Call(ctx, p, &head, "eth_blockNumber"); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("failed to read block number", zap.Error(err))
		} else if !started {
			next, started = uint64(head)+1, true
		} else if uint64(head) >= next {
			var logs []rpcLog
			err := eip1193.Call(ctx, p, &logs, "eth_getLogs", logFilter{
				FromBlock: hexutil.Uint64(next),
				ToBlock:   head,
				Address:   s.cfg.Address(),
				Topics:    [][]common.Hash{topics},
			})
			switch {
			case err == nil:
				s.dispatchLogs(logs)
				next = uint64(head) + 1
			case ctx.Err() != nil:
				return
			default:
				s.logger.Warn("failed to read contract logs", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *serv) dispatchLogs(logs []rpcLog) {
	slices.SortStableFunc(logs, func(a, b rpcLog) int {
		if a.BlockNumber != b.BlockNumber {
			if a.BlockNumber < b.BlockNumber {
				return -1
			}
			return 1
		}
		return int(a.LogIndex) - int(b.LogIndex)
	})

	s.watchMtx.Lock()
	claimed := append([]func(model.TokensClaimed){}, s.claimedSubs...)
	converted := append([]func(model.PointsConverted){}, s.convertedSubs...)
	s.watchMtx.Unlock()

	for _, l := range logs {
		if l.Removed {
			continue
		}
		switch ev := s.decodeLog(l).(type) {
		case *model.TokensClaimed:
			for _, fn := range claimed {
				fn(*ev)
			}
		case *model.PointsConverted:
			for _, fn := range converted {
				fn(*ev)
			}
		}
	}
}

// decodeLog возвращает *model.TokensClaimed, *model.PointsConverted или nil
func (s *serv) decodeLog(l rpcLog) interface{} {
	if len(l.Topics) < 2 {
		return nil
	}
	user := common.BytesToAddress(l.Topics[1].Bytes())

	switch l.Topics[0] {
	case s.abi.Events[eventTokensClaimed].ID:
		values, err := s.abi.Unpack(eventTokensClaimed, l.Data)
		if err != nil {
			s.logger.Warn("failed to decode TokensClaimed", zap.Error(err))
			return nil
		}
		amount, err1 := abiBig(values, 0)
		fee, err2 := abiBig(values, 1)
		if err1 != nil || err2 != nil {
			return nil
		}
		return &model.TokensClaimed{
			User:        user,
			Amount:      units.FromWei(amount, s.cfg.TokenDecimals()),
			Fee:         units.FromWei(fee, units.EtherDecimals),
			BlockNumber: uint64(l.BlockNumber),
			TxHash:      l.TxHash,
		}
	case s.abi.Events[eventPointsConverted].ID:
		values, err := s.abi.Unpack(eventPointsConverted, l.Data)
		if err != nil {
			s.logger.Warn("failed to decode PointsConverted", zap.Error(err))
			return nil
		}
		points, err1 := abiBig(values, 0)
		tokens, err2 := abiBig(values, 1)
		if err1 != nil || err2 != nil {
			return nil
		}
		return &model.PointsConverted{
			User:        user,
			Points:      points,
			Tokens:      units.FromWei(tokens, s.cfg.TokenDecimals()),
			BlockNumber: uint64(l.BlockNumber),
			TxHash:      l.TxHash,
		}
	}
	return nil
}
