package journal

import (
	"context"
	"time"

	"monad_spin/internal/model"
	"monad_spin/internal/repository"
	"monad_spin/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	repo      repository.JournalRepository
	txManager trm.Manager
	logger    *zap.Logger
	now       func() time.Time
}

// NewJournalService Журнал игры в PostgreSQL
func NewJournalService(repo repository.JournalRepository, txManager trm.Manager, logger *zap.Logger) service.JournalService {
	return &serv{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Record пишет одно событие. Ошибка только логируется
func (s *serv) Record(ctx context.Context, event model.JournalEvent) {
	event = s.stamp(event)
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		s.logger.Warn("failed to write journal event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

// RecordConversion пишет событие конвертации и увеличивает итог кошелька в одной транзакции
func (s *serv) RecordConversion(ctx context.Context, event model.JournalEvent) {
	event = s.stamp(event)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.InsertEvent(txCtx, event); err != nil {
			return err
		}
		return s.repo.AddConvertedPoints(txCtx, event.Address, event.Points)
	})
	if err != nil {
		s.logger.Warn("failed to write conversion to journal", zap.String("address", event.Address), zap.Error(err))
	}
}

func (s *serv) stamp(event model.JournalEvent) model.JournalEvent {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now().UTC()
	}
	return event
}

type nopJournal struct{}

// NewNopJournal - журнал без хранилища, когда PG_DSN не задан
func NewNopJournal() service.JournalService {
	return nopJournal{}
}

func (nopJournal) Record(context.Context, model.JournalEvent)           {}
func (nopJournal) RecordConversion(context.Context, model.JournalEvent) {}
