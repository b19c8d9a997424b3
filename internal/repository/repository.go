package repository

import (
	"context"

	"monad_spin/internal/model"
)

// SessionRepository - состояние текущей сессии в памяти
type SessionRepository interface {
	// Snapshot возвращает независимую копию состояния
	Snapshot() model.Session
	// Update применяет fn под блокировкой, ошибка fn возвращается как есть
	Update(fn func(s *model.Session) error) error
}

// JournalRepository - запись журнала игры в PostgreSQL
type JournalRepository interface {
	InsertEvent(ctx context.Context, event model.JournalEvent) error
	AddConvertedPoints(ctx context.Context, address string, points int64) error
}
