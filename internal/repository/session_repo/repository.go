package session_repo

import (
	"sync"

	"monad_spin/internal/model"
)

// SessionRepo хранит состояние единственной сессии кошелька в памяти
type SessionRepo struct {
	mtx     sync.RWMutex
	session model.Session
}

// NewSessionRepository Конструктор с начальным состоянием "кошелёк не подключен"
func NewSessionRepository() *SessionRepo {
	return &SessionRepo{
		session: model.Session{State: model.StateDisconnected},
	}
}

// Snapshot Получение текущего состояния.
// Возвращает глубокую копию, изменения копии не влияют на репозиторий
func (r *SessionRepo) Snapshot() model.Session {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.session.Clone()
}

// Update Изменение состояния под блокировкой.
// fn получает указатель на живое состояние и не должен его сохранять
func (r *SessionRepo) Update(fn func(s *model.Session) error) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return fn(&r.session)
}
