package eip1193

import "sync"

// Emitter - реестр обработчиков событий провайдера
type Emitter struct {
	mtx      sync.RWMutex
	handlers map[Event][]Handler
}

// On регистрирует обработчик
func (e *Emitter) On(event Event, handler Handler) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[Event][]Handler)
	}
	e.handlers[event] = append(e.handlers[event], handler)
}

// RemoveAllListeners удаляет все обработчики события
func (e *Emitter) RemoveAllListeners(event Event) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	delete(e.handlers, event)
}

// Emit вызывает обработчики синхронно, в порядке регистрации
func (e *Emitter) Emit(msg Message) {
	e.mtx.RLock()
	hs := make([]Handler, len(e.handlers[msg.Event]))
	copy(hs, e.handlers[msg.Event])
	e.mtx.RUnlock()

	for _, h := range hs {
		h(msg)
	}
}

// ListenerCount - количество обработчиков события
func (e *Emitter) ListenerCount(event Event) int {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return len(e.handlers[event])
}
