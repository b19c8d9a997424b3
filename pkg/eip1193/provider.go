// Package eip1193 описывает провайдер кошелька в стиле EIP-1193:
// один метод request и события accountsChanged/chainChanged.
package eip1193

import (
	"context"
	"encoding/json"
)

// Event - имя события провайдера
type Event string

const (
	AccountsChanged Event = "accountsChanged"
	ChainChanged    Event = "chainChanged"
)

// Message - событие, пришедшее от кошелька
type Message struct {
	Event    Event
	Accounts []string // Для accountsChanged
	ChainID  string   // Для chainChanged, hex
}

// Handler - обработчик события
type Handler func(msg Message)

// Provider - кошелёк, через который идут все запросы
type Provider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
	On(event Event, handler Handler)
	RemoveAllListeners(event Event)
	Close()
}

// Requester - часть провайдера, которой достаточно для чтения
type Requester interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// Call выполняет запрос и декодирует результат в out
func Call(ctx context.Context, p Requester, out interface{}, method string, params ...interface{}) error {
	raw, err := p.Request(ctx, method, params...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Code: CodeInvalidResponse, Message: method + ": " + err.Error()}
	}
	return nil
}
