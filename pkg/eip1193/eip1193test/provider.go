// Package eip1193test - управляемый провайдер кошелька для тестов
package eip1193test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"monad_spin/pkg/eip1193"
)

// HandlerFunc отвечает на один метод
type HandlerFunc func(params []interface{}) (interface{}, error)

// Call - запись о выполненном запросе
type Call struct {
	Method string
	Params []interface{}
}

// Provider - провайдер в памяти
type Provider struct {
	eip1193.Emitter

	mtx      sync.Mutex
	handlers map[string]HandlerFunc
	calls    []Call
	closed   bool
}

// New создает пустой провайдер, каждый метод нужно описать через Handle
func New() *Provider {
	return &Provider{handlers: make(map[string]HandlerFunc)}
}

// Handle задаёт ответ на метод
func (p *Provider) Handle(method string, h HandlerFunc) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.handlers[method] = h
}

// Return - короткая форма Handle для постоянного ответа
func (p *Provider) Return(method string, result interface{}) {
	p.Handle(method, func([]interface{}) (interface{}, error) {
		return result, nil
	})
}

// Fail - метод всегда возвращает ошибку провайдера
func (p *Provider) Fail(method string, code int, message string) {
	p.Handle(method, func([]interface{}) (interface{}, error) {
		return nil, &eip1193.Error{Code: code, Message: message}
	})
}

func (p *Provider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mtx.Lock()
	p.calls = append(p.calls, Call{Method: method, Params: params})
	h, ok := p.handlers[method]
	p.mtx.Unlock()

	if !ok {
		return nil, &eip1193.Error{Code: eip1193.CodeUnsupportedMethod, Message: fmt.Sprintf("method %s not handled", method)}
	}

	result, err := h(params)
	if err != nil {
		return nil, err
	}
	if raw, ok := result.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(result)
}

func (p *Provider) Close() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.closed = true
}

// Closed - был ли вызван Close
func (p *Provider) Closed() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.closed
}

// Calls возвращает копию журнала запросов
func (p *Provider) Calls() []Call {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// CallsTo возвращает запросы к одному методу
func (p *Provider) CallsTo(method string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// EmitAccounts имитирует accountsChanged
func (p *Provider) EmitAccounts(accounts ...string) {
	p.Emit(eip1193.Message{Event: eip1193.AccountsChanged, Accounts: accounts})
}

// EmitChain имитирует chainChanged
func (p *Provider) EmitChain(chainID string) {
	p.Emit(eip1193.Message{Event: eip1193.ChainChanged, ChainID: chainID})
}
