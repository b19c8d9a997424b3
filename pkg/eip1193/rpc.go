package eip1193

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

const defaultPollInterval = 2 * time.Second

// Options - настройки RPC провайдера
type Options struct {
	EventPollInterval time.Duration
	Logger            *zap.Logger
}

// rpcProvider - провайдер поверх JSON-RPC эндпоинта кошелька
type rpcProvider struct {
	client *rpc.Client
	log    *zap.Logger

	Emitter

	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}
}

// Dial подключается к эндпоинту кошелька и запускает наблюдение за событиями
func Dial(ctx context.Context, url string, opts Options) (Provider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}

	if opts.EventPollInterval <= 0 {
		opts.EventPollInterval = defaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	p := &rpcProvider{
		client: client,
		log:    opts.Logger.Named("eip1193"),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		Watch(watchCtx, p, opts.EventPollInterval, func(msg Message) {
			p.log.Debug("wallet event", zap.String("event", string(msg.Event)),
				zap.Strings("accounts", msg.Accounts), zap.String("chain_id", msg.ChainID))
			p.Emit(msg)
		})
	}()

	return p, nil
}

// Request выполняет JSON-RPC вызов, ошибки узла приводятся к *Error
func (p *rpcProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	var raw json.RawMessage
	err := p.client.CallContext(ctx, &raw, method, params...)
	if err != nil {
		if pe, ok := AsError(err); ok {
			return nil, pe
		}
		return nil, &Error{Code: CodeDisconnected, Message: err.Error()}
	}
	return raw, nil
}

// Close останавливает наблюдение и закрывает соединение
func (p *rpcProvider) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		<-p.done
		p.client.Close()
	})
}
