package eip1193_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"monad_spin/pkg/eip1193"
	"monad_spin/pkg/eip1193/eip1193test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	p := eip1193test.New()

	var accounts atomic.Value
	accounts.Store([]string{"0xAbC"})
	var chain atomic.Value
	chain.Store("0xaa36a7")

	p.Handle("eth_accounts", func([]interface{}) (interface{}, error) {
		return accounts.Load().([]string), nil
	})
	p.Handle("eth_chainId", func([]interface{}) (interface{}, error) {
		return chain.Load().(string), nil
	})

	var (
		mtx  sync.Mutex
		msgs []eip1193.Message
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		eip1193.Watch(ctx, p, 5*time.Millisecond, func(m eip1193.Message) {
			mtx.Lock()
			msgs = append(msgs, m)
			mtx.Unlock()
		})
	}()

	// Исходное значение не считается изменением
	time.Sleep(20 * time.Millisecond)
	mtx.Lock()
	assert.Empty(t, msgs)
	mtx.Unlock()

	chain.Store("0x27A7")
	require.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(msgs) == 1
	}, time.Second, 5*time.Millisecond)

	accounts.Store([]string{})
	require.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(msgs) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	mtx.Lock()
	defer mtx.Unlock()
	assert.Equal(t, eip1193.ChainChanged, msgs[0].Event)
	assert.Equal(t, "0x27a7", msgs[0].ChainID)
	assert.Equal(t, eip1193.AccountsChanged, msgs[1].Event)
	assert.Empty(t, msgs[1].Accounts)
}

func TestWatch_SkipsFailedPolls(t *testing.T) {
	p := eip1193test.New()
	p.Fail("eth_accounts", eip1193.CodeDisconnected, "offline")
	p.Return("eth_chainId", "0x1")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var emitted int32
	eip1193.Watch(ctx, p, 5*time.Millisecond, func(eip1193.Message) {
		atomic.AddInt32(&emitted, 1)
	})

	assert.Zero(t, atomic.LoadInt32(&emitted))
	assert.NotEmpty(t, p.CallsTo("eth_accounts"))
}

func TestEmitter(t *testing.T) {
	var e eip1193.Emitter
	var got []string
	e.On(eip1193.ChainChanged, func(m eip1193.Message) { got = append(got, "a:"+m.ChainID) })
	e.On(eip1193.ChainChanged, func(m eip1193.Message) { got = append(got, "b:"+m.ChainID) })
	e.On(eip1193.AccountsChanged, func(eip1193.Message) { got = append(got, "accounts") })

	e.Emit(eip1193.Message{Event: eip1193.ChainChanged, ChainID: "0x1"})
	assert.Equal(t, []string{"a:0x1", "b:0x1"}, got)

	e.RemoveAllListeners(eip1193.ChainChanged)
	assert.Equal(t, 0, e.ListenerCount(eip1193.ChainChanged))
	assert.Equal(t, 1, e.ListenerCount(eip1193.AccountsChanged))
}

func TestAsError(t *testing.T) {
	err := &eip1193.Error{Code: eip1193.CodeUnrecognizedChain, Message: "unknown chain"}
	assert.True(t, eip1193.HasCode(err, eip1193.CodeUnrecognizedChain))
	assert.False(t, eip1193.HasCode(err, eip1193.CodeUserRejected))

	_, ok := eip1193.AsError(context.Canceled)
	assert.False(t, ok)
}
