package game

import (
	"context"
	"math/big"
	"math/rand"
	"sync"
	"testing"
	"time"

	"monad_spin/internal/model"
	"monad_spin/internal/repository/session_repo"
	"monad_spin/internal/service"
	"monad_spin/pkg/eip1193/eip1193test"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	sepoliaID = 11155111
	monadID   = 10143
)

var testAddress = common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")

func coinsTable() model.RewardTable {
	return model.RewardTable{
		Name:    "coins",
		Variant: model.VariantCoins,
		Rewards: []model.Reward{
			{Label: "10", Category: "1x", Color: "bg-blue-500", Points: 10},
			{Label: "25", Category: "2x", Color: "bg-green-500", Points: 25},
			{Label: "50", Category: "5x", Color: "bg-yellow-500", Points: 50},
			{Label: "100", Category: "10x", Color: "bg-purple-500", Points: 100},
			{Label: "250", Category: "25x", Color: "bg-pink-500", Points: 250},
			{Label: "500", Category: "50x", Color: "bg-red-500", Points: 500},
			{Label: "1000", Category: "100x", Color: "bg-orange-500", Points: 1000},
			{Label: "2500", Category: "250x", Color: "bg-indigo-500", Points: 2500},
		},
	}
}

type testGameConfig struct {
	table  model.RewardTable
	spin   time.Duration
	reset  time.Duration
	notice time.Duration
	poll   time.Duration
	tick   time.Duration
}

func (c testGameConfig) SpinDuration() time.Duration      { return c.spin }
func (c testGameConfig) ClaimedResetDelay() time.Duration { return c.reset }
func (c testGameConfig) NoticeTTL() time.Duration         { return c.notice }
func (c testGameConfig) StatsPollInterval() time.Duration { return c.poll }
func (c testGameConfig) CountdownTick() time.Duration     { return c.tick }
func (c testGameConfig) RewardTable() model.RewardTable   { return c.table }

func defaultGameConfig() testGameConfig {
	return testGameConfig{
		table:  coinsTable(),
		spin:   30 * time.Millisecond,
		reset:  30 * time.Millisecond,
		notice: time.Hour,
		poll:   time.Hour,
		tick:   time.Hour,
	}
}

type fakeWallet struct {
	mtx          sync.Mutex
	chainID      uint64
	connectErr   error
	switchErr    error
	connectGate  chan struct{}
	connects     int
	switches     []uint64
	disconnects  int
	connected    bool
	accountsSubs []func([]string)
	chainSubs    []func(uint64)
}

func newFakeWallet(chainID uint64) *fakeWallet {
	return &fakeWallet{chainID: chainID}
}

func (w *fakeWallet) Connect(ctx context.Context) (*model.WalletInfo, error) {
	w.mtx.Lock()
	gate := w.connectGate
	w.connects++
	w.mtx.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	if w.connectErr != nil {
		return nil, w.connectErr
	}
	w.connected = true
	return &model.WalletInfo{Address: testAddress, Balance: "1.5", ChainID: w.chainID}, nil
}

func (w *fakeWallet) SwitchNetwork(_ context.Context, chainID uint64) error {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.switches = append(w.switches, chainID)
	if w.switchErr != nil {
		return w.switchErr
	}
	w.chainID = chainID
	return nil
}

func (w *fakeWallet) Disconnect() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.disconnects++
	w.connected = false
}

func (w *fakeWallet) SubscribeAccountsChanged(fn func([]string)) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.accountsSubs = append(w.accountsSubs, fn)
}

func (w *fakeWallet) SubscribeChainChanged(fn func(uint64)) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.chainSubs = append(w.chainSubs, fn)
}

func (w *fakeWallet) UnsubscribeAll() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.accountsSubs = nil
	w.chainSubs = nil
}

func (w *fakeWallet) GetBalance(context.Context, common.Address) (string, error) {
	return "1.5", nil
}

func (w *fakeWallet) Session() (*model.WalletSession, bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	if !w.connected {
		return nil, false
	}
	return &model.WalletSession{Provider: eip1193test.New(), Account: testAddress, ChainID: w.chainID}, true
}

func (w *fakeWallet) Networks() model.Networks {
	return model.Networks{
		{Key: "sepolia", ChainID: sepoliaID, Name: "Sepolia Testnet"},
		{Key: "monad", ChainID: monadID, Name: "Monad Testnet"},
	}
}

func (w *fakeWallet) emitAccounts(accounts ...string) {
	w.mtx.Lock()
	subs := append([]func([]string){}, w.accountsSubs...)
	w.mtx.Unlock()
	for _, fn := range subs {
		fn(accounts)
	}
}

func (w *fakeWallet) emitChain(chainID uint64) {
	w.mtx.Lock()
	w.chainID = chainID
	subs := append([]func(uint64){}, w.chainSubs...)
	w.mtx.Unlock()
	for _, fn := range subs {
		fn(chainID)
	}
}

func (w *fakeWallet) connectCount() int {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.connects
}

type fakeTx struct {
	hash common.Hash
	wait func(ctx context.Context) (*model.TxReceipt, error)
}

func (tx *fakeTx) Hash() common.Hash { return tx.hash }

func (tx *fakeTx) Wait(ctx context.Context) (*model.TxReceipt, error) {
	return tx.wait(ctx)
}

type fakeToken struct {
	mtx          sync.Mutex
	initialized  bool
	stats        model.TokenStats
	statsErr     error
	statsCalls   int
	sendErr      error
	waitGate     chan struct{}
	waitErr      error
	receipt      model.TxReceipt
	claimCalls   int
	convertCalls []int64
	closes       int
}

func newFakeToken() *fakeToken {
	return &fakeToken{
		stats: model.TokenStats{
			Balance:         decimal.NewFromInt(10),
			ClaimableAmount: decimal.NewFromInt(1000),
			GamePoints:      big.NewInt(0),
		},
		receipt: model.TxReceipt{TxHash: common.HexToHash("0x01"), BlockNumber: 7},
	}
}

func (f *fakeToken) Initialize(*model.WalletSession) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.initialized = true
	return nil
}

func (f *fakeToken) Close() {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.initialized = false
	f.closes++
}

func (f *fakeToken) GetTokenStats(context.Context, common.Address) (*model.TokenStats, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	stats := f.stats
	return &stats, nil
}

func (f *fakeToken) GetContractInfo(context.Context) (*model.ContractInfo, error) {
	return &model.ContractInfo{Name: "Spin Token", Symbol: "SPIN", Decimals: 18}, nil
}

func (f *fakeToken) ClaimTokens(context.Context) (service.PendingTx, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.claimCalls++
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.newTx(), nil
}

func (f *fakeToken) ConvertPointsToTokens(_ context.Context, points int64) (service.PendingTx, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.convertCalls = append(f.convertCalls, points)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.newTx(), nil
}

func (f *fakeToken) newTx() *fakeTx {
	gate, waitErr, receipt := f.waitGate, f.waitErr, f.receipt
	return &fakeTx{
		hash: receipt.TxHash,
		wait: func(ctx context.Context) (*model.TxReceipt, error) {
			if gate != nil {
				select {
				case <-gate:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			if waitErr != nil {
				return nil, waitErr
			}
			r := receipt
			return &r, nil
		},
	}
}

func (f *fakeToken) AddTokenToWallet(context.Context) bool { return true }

func (f *fakeToken) OnTokensClaimed(func(model.TokensClaimed))     {}
func (f *fakeToken) OnPointsConverted(func(model.PointsConverted)) {}
func (f *fakeToken) RemoveAllListeners()                           {}

func (f *fakeToken) calls() (stats, claims int, converts []int64) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.statsCalls, f.claimCalls, append([]int64(nil), f.convertCalls...)
}

type fakeJournal struct {
	mtx    sync.Mutex
	events []model.JournalEvent
	// gate держит запись, пока не закрыт
	gate chan struct{}
}

func (j *fakeJournal) Record(ctx context.Context, e model.JournalEvent) {
	j.mtx.Lock()
	gate := j.gate
	j.mtx.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return
		}
	}

	j.mtx.Lock()
	defer j.mtx.Unlock()
	j.events = append(j.events, e)
}

func (j *fakeJournal) RecordConversion(ctx context.Context, e model.JournalEvent) {
	j.Record(ctx, e)
}

func (j *fakeJournal) types() []model.JournalEventType {
	j.mtx.Lock()
	defer j.mtx.Unlock()
	out := make([]model.JournalEventType, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.Type)
	}
	return out
}

// requireRecorded ждёт, пока событие дойдёт до журнала
func (j *fakeJournal) requireRecorded(t *testing.T, eventType model.JournalEventType) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, typ := range j.types() {
			if typ == eventType {
				return true
			}
		}
		return false
	}, time.Second, 2*time.Millisecond)
}

type testEnv struct {
	serv    *serv
	wallet  *fakeWallet
	token   *fakeToken
	journal *fakeJournal
}

func newTestEnv(t *testing.T, cfg testGameConfig, chainID uint64) *testEnv {
	t.Helper()
	env := &testEnv{
		wallet:  newFakeWallet(chainID),
		token:   newFakeToken(),
		journal: &fakeJournal{},
	}
	env.serv = NewGameService(Deps{
		Wallet:        env.wallet,
		Token:         env.token,
		Journal:       env.journal,
		Repo:          session_repo.NewSessionRepository(),
		GameCfg:       cfg,
		TargetChainID: sepoliaID,
		Rand:          rand.New(rand.NewSource(42)),
		Logger:        zap.NewNop(),
	}).(*serv)

	t.Cleanup(func() {
		env.serv.Stop()
		env.serv.stopBackground()
	})
	return env
}
