package token

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"
	"monad_spin/pkg/eip1193/eip1193test"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testContract = common.HexToAddress("0xffDDC37C8d6f91c5Eb40399575F599bf3c5a5BEc")
	testAccount  = common.HexToAddress("0x52908400098527886E0F7030069857D2E4169EE7")
	testTx       = common.HexToHash("0xabc0000000000000000000000000000000000000000000000000000000000001")
)

type testConfig struct{}

func (testConfig) Address() common.Address            { return testContract }
func (testConfig) ClaimFee() *big.Int                 { return big.NewInt(1e15) }
func (testConfig) ClaimGasLimit() uint64              { return 200000 }
func (testConfig) ConvertGasLimit() uint64            { return 150000 }
func (testConfig) ReceiptPollInterval() time.Duration { return 5 * time.Millisecond }
func (testConfig) LogPollInterval() time.Duration     { return 5 * time.Millisecond }
func (testConfig) TokenSymbol() string                { return "SPIN" }
func (testConfig) TokenDecimals() uint8               { return 18 }
func (testConfig) TokenImage() string                 { return "https://via.placeholder.com/64x64.png?text=SPIN" }

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newGateway(t *testing.T) (*serv, *eip1193test.Provider) {
	t.Helper()
	g, err := NewTokenGateway(testConfig{}, zap.NewNop())
	require.NoError(t, err)
	s := g.(*serv)

	p := eip1193test.New()
	require.NoError(t, s.Initialize(&model.WalletSession{Provider: p, Account: testAccount, ChainID: 11155111}))
	t.Cleanup(s.Close)
	return s, p
}

// handleCalls отвечает на eth_call по селектору метода
func handleCalls(t *testing.T, s *serv, p *eip1193test.Provider, results map[string][]interface{}) {
	p.Handle("eth_call", func(params []interface{}) (interface{}, error) {
		msg := params[0].(callMsg)
		assert.Equal(t, testContract, msg.To)
		assert.Equal(t, testAccount, msg.From)

		method, err := s.abi.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}
		values, ok := results[method.Name]
		if !ok {
			return nil, &eip1193.Error{Code: -32000, Message: "execution reverted"}
		}
		out, err := method.Outputs.Pack(values...)
		if err != nil {
			return nil, err
		}
		return hexutil.Bytes(out), nil
	})
}

func revertData(t *testing.T, reason string) []byte {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return append([]byte{0x08, 0xc3, 0x79, 0xa0}, packed...)
}

func TestNotInitialized(t *testing.T) {
	g, err := NewTokenGateway(testConfig{}, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = g.GetTokenStats(ctx, testAccount)
	assert.ErrorIs(t, err, model.ErrContractNotInitialized)
	_, err = g.GetContractInfo(ctx)
	assert.ErrorIs(t, err, model.ErrContractNotInitialized)
	_, err = g.ClaimTokens(ctx)
	assert.ErrorIs(t, err, model.ErrContractNotInitialized)
	_, err = g.ConvertPointsToTokens(ctx, 10)
	assert.ErrorIs(t, err, model.ErrContractNotInitialized)
	assert.False(t, g.AddTokenToWallet(ctx))

	assert.ErrorIs(t, g.Initialize(nil), model.ErrNotConnected)
}

func TestGetTokenStats(t *testing.T) {
	s, p := newGateway(t)
	handleCalls(t, s, p, map[string][]interface{}{
		"getUserStats": {
			ether(250), ether(1000), big.NewInt(1700000000), big.NewInt(3600), ether(100), big.NewInt(420),
		},
	})

	stats, err := s.GetTokenStats(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, "250", stats.Balance.String())
	assert.Equal(t, "1000", stats.TotalClaimed.String())
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), stats.LastClaimTime)
	assert.Equal(t, time.Hour, stats.TimeUntilNextClaim)
	assert.Equal(t, "100", stats.ClaimableAmount.String())
	assert.Equal(t, int64(420), stats.GamePoints.Int64())
}

func TestGetTokenStats_ReadError(t *testing.T) {
	s, p := newGateway(t)
	handleCalls(t, s, p, map[string][]interface{}{})

	_, err := s.GetTokenStats(context.Background(), testAccount)
	assert.ErrorIs(t, err, model.ErrRead)
}

func TestGetContractInfo(t *testing.T) {
	s, p := newGateway(t)
	results := map[string][]interface{}{
		"name":               {"Spin Token"},
		"symbol":             {"SPIN"},
		"decimals":           {uint8(18)},
		"totalSupply":        {ether(1000000)},
		"MAX_CLAIM_AMOUNT":   {ether(1000)},
		"CLAIM_COOLDOWN":     {big.NewInt(86400)},
		"CLAIM_FEE":          {big.NewInt(1e15)},
		"getContractBalance": {ether(500000)},
	}
	handleCalls(t, s, p, results)

	info, err := s.GetContractInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Spin Token", info.Name)
	assert.Equal(t, "SPIN", info.Symbol)
	assert.Equal(t, uint8(18), info.Decimals)
	assert.Equal(t, "1000000", info.TotalSupply.String())
	assert.Equal(t, "1000", info.MaxClaimAmount.String())
	assert.Equal(t, 24*time.Hour, info.ClaimCooldown)
	assert.Equal(t, "0.001", info.ClaimFee.String())
	assert.Equal(t, "500000", info.ContractBalance.String())

	delete(results, "CLAIM_FEE")
	_, err = s.GetContractInfo(context.Background())
	assert.ErrorIs(t, err, model.ErrRead)
}

func TestClaimTokens(t *testing.T) {
	s, p := newGateway(t)

	var sent callMsg
	p.Handle("eth_sendTransaction", func(params []interface{}) (interface{}, error) {
		sent = params[0].(callMsg)
		return testTx, nil
	})

	data, err := s.abi.Events[eventTokensClaimed].Inputs.NonIndexed().Pack(ether(1000), big.NewInt(1e15))
	require.NoError(t, err)

	var polls int32
	p.Handle("eth_getTransactionReceipt", func([]interface{}) (interface{}, error) {
		// Первый опрос - транзакция ещё в мемпуле
		if atomic.AddInt32(&polls, 1) == 1 {
			return nil, nil
		}
		return map[string]interface{}{
			"transactionHash": testTx,
			"blockNumber":     "0x10",
			"status":          "0x1",
			"logs": []map[string]interface{}{{
				"address":         testContract,
				"topics":          []common.Hash{s.abi.Events[eventTokensClaimed].ID, common.BytesToHash(testAccount.Bytes())},
				"data":            hexutil.Bytes(data),
				"blockNumber":     "0x10",
				"transactionHash": testTx,
				"logIndex":        "0x0",
			}},
		}, nil
	})

	tx, err := s.ClaimTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testTx, tx.Hash())

	selector := s.abi.Methods["claimTokens"].ID
	assert.Equal(t, selector, []byte(sent.Data))
	require.NotNil(t, sent.Value)
	assert.Equal(t, "0x38d7ea4c68000", sent.Value.String())
	require.NotNil(t, sent.Gas)
	assert.Equal(t, uint64(200000), uint64(*sent.Gas))

	receipt, err := tx.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), receipt.BlockNumber)
	require.NotNil(t, receipt.Claimed)
	assert.Equal(t, testAccount, receipt.Claimed.User)
	assert.Equal(t, "1000", receipt.Claimed.Amount.String())
	assert.Equal(t, "0.001", receipt.Claimed.Fee.String())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(2))
}

func TestClaimTokens_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("RevertReason", func(t *testing.T) {
		s, p := newGateway(t)
		p.Handle("eth_sendTransaction", func([]interface{}) (interface{}, error) {
			return nil, &eip1193.Error{Code: 3, Message: "execution reverted", Data: revertData(t, "Claim cooldown not met")}
		})

		_, err := s.ClaimTokens(ctx)
		assert.ErrorIs(t, err, model.ErrClaimFailed)
		assert.Contains(t, err.Error(), "Claim cooldown not met")
	})

	t.Run("Reverted", func(t *testing.T) {
		s, p := newGateway(t)
		p.Return("eth_sendTransaction", testTx)
		p.Return("eth_getTransactionReceipt", map[string]interface{}{
			"transactionHash": testTx,
			"blockNumber":     "0x11",
			"status":          "0x0",
			"logs":            []interface{}{},
		})

		tx, err := s.ClaimTokens(ctx)
		require.NoError(t, err)
		_, err = tx.Wait(ctx)
		assert.ErrorIs(t, err, model.ErrClaimFailed)
	})

	t.Run("WaitCancelled", func(t *testing.T) {
		s, p := newGateway(t)
		p.Return("eth_sendTransaction", testTx)
		p.Return("eth_getTransactionReceipt", nil)

		tx, err := s.ClaimTokens(ctx)
		require.NoError(t, err)

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = tx.Wait(waitCtx)
		assert.ErrorIs(t, err, model.ErrClaimFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestConvertPointsToTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("Sent", func(t *testing.T) {
		s, p := newGateway(t)
		var sent callMsg
		p.Handle("eth_sendTransaction", func(params []interface{}) (interface{}, error) {
			sent = params[0].(callMsg)
			return testTx, nil
		})

		tx, err := s.ConvertPointsToTokens(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, testTx, tx.Hash())
		assert.Nil(t, sent.Value)
		assert.Equal(t, uint64(150000), uint64(*sent.Gas))

		args, err := s.abi.Methods["convertPointsToTokens"].Inputs.Unpack(sent.Data[4:])
		require.NoError(t, err)
		assert.Equal(t, int64(100), args[0].(*big.Int).Int64())
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		s, _ := newGateway(t)
		_, err := s.ConvertPointsToTokens(ctx, 0)
		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	})

	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "StructuredInsufficientPoints",
			err:  &eip1193.Error{Code: 3, Message: "execution reverted", Data: revertData(t, "Insufficient game points")},
			want: model.ErrInsufficientPoints,
		},
		{
			name: "StructuredInsufficientSupply",
			err:  &eip1193.Error{Code: 3, Message: "execution reverted", Data: revertData(t, "Insufficient tokens in contract")},
			want: model.ErrInsufficientContractSupply,
		},
		{
			name: "StructuredUnknownReason",
			err:  &eip1193.Error{Code: 3, Message: "execution reverted", Data: revertData(t, "Paused")},
			want: model.ErrConversionFailed,
		},
		{
			name: "MessageInsufficientPoints",
			err:  &eip1193.Error{Code: -32603, Message: "execution reverted: Insufficient game points"},
			want: model.ErrInsufficientPoints,
		},
		{
			name: "MessageInsufficientSupply",
			err:  errors.New("execution reverted: Insufficient tokens in contract"),
			want: model.ErrInsufficientContractSupply,
		},
		{
			name: "Other",
			err:  &eip1193.Error{Code: eip1193.CodeUserRejected, Message: "User denied transaction signature"},
			want: model.ErrConversionFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, p := newGateway(t)
			p.Handle("eth_sendTransaction", func([]interface{}) (interface{}, error) {
				return nil, tc.err
			})

			_, err := s.ConvertPointsToTokens(ctx, 500)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAddTokenToWallet(t *testing.T) {
	ctx := context.Background()
	s, p := newGateway(t)

	p.Handle("wallet_watchAsset", func(params []interface{}) (interface{}, error) {
		req := params[0].(watchAssetParams)
		assert.Equal(t, "ERC20", req.Type)
		assert.Equal(t, testContract, req.Options.Address)
		assert.Equal(t, "SPIN", req.Options.Symbol)
		assert.Equal(t, uint8(18), req.Options.Decimals)
		return true, nil
	})
	assert.True(t, s.AddTokenToWallet(ctx))

	p.Fail("wallet_watchAsset", eip1193.CodeUserRejected, "User rejected")
	assert.False(t, s.AddTokenToWallet(ctx))
}

func TestContractEvents(t *testing.T) {
	s, p := newGateway(t)

	var head atomic.Uint64
	var headReads atomic.Int32
	head.Store(100)
	p.Handle("eth_blockNumber", func([]interface{}) (interface{}, error) {
		n := head.Load()
		headReads.Add(1)
		return hexutil.Uint64(n), nil
	})

	convertedData, err := s.abi.Events[eventPointsConverted].Inputs.NonIndexed().Pack(big.NewInt(300), ether(300))
	require.NoError(t, err)
	claimedData, err := s.abi.Events[eventTokensClaimed].Inputs.NonIndexed().Pack(ether(1000), big.NewInt(1e15))
	require.NoError(t, err)
	userTopic := common.BytesToHash(testAccount.Bytes())

	var filters []logFilter
	var filterMtx sync.Mutex
	p.Handle("eth_getLogs", func(params []interface{}) (interface{}, error) {
		f := params[0].(logFilter)
		filterMtx.Lock()
		filters = append(filters, f)
		filterMtx.Unlock()
		if f.FromBlock > 101 {
			return []rpcLog{}, nil
		}
		// Намеренно в обратном порядке
		return []rpcLog{
			{Address: testContract, Topics: []common.Hash{s.abi.Events[eventTokensClaimed].ID, userTopic}, Data: claimedData, BlockNumber: 101, LogIndex: 3},
			{Address: testContract, Topics: []common.Hash{s.abi.Events[eventPointsConverted].ID, userTopic}, Data: convertedData, BlockNumber: 101, LogIndex: 1},
		}, nil
	})

	var (
		mtx   sync.Mutex
		order []string
		conv  []model.PointsConverted
	)
	s.OnPointsConverted(func(e model.PointsConverted) {
		mtx.Lock()
		defer mtx.Unlock()
		order = append(order, "converted")
		conv = append(conv, e)
	})
	s.OnTokensClaimed(func(model.TokensClaimed) {
		mtx.Lock()
		defer mtx.Unlock()
		order = append(order, "claimed")
	})

	// Наблюдатель запоминает блок 100, затем появляется блок 101
	require.Eventually(t, func() bool { return headReads.Load() > 0 }, time.Second, time.Millisecond)
	head.Store(101)

	require.Eventually(t, func() bool {
		mtx.Lock()
		defer mtx.Unlock()
		return len(order) == 2
	}, time.Second, 5*time.Millisecond)

	mtx.Lock()
	assert.Equal(t, []string{"converted", "claimed"}, order)
	assert.Equal(t, int64(300), conv[0].Points.Int64())
	assert.Equal(t, "300", conv[0].Tokens.String())
	assert.Equal(t, testAccount, conv[0].User)
	mtx.Unlock()

	filterMtx.Lock()
	require.NotEmpty(t, filters)
	assert.Equal(t, hexutil.Uint64(101), filters[0].FromBlock)
	assert.Equal(t, testContract, filters[0].Address)
	filterMtx.Unlock()

	s.RemoveAllListeners()
	assert.Nil(t, s.watchCancel)
}
