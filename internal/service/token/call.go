package token

import (
	"context"
	"math/big"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// callMsg - объект транзакции для eth_call и eth_sendTransaction
type callMsg struct {
	From  common.Address  `json:"from"`
	To    common.Address  `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Gas   *hexutil.Uint64 `json:"gas,omitempty"`
}

// call выполняет view метод контракта и декодирует результат
func (s *serv) call(ctx context.Context, sess *model.WalletSession, method string, args ...interface{}) ([]interface{}, error) {
	data, err := s.abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	var out hexutil.Bytes
	msg := callMsg{From: sess.Account, To: s.cfg.Address(), Data: data}
	if err := eip1193.Call(ctx, sess.Provider, &out, "eth_call", msg, "latest"); err != nil {
		return nil, err
	}
	return s.abi.Unpack(method, out)
}

// callBig - вызов метода, возвращающего один uint256
func (s *serv) callBig(ctx context.Context, sess *model.WalletSession, method string, args ...interface{}) (*big.Int, error) {
	values, err := s.call(ctx, sess, method, args...)
	if err != nil {
		return nil, err
	}
	return abiBig(values, 0)
}

// send подписывает и отправляет транзакцию через кошелёк, возвращает её хеш
func (s *serv) send(ctx context.Context, sess *model.WalletSession, value *big.Int, gas uint64, method string, args ...interface{}) (common.Hash, error) {
	data, err := s.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, err
	}

	msg := callMsg{From: sess.Account, To: s.cfg.Address(), Data: data}
	if value != nil {
		msg.Value = (*hexutil.Big)(value)
	}
	if gas > 0 {
		g := hexutil.Uint64(gas)
		msg.Gas = &g
	}

	var hash common.Hash
	if err := eip1193.Call(ctx, sess.Provider, &hash, "eth_sendTransaction", msg); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

func abiBig(values []interface{}, i int) (*big.Int, error) {
	if i >= len(values) {
		return nil, errUnexpectedOutput
	}
	v, ok := values[i].(*big.Int)
	if !ok {
		return nil, errUnexpectedOutput
	}
	return v, nil
}
