package token

import (
	"context"
	"time"

	"monad_spin/internal/model"
	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

const receiptStatusSuccess = 1

type rpcReceipt struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     hexutil.Uint64 `json:"blockNumber"`
	Status          hexutil.Uint64 `json:"status"`
	Logs            []rpcLog       `json:"logs"`
}

type pendingTx struct {
	serv     *serv
	provider eip1193.Requester
	hash     common.Hash
	interval time.Duration
	failCode model.ErrorCode
}

func (s *serv) newPendingTx(sess *model.WalletSession, hash common.Hash, failCode model.ErrorCode) *pendingTx {
	return &pendingTx{
		serv:     s,
		provider: sess.Provider,
		hash:     hash,
		interval: s.cfg.ReceiptPollInterval(),
		failCode: failCode,
	}
}

func (p *pendingTx) Hash() common.Hash {
	return p.hash
}

// Wait ждёт квитанцию транзакции. Откат транзакции возвращается с кодом операции
func (p *pendingTx) Wait(ctx context.Context) (*model.TxReceipt, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		var receipt *rpcReceipt
		if err := eip1193.Call(ctx, p.provider, &receipt, "eth_getTransactionReceipt", p.hash); err != nil {
			return nil, model.NewError(p.failCode, "failed to fetch transaction receipt", err)
		}

		if receipt != nil {
			if receipt.Status != receiptStatusSuccess {
				p.serv.logger.Warn("transaction reverted", zap.String("tx", p.hash.Hex()))
				return nil, model.NewError(p.failCode, "transaction reverted: "+p.hash.Hex(), nil)
			}
			return p.serv.buildReceipt(receipt), nil
		}

		select {
		case <-ctx.Done():
			return nil, model.NewError(p.failCode, "transaction not confirmed", ctx.Err())
		case <-ticker.C:
		}
	}
}

// buildReceipt ищет в логах квитанции события нашего контракта
func (s *serv) buildReceipt(r *rpcReceipt) *model.TxReceipt {
	out := &model.TxReceipt{
		TxHash:      r.TransactionHash,
		BlockNumber: uint64(r.BlockNumber),
	}
	for _, l := range r.Logs {
		if l.Address != s.cfg.Address() {
			continue
		}
		switch ev := s.decodeLog(l).(type) {
		case *model.TokensClaimed:
			out.Claimed = ev
		case *model.PointsConverted:
			out.Converted = ev
		}
	}
	return out
}
