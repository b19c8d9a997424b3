package wallet

import (
	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// SubscribeAccountsChanged - fn вызывается при смене списка аккаунтов в кошельке
func (s *serv) SubscribeAccountsChanged(fn func(accounts []string)) {
	s.subMtx.Lock()
	s.accountsSubs = append(s.accountsSubs, fn)
	s.subMtx.Unlock()
	s.attachListeners()
}

// SubscribeChainChanged - fn вызывается при смене сети в кошельке
func (s *serv) SubscribeChainChanged(fn func(chainID uint64)) {
	s.subMtx.Lock()
	s.chainSubs = append(s.chainSubs, fn)
	s.subMtx.Unlock()
	s.attachListeners()
}

// UnsubscribeAll снимает все подписки и обработчики провайдера
func (s *serv) UnsubscribeAll() {
	s.subMtx.Lock()
	s.accountsSubs = nil
	s.chainSubs = nil
	s.subMtx.Unlock()

	s.mtx.Lock()
	p := s.provider
	s.attached = false
	s.mtx.Unlock()
	if p != nil {
		p.RemoveAllListeners(eip1193.AccountsChanged)
		p.RemoveAllListeners(eip1193.ChainChanged)
	}
}

// attachListeners вешает обработчики на провайдера один раз за его жизнь
func (s *serv) attachListeners() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.provider == nil || s.attached {
		return
	}
	s.provider.On(eip1193.AccountsChanged, s.dispatchAccounts)
	s.provider.On(eip1193.ChainChanged, s.dispatchChain)
	s.attached = true
}

func (s *serv) dispatchAccounts(msg eip1193.Message) {
	s.subMtx.RLock()
	subs := append([]func([]string){}, s.accountsSubs...)
	s.subMtx.RUnlock()

	for _, fn := range subs {
		fn(append([]string(nil), msg.Accounts...))
	}
}

func (s *serv) dispatchChain(msg eip1193.Message) {
	chainID, err := hexutil.DecodeUint64(msg.ChainID)
	if err != nil {
		s.logger.Warn("invalid chain id from wallet", zap.String("chain_id", msg.ChainID), zap.Error(err))
		return
	}

	s.subMtx.RLock()
	subs := append([]func(uint64){}, s.chainSubs...)
	s.subMtx.RUnlock()

	for _, fn := range subs {
		fn(chainID)
	}
}
