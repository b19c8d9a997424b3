package eip1193

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Watch опрашивает eth_accounts и eth_chainId и сообщает об изменениях.
// Первое прочитанное значение считается исходным и не отправляется.
// Ошибки опроса пропускаются, следующая попытка - на следующем тике
func Watch(ctx context.Context, r Requester, interval time.Duration, emit func(Message)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		accounts    []string
		chainID     string
		initialized bool
	)

	poll := func() {
		var gotAccounts []string
		if err := Call(ctx, r, &gotAccounts, "eth_accounts"); err != nil {
			return
		}
		var gotChain string
		if err := Call(ctx, r, &gotChain, "eth_chainId"); err != nil {
			return
		}
		gotAccounts = normalizeAccounts(gotAccounts)
		gotChain = strings.ToLower(gotChain)

		if !initialized {
			accounts, chainID, initialized = gotAccounts, gotChain, true
			return
		}
		if !slices.Equal(accounts, gotAccounts) {
			accounts = gotAccounts
			emit(Message{Event: AccountsChanged, Accounts: gotAccounts})
		}
		if chainID != gotChain {
			chainID = gotChain
			emit(Message{Event: ChainChanged, ChainID: gotChain})
		}
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

func normalizeAccounts(in []string) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = strings.ToLower(a)
	}
	return out
}
