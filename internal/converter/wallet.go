package converter

import (
	"monad_spin/internal/api/dto/wallet"
	"monad_spin/internal/model"

	"github.com/shopspring/decimal"
)

func ToWalletResponse(w model.WalletInfo, networks model.Networks) wallet.WalletResponse {
	address := w.Address.Hex()
	return wallet.WalletResponse{
		Address:      address,
		ShortAddress: ShortAddress(address),
		Balance:      formatBalance(w.Balance),
		ChainID:      w.ChainID,
		ChainName:    networks.ChainName(w.ChainID),
	}
}

func ToNetworksResponse(networks model.Networks, target uint64) []wallet.NetworkResponse {
	result := make([]wallet.NetworkResponse, len(networks))
	for i, n := range networks {
		result[i] = wallet.NetworkResponse{
			Key:        n.Key,
			ChainID:    n.ChainID,
			ChainIDHex: n.HexChainID(),
			Name:       n.Name,
			NativeCurrency: wallet.NativeCurrency{
				Name:     n.NativeCurrency.Name,
				Symbol:   n.NativeCurrency.Symbol,
				Decimals: n.NativeCurrency.Decimals,
			},
			RPCURLs:           n.RPCURLs,
			BlockExplorerURLs: n.ExplorerURLs,
			Target:            n.ChainID == target,
		}
	}
	return result
}

// ShortAddress - первые 6 и последние 4 символа адреса
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func formatBalance(balance string) string {
	d, err := decimal.NewFromString(balance)
	if err != nil {
		return balance
	}
	return d.StringFixed(4)
}
