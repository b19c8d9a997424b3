package wallet

type SwitchNetworkRequest struct {
	ChainID uint64 `json:"chain_id"` // Целевая сеть
}

type WalletResponse struct {
	Address      string `json:"address"`       // EIP-55
	ShortAddress string `json:"short_address"` // 0x1234...abcd
	Balance      string `json:"balance"`       // В нативной валюте, 4 знака
	ChainID      uint64 `json:"chain_id"`
	ChainName    string `json:"chain_name"`
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type NetworkResponse struct {
	Key               string         `json:"key"`
	ChainID           uint64         `json:"chain_id"`
	ChainIDHex        string         `json:"chain_id_hex"`
	Name              string         `json:"name"`
	NativeCurrency    NativeCurrency `json:"native_currency"`
	RPCURLs           []string       `json:"rpc_urls"`
	BlockExplorerURLs []string       `json:"block_explorer_urls"`
	Target            bool           `json:"target"` // Сеть, на которую переключаемся при подключении
}
