package token

type ConvertRequest struct {
	Points int64 `json:"points"` // Сколько очков конвертировать (>0)
}

type StatsResponse struct {
	Balance            string `json:"balance"`
	TotalClaimed       string `json:"total_claimed"`
	LastClaimTime      int64  `json:"last_claim_time"`       // Unix, 0 если claim не было
	TimeUntilNextClaim int64  `json:"time_until_next_claim"` // Секунды
	ClaimableAmount    string `json:"claimable_amount"`
	GamePoints         string `json:"game_points"` // Очки, учтённые контрактом
}

type ContractInfoResponse struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        uint8  `json:"decimals"`
	TotalSupply     string `json:"total_supply"`
	MaxClaimAmount  string `json:"max_claim_amount"`
	ClaimCooldown   int64  `json:"claim_cooldown"` // Секунды
	ClaimFee        string `json:"claim_fee"`      // В нативной валюте
	ContractBalance string `json:"contract_balance"`
}

type TxResponse struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	Amount      string `json:"amount,omitempty"` // Токены из события контракта
	Points      string `json:"points,omitempty"` // Только для конвертации
}

type WatchAssetResponse struct {
	Added bool `json:"added"`
}
