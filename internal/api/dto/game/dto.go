package game

import (
	"monad_spin/internal/api/dto/token"
	"monad_spin/internal/api/dto/wallet"
)

type StateResponse struct {
	State     string                 `json:"state"`      // disconnected, connected, spinning, won, claimed
	SessionID string                 `json:"session_id"` // Пусто без подключения
	Wallet    *wallet.WalletResponse `json:"wallet"`
	Points    int64                  `json:"points"`  // Игровые очки сессии
	Balance   int64                  `json:"balance"` // Собранные монеты
	Rotation  float64                `json:"rotation"`
	LastWin   *RewardResponse        `json:"last_win"`
	Collected []RewardResponse       `json:"collected"` // Призы вайтлиста

	TokenStats   *token.StatsResponse        `json:"token_stats"`
	ContractInfo *token.ContractInfoResponse `json:"contract_info"`
	Cooldown     int64                       `json:"cooldown"`      // Секунд до claim
	CooldownText string                      `json:"cooldown_text"` // "1h 2m 3s"
	CanClaim     bool                        `json:"can_claim"`

	IsConnecting       bool `json:"is_connecting"`
	IsSpinning         bool `json:"is_spinning"`
	IsClaiming         bool `json:"is_claiming"`
	IsConverting       bool `json:"is_converting"`
	IsSwitchingNetwork bool `json:"is_switching_network"`

	Error  string `json:"error,omitempty"`
	Notice string `json:"notice,omitempty"`
}

type RewardResponse struct {
	Label    string `json:"label"`
	Category string `json:"category"` // Множитель или категория приза
	Color    string `json:"color"`
	Points   int64  `json:"points"`
}

type RewardTableResponse struct {
	Name    string           `json:"name"`
	Variant string           `json:"variant"`
	Rewards []RewardResponse `json:"rewards"`
}

// SpinResponse - куда повернуть колесо. Выигрыш виден в /state после остановки
type SpinResponse struct {
	Index      int     `json:"index"`
	Rotation   float64 `json:"rotation"`
	DurationMS int64   `json:"duration_ms"`
}
