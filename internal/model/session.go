package model

import (
	"math/big"
	"time"
)

// Session - состояние координатора для одной сессии кошелька
type Session struct {
	ID    string
	State GameState

	Wallet *WalletInfo

	Points  int64 // Игровые очки (spin power), копятся локально до конвертации
	Balance int64 // Собранные монеты

	Pending  *SpinResult // Текущее вращение
	LastWin  *SpinResult
	Rotation float64

	Collected []Reward // Собранные призы (вариант nft_whitelist)

	TokenStats   *TokenStats
	ContractInfo *ContractInfo
	Cooldown     int64 // Секунд до следующего claim, локальный обратный отсчёт

	IsConnecting       bool
	IsSpinning         bool
	IsClaiming         bool
	IsConverting       bool
	IsSwitchingNetwork bool

	Error    string
	Notice   string
	NoticeAt time.Time
}

// CanClaim - claim доступен только после кулдауна и при ненулевой сумме
func (s *Session) CanClaim() bool {
	if s.TokenStats == nil || s.Cooldown > 0 {
		return false
	}
	return s.TokenStats.ClaimableAmount.Sign() > 0
}

// Clone - глубокая копия, которую можно отдавать наружу
func (s Session) Clone() Session {
	out := s
	if s.Wallet != nil {
		w := *s.Wallet
		out.Wallet = &w
	}
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	if s.LastWin != nil {
		l := *s.LastWin
		out.LastWin = &l
	}
	if s.Collected != nil {
		out.Collected = append([]Reward(nil), s.Collected...)
	}
	if s.TokenStats != nil {
		ts := *s.TokenStats
		if ts.GamePoints != nil {
			ts.GamePoints = new(big.Int).Set(ts.GamePoints)
		}
		out.TokenStats = &ts
	}
	if s.ContractInfo != nil {
		ci := *s.ContractInfo
		out.ContractInfo = &ci
	}
	return out
}
