package converter

import (
	"fmt"
	"time"

	"monad_spin/internal/api/dto/game"
	"monad_spin/internal/model"
)

func ToStateResponse(s model.Session, networks model.Networks) game.StateResponse {
	out := game.StateResponse{
		State:              string(s.State),
		SessionID:          s.ID,
		Points:             s.Points,
		Balance:            s.Balance,
		Rotation:           s.Rotation,
		Collected:          toRewards(s.Collected),
		Cooldown:           s.Cooldown,
		CooldownText:       FormatCooldown(s.Cooldown),
		CanClaim:           s.CanClaim(),
		IsConnecting:       s.IsConnecting,
		IsSpinning:         s.IsSpinning,
		IsClaiming:         s.IsClaiming,
		IsConverting:       s.IsConverting,
		IsSwitchingNetwork: s.IsSwitchingNetwork,
		Error:              s.Error,
		Notice:             s.Notice,
	}
	if s.Wallet != nil {
		w := ToWalletResponse(*s.Wallet, networks)
		out.Wallet = &w
	}
	if s.LastWin != nil {
		r := ToRewardResponse(s.LastWin.Reward)
		out.LastWin = &r
	}
	if s.TokenStats != nil {
		st := ToStatsResponse(*s.TokenStats)
		out.TokenStats = &st
	}
	if s.ContractInfo != nil {
		ci := ToContractInfoResponse(*s.ContractInfo)
		out.ContractInfo = &ci
	}
	return out
}

func ToRewardResponse(r model.Reward) game.RewardResponse {
	return game.RewardResponse{
		Label:    r.Label,
		Category: r.Category,
		Color:    r.Color,
		Points:   r.Points,
	}
}

func ToRewardTableResponse(t model.RewardTable) game.RewardTableResponse {
	return game.RewardTableResponse{
		Name:    t.Name,
		Variant: string(t.Variant),
		Rewards: toRewards(t.Rewards),
	}
}

func ToSpinResponse(r model.SpinResult, duration time.Duration) game.SpinResponse {
	return game.SpinResponse{
		Index:      r.Index,
		Rotation:   r.Rotation,
		DurationMS: duration.Milliseconds(),
	}
}

func toRewards(rewards []model.Reward) []game.RewardResponse {
	result := make([]game.RewardResponse, len(rewards))
	for i, r := range rewards {
		result[i] = ToRewardResponse(r)
	}
	return result
}

// FormatCooldown - "1h 2m 3s", "2m 3s" или "3s"
func FormatCooldown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
