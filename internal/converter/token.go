package converter

import (
	"time"

	"monad_spin/internal/api/dto/token"
	"monad_spin/internal/model"
)

func ToStatsResponse(s model.TokenStats) token.StatsResponse {
	out := token.StatsResponse{
		Balance:            s.Balance.String(),
		TotalClaimed:       s.TotalClaimed.String(),
		TimeUntilNextClaim: int64(s.TimeUntilNextClaim / time.Second),
		ClaimableAmount:    s.ClaimableAmount.String(),
		GamePoints:         "0",
	}
	if !s.LastClaimTime.IsZero() {
		out.LastClaimTime = s.LastClaimTime.Unix()
	}
	if s.GamePoints != nil {
		out.GamePoints = s.GamePoints.String()
	}
	return out
}

func ToContractInfoResponse(c model.ContractInfo) token.ContractInfoResponse {
	return token.ContractInfoResponse{
		Name:            c.Name,
		Symbol:          c.Symbol,
		Decimals:        c.Decimals,
		TotalSupply:     c.TotalSupply.String(),
		MaxClaimAmount:  c.MaxClaimAmount.String(),
		ClaimCooldown:   int64(c.ClaimCooldown / time.Second),
		ClaimFee:        c.ClaimFee.String(),
		ContractBalance: c.ContractBalance.String(),
	}
}

func ToTxResponse(r model.TxReceipt) token.TxResponse {
	out := token.TxResponse{
		TxHash:      r.TxHash.Hex(),
		BlockNumber: r.BlockNumber,
	}
	switch {
	case r.Claimed != nil:
		out.Amount = r.Claimed.Amount.String()
	case r.Converted != nil:
		out.Amount = r.Converted.Tokens.String()
		if r.Converted.Points != nil {
			out.Points = r.Converted.Points.String()
		}
	}
	return out
}
