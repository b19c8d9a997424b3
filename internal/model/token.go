package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenStats - снимок статистики пользователя по контракту.
// Не является источником истины, источник - контракт
type TokenStats struct {
	Balance            decimal.Decimal
	TotalClaimed       decimal.Decimal
	LastClaimTime      time.Time
	TimeUntilNextClaim time.Duration
	ClaimableAmount    decimal.Decimal
	GamePoints         *big.Int
}

// ContractInfo - статичные параметры токена
type ContractInfo struct {
	Name            string
	Symbol          string
	Decimals        uint8
	TotalSupply     decimal.Decimal
	MaxClaimAmount  decimal.Decimal
	ClaimCooldown   time.Duration
	ClaimFee        decimal.Decimal
	ContractBalance decimal.Decimal
}

// TokensClaimed - событие контракта TokensClaimed
type TokensClaimed struct {
	User        common.Address
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	BlockNumber uint64
	TxHash      common.Hash
}

// PointsConverted - событие контракта PointsConverted
type PointsConverted struct {
	User        common.Address
	Points      *big.Int
	Tokens      decimal.Decimal
	BlockNumber uint64
	TxHash      common.Hash
}

// TxReceipt - подтверждённая транзакция и события контракта из её логов
type TxReceipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	Claimed     *TokensClaimed   // Есть, если в логах нашлось TokensClaimed
	Converted   *PointsConverted // Есть, если в логах нашлось PointsConverted
}
