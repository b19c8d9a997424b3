package config

import (
	"math/big"
	"time"

	"monad_spin/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	// Enabled - false, если DSN не задан и журнал не пишется
	Enabled() bool
}

type LoggerConfig interface {
	Level() string
	Environment() string
}

type WalletConfig interface {
	// ProviderURL - JSON-RPC эндпоинт кошелька, пустой если кошелька нет
	ProviderURL() string
	EventPollInterval() time.Duration
	// TargetChainID - сеть, на которую переключаемся после подключения
	TargetChainID() uint64
	Networks() model.Networks
}

type ContractConfig interface {
	Address() common.Address
	ClaimFee() *big.Int
	ClaimGasLimit() uint64
	ConvertGasLimit() uint64
	ReceiptPollInterval() time.Duration
	LogPollInterval() time.Duration
	TokenSymbol() string
	TokenDecimals() uint8
	TokenImage() string
}

type GameConfig interface {
	SpinDuration() time.Duration
	ClaimedResetDelay() time.Duration
	NoticeTTL() time.Duration
	StatsPollInterval() time.Duration
	CountdownTick() time.Duration
	RewardTable() model.RewardTable
}
