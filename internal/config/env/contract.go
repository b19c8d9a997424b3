package env

import (
	"errors"
	"fmt"
	"math/big"
	"monad_spin/internal/config"
	"monad_spin/pkg/units"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	contractAddressEnvName     = "TOKEN_CONTRACT_ADDRESS"
	claimFeeEnvName            = "CLAIM_FEE"
	claimGasLimitEnvName       = "CLAIM_GAS_LIMIT"
	convertGasLimitEnvName     = "CONVERT_GAS_LIMIT"
	receiptPollIntervalEnvName = "RECEIPT_POLL_INTERVAL"
	logPollIntervalEnvName     = "LOG_POLL_INTERVAL"
	tokenSymbolEnvName         = "TOKEN_SYMBOL"
	tokenImageEnvName          = "TOKEN_IMAGE"

	defaultContractAddress     = "0xffDDC37C8d6f91c5Eb40399575F599bf3c5a5BEc"
	defaultClaimFee            = "0.001" // ETH
	defaultClaimGasLimit       = 200000
	defaultConvertGasLimit     = 150000
	defaultReceiptPollInterval = 2 * time.Second
	defaultLogPollInterval     = 4 * time.Second
	defaultTokenSymbol         = "SPIN"
	defaultTokenImage          = "https://via.placeholder.com/64x64.png?text=SPIN"
)

type contractConfig struct {
	address             common.Address
	claimFee            *big.Int
	claimGasLimit       uint64
	convertGasLimit     uint64
	receiptPollInterval time.Duration
	logPollInterval     time.Duration
	tokenSymbol         string
	tokenImage          string
}

func NewContractConfig() (config.ContractConfig, error) {
	rawAddress := stringFromEnv(contractAddressEnvName, defaultContractAddress)
	if !common.IsHexAddress(rawAddress) {
		return nil, errors.New("invalid token contract address: " + rawAddress)
	}

	fee, err := units.ParseEther(stringFromEnv(claimFeeEnvName, defaultClaimFee))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", claimFeeEnvName, err)
	}

	claimGas, err := uintFromEnv(claimGasLimitEnvName, defaultClaimGasLimit)
	if err != nil {
		return nil, err
	}

	convertGas, err := uintFromEnv(convertGasLimitEnvName, defaultConvertGasLimit)
	if err != nil {
		return nil, err
	}

	receiptPoll, err := durationFromEnv(receiptPollIntervalEnvName, defaultReceiptPollInterval)
	if err != nil {
		return nil, err
	}

	logPoll, err := durationFromEnv(logPollIntervalEnvName, defaultLogPollInterval)
	if err != nil {
		return nil, err
	}

	return &contractConfig{
		address:             common.HexToAddress(rawAddress),
		claimFee:            fee,
		claimGasLimit:       claimGas,
		convertGasLimit:     convertGas,
		receiptPollInterval: receiptPoll,
		logPollInterval:     logPoll,
		tokenSymbol:         stringFromEnv(tokenSymbolEnvName, defaultTokenSymbol),
		tokenImage:          stringFromEnv(tokenImageEnvName, defaultTokenImage),
	}, nil
}

func (cfg *contractConfig) Address() common.Address {
	return cfg.address
}

// ClaimFee - копия, чтобы вызывающий не мог изменить значение
func (cfg *contractConfig) ClaimFee() *big.Int {
	return new(big.Int).Set(cfg.claimFee)
}

func (cfg *contractConfig) ClaimGasLimit() uint64 {
	return cfg.claimGasLimit
}

func (cfg *contractConfig) ConvertGasLimit() uint64 {
	return cfg.convertGasLimit
}

func (cfg *contractConfig) ReceiptPollInterval() time.Duration {
	return cfg.receiptPollInterval
}

func (cfg *contractConfig) LogPollInterval() time.Duration {
	return cfg.logPollInterval
}

func (cfg *contractConfig) TokenSymbol() string {
	return cfg.tokenSymbol
}

func (cfg *contractConfig) TokenDecimals() uint8 {
	return units.EtherDecimals
}

func (cfg *contractConfig) TokenImage() string {
	return cfg.tokenImage
}
