// Package units переводит суммы в wei в десятичные значения и обратно
package units

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// EtherDecimals - количество знаков нативной валюты и токена SPIN
const EtherDecimals = 18

// FromWei переводит целое значение в десятичное с заданной точностью
func FromWei(wei *big.Int, decimals uint8) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -int32(decimals))
}

// FormatEther - строковое значение в ether, без лишних нулей
func FormatEther(wei *big.Int) string {
	return FromWei(wei, EtherDecimals).String()
}

// ToWei переводит десятичное значение в целое, дробный остаток отбрасывается
func ToWei(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).BigInt()
}

// ParseEther разбирает строку вида "0.001" в wei
func ParseEther(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, errors.New("negative amount")
	}
	return ToWei(d, EtherDecimals), nil
}
