package token

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"monad_spin/internal/model"
	"monad_spin/internal/service"
	"monad_spin/pkg/eip1193"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

const (
	reasonInsufficientPoints = "Insufficient game points"
	reasonInsufficientSupply = "Insufficient tokens in contract"
)

// revertCodes - точное соответствие require() сообщений контракта кодам ошибок
var revertCodes = map[string]model.ErrorCode{
	reasonInsufficientPoints: model.ErrorCodeInsufficientPoints,
	reasonInsufficientSupply: model.ErrorCodeInsufficientContractSupply,
}

// ConvertPointsToTokens отправляет convertPointsToTokens(points)
func (s *serv) ConvertPointsToTokens(ctx context.Context, points int64) (service.PendingTx, error) {
	if points <= 0 {
		return nil, model.ErrInvalidAmount
	}
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	hash, err := s.send(ctx, sess, nil, s.cfg.ConvertGasLimit(), "convertPointsToTokens", big.NewInt(points))
	if err != nil {
		s.logger.Warn("points conversion failed", zap.Int64("points", points), zap.Error(err))
		return nil, classifyConversionError(err, points)
	}

	s.logger.Info("conversion transaction sent", zap.String("tx", hash.Hex()), zap.Int64("points", points))
	return s.newPendingTx(sess, hash, model.ErrorCodeConversionFailed), nil
}

// classifyConversionError разбирает revert данные Error(string),
// а если их нет - ищет известные фразы в тексте ошибки
func classifyConversionError(err error, points int64) error {
	if reason, ok := revertReason(err); ok {
		if code, found := revertCodes[reason]; found {
			return model.NewError(code, conversionMessage(code, points), err)
		}
		return model.NewError(model.ErrorCodeConversionFailed, "conversion failed: "+reason, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, reasonInsufficientPoints):
		return model.NewError(model.ErrorCodeInsufficientPoints, conversionMessage(model.ErrorCodeInsufficientPoints, points), err)
	case strings.Contains(msg, reasonInsufficientSupply):
		return model.NewError(model.ErrorCodeInsufficientContractSupply, conversionMessage(model.ErrorCodeInsufficientContractSupply, points), err)
	}
	return model.NewError(model.ErrorCodeConversionFailed, "conversion failed", err)
}

func conversionMessage(code model.ErrorCode, points int64) string {
	switch code {
	case model.ErrorCodeInsufficientPoints:
		return fmt.Sprintf("you need %d game points to convert", points)
	case model.ErrorCodeInsufficientContractSupply:
		return "contract is out of tokens for conversion"
	}
	return "conversion failed"
}

// revertReason достаёт строку из revert данных Error(string)
func revertReason(err error) (string, bool) {
	pe, ok := eip1193.AsError(err)
	if !ok || len(pe.Data) == 0 {
		return "", false
	}
	reason, unpackErr := abi.UnpackRevert(pe.Data)
	if unpackErr != nil {
		return "", false
	}
	return reason, true
}
