package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode - код ошибки, по которому классифицируются сбои шлюзов и координатора
type ErrorCode string

const (
	// Кошелёк
	ErrorCodeNoProvider         ErrorCode = "NO_PROVIDER"
	ErrorCodeUserRejected       ErrorCode = "USER_REJECTED"
	ErrorCodeProvider           ErrorCode = "PROVIDER_ERROR"
	ErrorCodeUnrecognizedChain  ErrorCode = "UNRECOGNIZED_CHAIN"
	ErrorCodeUnsupportedNetwork ErrorCode = "UNSUPPORTED_NETWORK"

	// Нарушение порядка вызовов
	ErrorCodeNotConnected           ErrorCode = "NOT_CONNECTED"
	ErrorCodeContractNotInitialized ErrorCode = "CONTRACT_NOT_INITIALIZED"

	// Контракт
	ErrorCodeRead                       ErrorCode = "READ_ERROR"
	ErrorCodeClaimFailed                ErrorCode = "CLAIM_FAILED"
	ErrorCodeInsufficientPoints         ErrorCode = "INSUFFICIENT_POINTS"
	ErrorCodeInsufficientContractSupply ErrorCode = "INSUFFICIENT_CONTRACT_SUPPLY"
	ErrorCodeConversionFailed           ErrorCode = "CONVERSION_FAILED"

	// Координатор
	ErrorCodeInvalidState     ErrorCode = "INVALID_STATE"
	ErrorCodeActionInProgress ErrorCode = "ACTION_IN_PROGRESS"
	ErrorCodeClaimUnavailable ErrorCode = "CLAIM_UNAVAILABLE"
	ErrorCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
)

// HTTPStatusCode возвращает HTTP статус для кода ошибки
func (c ErrorCode) HTTPStatusCode() int {
	switch c {
	case ErrorCodeNoProvider, ErrorCodeProvider, ErrorCodeRead:
		return http.StatusBadGateway
	case ErrorCodeUserRejected:
		return http.StatusForbidden
	case ErrorCodeUnrecognizedChain, ErrorCodeUnsupportedNetwork, ErrorCodeInvalidAmount:
		return http.StatusBadRequest
	case ErrorCodeNotConnected, ErrorCodeContractNotInitialized:
		return http.StatusPreconditionFailed
	case ErrorCodeInvalidState, ErrorCodeActionInProgress, ErrorCodeClaimUnavailable:
		return http.StatusConflict
	case ErrorCodeClaimFailed, ErrorCodeInsufficientPoints, ErrorCodeInsufficientContractSupply, ErrorCodeConversionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error - ошибка с кодом и исходной причиной
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewError создает ошибку с кодом
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы работал errors.Is(err, model.ErrNotConnected)
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNoProvider                 = NewError(ErrorCodeNoProvider, "a Web3 wallet provider is required", nil)
	ErrUserRejected               = NewError(ErrorCodeUserRejected, "request rejected by user", nil)
	ErrProvider                   = NewError(ErrorCodeProvider, "wallet provider error", nil)
	ErrUnrecognizedChain          = NewError(ErrorCodeUnrecognizedChain, "chain is not added to the wallet", nil)
	ErrUnsupportedNetwork         = NewError(ErrorCodeUnsupportedNetwork, "unsupported network", nil)
	ErrNotConnected               = NewError(ErrorCodeNotConnected, "wallet not connected", nil)
	ErrContractNotInitialized     = NewError(ErrorCodeContractNotInitialized, "contract not initialized", nil)
	ErrRead                       = NewError(ErrorCodeRead, "contract read failed", nil)
	ErrClaimFailed                = NewError(ErrorCodeClaimFailed, "claim failed", nil)
	ErrInsufficientPoints         = NewError(ErrorCodeInsufficientPoints, "insufficient game points", nil)
	ErrInsufficientContractSupply = NewError(ErrorCodeInsufficientContractSupply, "contract is out of tokens for conversion", nil)
	ErrConversionFailed           = NewError(ErrorCodeConversionFailed, "conversion failed", nil)
	ErrInvalidState               = NewError(ErrorCodeInvalidState, "action not allowed in current state", nil)
	ErrActionInProgress           = NewError(ErrorCodeActionInProgress, "action already in progress", nil)
	ErrClaimUnavailable           = NewError(ErrorCodeClaimUnavailable, "claim is not available yet", nil)
	ErrInvalidAmount              = NewError(ErrorCodeInvalidAmount, "amount must be positive", nil)
)

// CodeOf достаёт код ошибки из цепочки, пустая строка если кода нет
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
