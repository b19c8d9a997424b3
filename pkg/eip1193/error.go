package eip1193

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Коды ошибок провайдера (EIP-1193, EIP-3085, EIP-3326)
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
	CodeUnrecognizedChain = 4902

	// Ответ узла не удалось разобрать
	CodeInvalidResponse = -32700
)

// Error - ошибка, которую вернул кошелёк
type Error struct {
	Code    int
	Message string
	Data    []byte // Сырые данные ошибки, например revert данные контракта
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// ErrorCode совместим с rpc.Error из go-ethereum
func (e *Error) ErrorCode() int {
	return e.Code
}

// AsError приводит ошибку rpc клиента к *Error
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	var re rpc.Error
	if !errors.As(err, &re) {
		return nil, false
	}
	pe = &Error{Code: re.ErrorCode(), Message: re.Error()}
	var de rpc.DataError
	if errors.As(err, &de) {
		pe.Data = decodeErrorData(de.ErrorData())
	}
	return pe, true
}

// HasCode проверяет код ошибки провайдера
func HasCode(err error, code int) bool {
	pe, ok := AsError(err)
	return ok && pe.Code == code
}

// decodeErrorData - узлы отдают revert данные строкой 0x... либо объектом
func decodeErrorData(v interface{}) []byte {
	switch d := v.(type) {
	case string:
		if b, err := hexutil.Decode(d); err == nil {
			return b
		}
		return []byte(d)
	case nil:
		return nil
	default:
		b, _ := json.Marshal(d)
		return b
	}
}
