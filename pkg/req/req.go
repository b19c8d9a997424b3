package req

import (
	"encoding/json"
	"errors"
	"io"
)

// Decode читает JSON тело запроса в структуру T.
// Пустое тело не является ошибкой
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}
	err := json.NewDecoder(body).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		return payload, err
	}
	return payload, nil
}
