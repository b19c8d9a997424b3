package converter

import (
	"errors"
	"net/http"

	"monad_spin/internal/model"
)

// ToErrorResponse - статус, код и сообщение для ответа с ошибкой.
// Ошибки без кода отдаются как 500 без подробностей
func ToErrorResponse(err error) (int, string, string) {
	var e *model.Error
	if errors.As(err, &e) {
		return e.Code.HTTPStatusCode(), string(e.Code), e.Message
	}
	return http.StatusInternalServerError, "INTERNAL", "internal error"
}
