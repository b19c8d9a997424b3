package resp

import (
	"encoding/json"
	"net/http"
)

// ErrorBody - тело ответа с ошибкой
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSONResponse пишет JSON ответ с заданным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError пишет ошибку в едином формате
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSONResponse(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}
