package token

import (
	"net/http"

	dto "monad_spin/internal/api/dto/token"
	"monad_spin/internal/converter"
	"monad_spin/internal/service"
	"monad_spin/pkg/req"
	"monad_spin/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv   service.GameService
	Logger *zap.Logger
}

type Handler struct {
	serv   service.GameService
	logger *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// Stats перечитывает статистику с контракта
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.RefreshToken(r.Context())
	if err != nil {
		h.writeError(w, "refresh token stats", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats))
}

// Claim отправляет claim и ждёт подтверждения транзакции
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.serv.ClaimTokens(r.Context())
	if err != nil {
		h.writeError(w, "claim tokens", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTxResponse(*receipt))
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ConvertRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request")
		return
	}

	receipt, err := h.serv.ConvertPoints(r.Context(), payload.Points)
	if err != nil {
		h.writeError(w, "convert points", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTxResponse(*receipt))
}

func (h *Handler) WatchAsset(w http.ResponseWriter, r *http.Request) {
	added := h.serv.AddTokenToWallet(r.Context())

	resp.WriteJSONResponse(w, http.StatusOK, dto.WatchAssetResponse{Added: added})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status, code, msg := converter.ToErrorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.Error(err))
	}
	resp.WriteError(w, status, code, msg)
}
