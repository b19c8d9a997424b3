package wallet

import (
	"net/http"

	dto "monad_spin/internal/api/dto/wallet"
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

// Connect подключает кошелёк и открывает новую игровую сессию
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	info, err := h.serv.Connect(r.Context())
	if err != nil {
		h.writeError(w, "connect", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*info, h.serv.Networks()))
}

// Disconnect закрывает сессию, очки не сохраняются
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.serv.Disconnect(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SwitchNetwork(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SwitchNetworkRequest](r.Body)
	if err != nil || payload.ChainID == 0 {
		resp.WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "chain_id is required")
		return
	}

	if err := h.serv.SwitchNetwork(r.Context(), payload.ChainID); err != nil {
		h.writeError(w, "switch network", err)
		return
	}

	snap := h.serv.Snapshot()
	if snap.Wallet == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWalletResponse(*snap.Wallet, h.serv.Networks()))
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status, code, msg := converter.ToErrorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.Error(err))
	}
	resp.WriteError(w, status, code, msg)
}
