package game

import (
	"net/http"
	"time"

	"monad_spin/internal/converter"
	"monad_spin/internal/service"
	"monad_spin/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv          service.GameService
	SpinDuration  time.Duration
	TargetChainID uint64
	Logger        *zap.Logger
}

type Handler struct {
	serv          service.GameService
	spinDuration  time.Duration
	targetChainID uint64
	logger        *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:          deps.Serv,
		spinDuration:  deps.SpinDuration,
		targetChainID: deps.TargetChainID,
		logger:        deps.Logger,
	}
}

// State отдаёт текущий снимок сессии
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	snap := h.serv.Snapshot()
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(snap, h.serv.Networks()))
}

func (h *Handler) Rewards(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRewardTableResponse(h.serv.Rewards()))
}

func (h *Handler) Networks(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToNetworksResponse(h.serv.Networks(), h.targetChainID))
}

// Spin запускает вращение, результат появится в /state после остановки колеса
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Spin(r.Context())
	if err != nil {
		h.writeError(w, "spin", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusAccepted, converter.ToSpinResponse(*result, h.spinDuration))
}

// Claim забирает выигрыш последнего вращения
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	reward, err := h.serv.ClaimWinnings(r.Context())
	if err != nil {
		h.writeError(w, "claim winnings", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRewardResponse(*reward))
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	status, code, msg := converter.ToErrorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.Error(err))
	}
	resp.WriteError(w, status, code, msg)
}
