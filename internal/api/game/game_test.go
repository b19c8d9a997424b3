package game

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monad_spin/internal/model"
	"monad_spin/internal/service"
	"monad_spin/pkg/resp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGame struct {
	service.GameService

	session model.Session
	spinErr error
}

func (s *stubGame) Snapshot() model.Session { return s.session }

func (s *stubGame) Networks() model.Networks {
	return model.Networks{
		{Key: "sepolia", ChainID: 11155111, Name: "Sepolia Testnet"},
		{Key: "monad", ChainID: 10143, Name: "Monad Testnet"},
	}
}

func (s *stubGame) Spin(context.Context) (*model.SpinResult, error) {
	if s.spinErr != nil {
		return nil, s.spinErr
	}
	return &model.SpinResult{Index: 2, Rotation: 1552.5}, nil
}

func newHandler(g *stubGame) *Handler {
	return NewHandler(HandlerDeps{
		Serv:          g,
		SpinDuration:  3 * time.Second,
		TargetChainID: 11155111,
		Logger:        zap.NewNop(),
	})
}

func TestState_Disconnected(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubGame{session: model.Session{State: model.StateDisconnected}}).State(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "disconnected", body["state"])
	assert.Nil(t, body["wallet"])
	assert.Equal(t, "0s", body["cooldown_text"])
}

func TestSpin(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubGame{}).Spin(rec, httptest.NewRequest(http.MethodPost, "/game/spin", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"index":2,"rotation":1552.5,"duration_ms":3000}`, rec.Body.String())
}

func TestSpin_InProgress(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubGame{spinErr: model.ErrActionInProgress}).Spin(rec, httptest.NewRequest(http.MethodPost, "/game/spin", nil))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body resp.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ACTION_IN_PROGRESS", body.Error.Code)
}

func TestNetworks(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubGame{}).Networks(rec, httptest.NewRequest(http.MethodGet, "/networks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "0xaa36a7", body[0]["chain_id_hex"])
	assert.Equal(t, true, body[0]["target"])
	assert.Equal(t, "0x27a7", body[1]["chain_id_hex"])
	assert.Equal(t, false, body[1]["target"])
}
