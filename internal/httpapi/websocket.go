package httpapi

// #region imports
import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/officemates/antigravity/internal/engine"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region ws-handler

// wsFrame is one inbound WebSocket message: a behavioral signal payload,
// optionally timestamped by the client.
type wsFrame struct {
	Signals   json.RawMessage `json:"signals"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
}

// WSHandler streams frame signals in and analysis results out, one user per
// connection.
type WSHandler struct {
	engine *engine.Engine
	log    zerolog.Logger
	now    func() time.Time
}

// NewWSHandler creates a WebSocket handler over the engine.
func NewWSHandler(eng *engine.Engine, log zerolog.Logger) *WSHandler {
	return &WSHandler{engine: eng, log: log, now: time.Now}
}

// ServeHTTP upgrades the connection and runs the read-analyze-write loop
// until the client disconnects.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "session ended")

	h.log.Info().Str("user_id", userID).Msg("focus stream opened")

	ctx := r.Context()
	for {
		if err := h.handleFrame(ctx, conn, userID); err != nil {
			if isExpectedClose(err) {
				h.log.Info().Str("user_id", userID).Msg("focus stream closed")
			} else {
				h.log.Warn().Err(err).Str("user_id", userID).Msg("focus stream error")
			}
			return
		}
	}
}

func (h *WSHandler) handleFrame(ctx context.Context, conn *websocket.Conn, userID string) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}

	var frame wsFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return h.writeJSON(ctx, conn, map[string]string{"error": "invalid frame payload"})
	}

	ts := h.now()
	if frame.Timestamp != nil {
		ts = *frame.Timestamp
	}

	res, err := h.engine.AnalyzeFrame(ctx, userID, signals.Decode(frame.Signals), ts)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("analyze failed")
		return h.writeJSON(ctx, conn, map[string]string{"error": "analysis failed"})
	}

	return h.writeJSON(ctx, conn, res)
}

func (h *WSHandler) writeJSON(ctx context.Context, conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func isExpectedClose(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

// #endregion ws-handler
