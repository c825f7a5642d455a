// Package httpapi exposes the behavior engine over REST and WebSocket.
package httpapi

// #region imports
import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/officemates/antigravity/internal/engine"
	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/signals"
	"github.com/officemates/antigravity/internal/vision"
)

// #endregion

// #region handler

// maxBodyBytes bounds request bodies; frames arrive base64-encoded.
const maxBodyBytes = 4 << 20

// Handler serves the REST surface over one engine.
type Handler struct {
	engine *engine.Engine
	vision *vision.Client // nil when no extractor is configured
	log    zerolog.Logger
	now    func() time.Time
}

// NewHandler creates a handler. vision may be nil; the raw-frame path then
// returns an error to the caller.
func NewHandler(eng *engine.Engine, visionClient *vision.Client, log zerolog.Logger) *Handler {
	return &Handler{
		engine: eng,
		vision: visionClient,
		log:    log,
		now:    time.Now,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// #endregion handler

// #region analyze

// analyzeRequest accepts either pre-extracted signals or a raw base64 frame.
type analyzeRequest struct {
	UserID  string          `json:"user_id"`
	Signals json.RawMessage `json:"signals,omitempty"`
	Frame   []byte          `json:"frame,omitempty"`
}

// Analyze handles POST /api/focus/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var b signals.Behavioral
	switch {
	case len(req.Frame) > 0:
		if h.vision == nil {
			Error(w, http.StatusBadRequest, "raw frames not supported: no vision extractor configured")
			return
		}
		var err error
		b, err = h.vision.ExtractSignals(r.Context(), req.UserID, req.Frame)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", req.UserID).Msg("vision extraction failed")
			Error(w, http.StatusBadGateway, "vision extraction failed")
			return
		}
	default:
		b = signals.Decode(req.Signals)
	}

	res, err := h.engine.AnalyzeFrame(r.Context(), req.UserID, b, h.now())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("analyze failed")
		Error(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	JSON(w, http.StatusOK, res)
}

// #endregion analyze

// #region plan-endpoints

type planRequest struct {
	UserID      string `json:"user_id"`
	GoalMinutes int    `json:"goal_minutes"`
}

// GeneratePlan handles POST /api/focus/plan.
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	p, err := h.engine.GenerateFocusPlan(r.Context(), req.UserID, req.GoalMinutes, h.now())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("plan generation failed")
		Error(w, http.StatusInternalServerError, "plan generation failed")
		return
	}
	JSON(w, http.StatusOK, p)
}

type adaptRequest struct {
	UserID  string       `json:"user_id"`
	Trigger plan.Trigger `json:"trigger"`
}

type adaptResponse struct {
	Applied bool            `json:"applied"`
	Reason  string          `json:"reason"`
	Plan    *plan.FocusPlan `json:"plan"`
}

// AdaptPlan handles POST /api/focus/plan/adapt.
func (h *Handler) AdaptPlan(w http.ResponseWriter, r *http.Request) {
	var req adaptRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	res, p, err := h.engine.AdaptPlan(r.Context(), req.UserID, req.Trigger, h.now())
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("plan adaptation failed")
		Error(w, http.StatusInternalServerError, "plan adaptation failed")
		return
	}
	JSON(w, http.StatusOK, adaptResponse{Applied: res.Applied, Reason: res.Reason, Plan: p})
}

// #endregion plan-endpoints

// #region read-endpoints

// Decisions handles GET /api/antigravity/decisions/{userID}.
func (h *Handler) Decisions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	decisions, err := h.engine.DecisionLogs(r.Context(), userID, limitParam(r, 20))
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to read decisions")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"user_id": userID, "decisions": decisions})
}

// Events handles GET /api/antigravity/events/{userID}.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	events, err := h.engine.LearningEvents(r.Context(), userID, limitParam(r, 50))
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to read events")
		return
	}
	JSON(w, http.StatusOK, map[string]any{"user_id": userID, "events": events})
}

// TeachingReadiness handles GET /api/antigravity/teaching-readiness/{userID}.
func (h *Handler) TeachingReadiness(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	readiness, err := h.engine.ShouldTeach(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to evaluate readiness")
		return
	}
	JSON(w, http.StatusOK, readiness)
}

// StudentModel handles GET /api/antigravity/student-model/{userID}.
func (h *Handler) StudentModel(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	m, ok, err := h.engine.StudentModel(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to read student model")
		return
	}
	if !ok {
		Error(w, http.StatusNotFound, "unknown user")
		return
	}
	JSON(w, http.StatusOK, m)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// #endregion read-endpoints

// #region helpers

// decode parses the JSON body, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// #endregion helpers
