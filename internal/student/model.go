// Package student holds the per-user mutable state the behavior loop reads
// and writes, behind a repository interface so deployments can pick an
// in-process or Redis-backed store.
package student

// #region imports
import (
	"time"

	"github.com/officemates/antigravity/internal/classifier"
	"github.com/officemates/antigravity/internal/plan"
	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region constants

// MaxEvents bounds the retained learning-event history per user. The
// classifier and readiness checks only ever look at short trailing windows;
// the full stream goes to the audit store.
const MaxEvents = 100

// #endregion constants

// #region model

// Model is one user's process-lifetime state. Created lazily on first
// observation, never deleted. All mutation happens under the engine's
// per-user lock.
type Model struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	DistractionCount  int     `json:"distraction_count"`
	TotalFocusSeconds float64 `json:"total_focus_seconds"`

	// StatusHistory is the smoother's bounded frame window, newest last.
	StatusHistory []signals.FrameState `json:"status_history"`

	// Events is the trailing learning-event history, newest last, capped
	// at MaxEvents.
	Events []classifier.LearningEvent `json:"events"`

	LastLogTime           time.Time               `json:"last_log_time"`
	LastInterventionTime  time.Time               `json:"last_intervention_time"`
	LastInterventionType  signals.DistractionType `json:"last_intervention_type,omitempty"`
	LastDistractionStatus bool                    `json:"last_distraction_status"`

	// Content-engagement defaults used when the caller supplies no signal.
	CurrentContentTime float64 `json:"current_content_time"`
	InteractionCount   int     `json:"interaction_count"`

	SessionsCompleted     int `json:"sessions_completed"`
	PreferredWorkDuration int `json:"preferred_work_duration"`

	CurrentPlan *plan.FocusPlan `json:"current_plan,omitempty"`
}

// NewModel returns a fresh model with the lenient engagement defaults.
func NewModel(userID string, now time.Time) *Model {
	return &Model{
		UserID:                userID,
		CreatedAt:             now,
		CurrentContentTime:    30,
		InteractionCount:      1,
		PreferredWorkDuration: 25,
	}
}

// AppendEvent adds a learning event, evicting the oldest beyond MaxEvents.
func (m *Model) AppendEvent(ev classifier.LearningEvent) {
	m.Events = append(m.Events, ev)
	if len(m.Events) > MaxEvents {
		m.Events = m.Events[len(m.Events)-MaxEvents:]
	}
}

// RecentEvents returns up to n trailing events, newest last.
func (m *Model) RecentEvents(n int) []classifier.LearningEvent {
	if n <= 0 || len(m.Events) == 0 {
		return nil
	}
	if len(m.Events) <= n {
		return m.Events
	}
	return m.Events[len(m.Events)-n:]
}

// #endregion model
