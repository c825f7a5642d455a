package audit

// #region imports
import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/officemates/antigravity/internal/classifier"
)

// #endregion

// #region decision

// Decision is one append-only explainability record. Every automated action
// the loop takes must be answerable with "why did the system do this?".
type Decision struct {
	ID                     string    `json:"id"`
	Timestamp              time.Time `json:"timestamp"`
	Action                 string    `json:"action"`
	TriggeringEvidence     any       `json:"triggering_evidence"`
	AlternativesConsidered []string  `json:"alternatives_considered"`
	Reason                 string    `json:"reason"`
	UserID                 string    `json:"user_id"`
}

// NewDecision assembles a decision with a fresh id.
func NewDecision(userID, action string, evidence any, alternatives []string, reason string, now time.Time) Decision {
	return Decision{
		ID:                     uuid.New().String(),
		Timestamp:              now,
		Action:                 action,
		TriggeringEvidence:     evidence,
		AlternativesConsidered: alternatives,
		Reason:                 reason,
		UserID:                 userID,
	}
}

// #endregion decision

// #region recorder

// Recorder is the sink for decisions and learning events. The in-memory
// implementation mirrors the process-local history the API serves; the
// SQLite implementation persists the same stream for later inspection.
type Recorder interface {
	RecordDecision(ctx context.Context, d Decision) error
	RecordEvent(ctx context.Context, userID string, ev classifier.LearningEvent) error
	Decisions(ctx context.Context, userID string, limit int) ([]Decision, error)
	Events(ctx context.Context, userID string, limit int) ([]classifier.LearningEvent, error)
}

// #endregion recorder
