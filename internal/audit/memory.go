package audit

// #region imports
import (
	"context"
	"sync"

	"github.com/officemates/antigravity/internal/classifier"
)

// #endregion

// #region memory-recorder

// maxPerUser caps each user's in-memory streams. The source design kept these
// unbounded; capping keeps long-lived processes honest without changing what
// the trailing-window readers see.
const maxPerUser = 1000

// MemoryRecorder keeps per-user decision and event streams in process memory.
type MemoryRecorder struct {
	mu        sync.RWMutex
	decisions map[string][]Decision
	events    map[string][]classifier.LearningEvent
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		decisions: make(map[string][]Decision),
		events:    make(map[string][]classifier.LearningEvent),
	}
}

// RecordDecision appends to the user's decision stream.
func (r *MemoryRecorder) RecordDecision(_ context.Context, d Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.decisions[d.UserID], d)
	if len(list) > maxPerUser {
		list = list[len(list)-maxPerUser:]
	}
	r.decisions[d.UserID] = list
	return nil
}

// RecordEvent appends to the user's learning-event stream.
func (r *MemoryRecorder) RecordEvent(_ context.Context, userID string, ev classifier.LearningEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.events[userID], ev)
	if len(list) > maxPerUser {
		list = list[len(list)-maxPerUser:]
	}
	r.events[userID] = list
	return nil
}

// Decisions returns up to limit trailing decisions, oldest first.
func (r *MemoryRecorder) Decisions(_ context.Context, userID string, limit int) ([]Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tail(r.decisions[userID], limit), nil
}

// Events returns up to limit trailing learning events, oldest first.
func (r *MemoryRecorder) Events(_ context.Context, userID string, limit int) ([]classifier.LearningEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tail(r.events[userID], limit), nil
}

func tail[T any](list []T, limit int) []T {
	if limit <= 0 || limit >= len(list) {
		out := make([]T, len(list))
		copy(out, list)
		return out
	}
	out := make([]T, limit)
	copy(out, list[len(list)-limit:])
	return out
}

// #endregion memory-recorder
