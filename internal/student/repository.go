package student

// #region imports
import (
	"context"
	"sync"
)

// #endregion

// #region repository

// Repository abstracts per-user model storage. Load reports whether the user
// exists; callers create models lazily. Implementations need not be safe for
// concurrent mutation of the same user — the engine serializes per user id.
type Repository interface {
	Load(ctx context.Context, userID string) (*Model, bool, error)
	Save(ctx context.Context, m *Model) error
}

// #endregion repository

// #region memory-repository

// MemoryRepository keeps models in a process-local map. This is the default
// store: state lives for the process lifetime and is never evicted.
type MemoryRepository struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewMemoryRepository creates an empty in-process repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{models: make(map[string]*Model)}
}

// Load returns the stored model for the user, if any.
func (r *MemoryRepository) Load(_ context.Context, userID string) (*Model, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[userID]
	return m, ok, nil
}

// Save stores the model under its user id.
func (r *MemoryRepository) Save(_ context.Context, m *Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.UserID] = m
	return nil
}

// #endregion memory-repository
