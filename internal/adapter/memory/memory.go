// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"scoreboard/internal/domain"
)

// DB implements an in-memory score store.
type DB struct {
	mu        sync.Mutex
	scores    []domain.ScoreRecord
	idCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.ScoreRepository = (*DB)(nil)
var _ domain.SessionRegistry = (*Registry)(nil)

// --- ScoreRepository ---

// Insert appends a score record.
func (db *DB) Insert(ctx context.Context, username string, score int64, createdAt time.Time) (*domain.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	db.idCounter++
	rec := domain.ScoreRecord{
		ID:        db.idCounter,
		Username:  username,
		Score:     score,
		CreatedAt: createdAt.UTC(),
	}
	db.scores = append(db.scores, rec)
	return &rec, nil
}

// ListDescending lists all records by score descending.
func (db *DB) ListDescending(ctx context.Context) ([]domain.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.ScoreRecord, len(db.scores))
	copy(result, db.scores)

	// records are kept in insertion order, so a stable sort keeps ties by id
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result, nil
}

// Len returns the number of stored records.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.scores)
}

// --- SessionRegistry ---

// Registry is a process-local address -> token map. Its contents are lost
// on restart.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]string)}
}

// Put stores token for address, overwriting any previous one.
func (r *Registry) Put(_ context.Context, address, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[address] = token
	return nil
}

// Token returns the token held by address.
func (r *Registry) Token(_ context.Context, address string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[address]
	return t, ok, nil
}

// Count returns the number of addresses holding a session.
func (r *Registry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens), nil
}
