package memory

import (
	"context"
	"sync"

	"numkit/domain/core"
	"numkit/models"
	"numkit/ports"
)

// HistoryRepository keeps computations in process memory. It is used when no
// database is configured and by tests.
type HistoryRepository struct {
	mu    sync.RWMutex
	items []*models.Computation
	index map[core.ID]*models.Computation
}

// NewHistoryRepository creates an empty in-memory history
func NewHistoryRepository() ports.HistoryRepository {
	return &HistoryRepository{
		index: make(map[core.ID]*models.Computation),
	}
}

// Save appends a copy of the computation
func (r *HistoryRepository) Save(ctx context.Context, computation *models.Computation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if computation == nil || computation.ID.IsEmpty() {
		return core.NewInvalidArgumentError("computation must have an id")
	}

	stored := *computation

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[stored.ID]; exists {
		return core.NewInvalidArgumentError("computation %s already recorded", stored.ID)
	}
	r.items = append(r.items, &stored)
	r.index[stored.ID] = &stored
	return nil
}

// Get returns a copy of the stored computation
func (r *HistoryRepository) Get(ctx context.Context, id core.ID) (*models.Computation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.index[id]
	if !ok {
		return nil, core.NewComputationNotFoundError(id)
	}
	out := *c
	return &out, nil
}

// ListRecent returns up to limit computations in reverse insertion order
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.Computation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*models.Computation{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	n := min(limit, len(r.items))
	out := make([]*models.Computation, 0, n)
	for i := len(r.items) - 1; i >= 0 && len(out) < n; i-- {
		c := *r.items[i]
		out = append(out, &c)
	}
	return out, nil
}
