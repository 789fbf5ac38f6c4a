package ports

import (
	"context"

	"numkit/domain/core"
	"numkit/models"
)

// HistoryRepository defines the interface for computation history storage
type HistoryRepository interface {
	// Save stores a new computation
	Save(ctx context.Context, computation *models.Computation) error

	// Get returns one computation or an error wrapping core.ErrComputationNotFound
	Get(ctx context.Context, id core.ID) (*models.Computation, error)

	// ListRecent returns up to limit computations, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.Computation, error)
}
