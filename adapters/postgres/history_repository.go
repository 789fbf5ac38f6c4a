package postgres

import (
	"context"
	"database/sql"
	"errors"

	"numkit/domain/core"
	apperrors "numkit/internal/errors"
	"numkit/models"
	"numkit/ports"

	"github.com/jmoiron/sqlx"
)

// HistoryRepositoryImpl implements HistoryRepository for PostgreSQL
type HistoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new PostgreSQL computation history
func NewHistoryRepository(db *sqlx.DB) ports.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

// Save inserts a computation record
func (r *HistoryRepositoryImpl) Save(ctx context.Context, computation *models.Computation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO computations (
			id, kind, operation, label, input, result, created_at
		) VALUES (
			:id, :kind, :operation, :label, :input, :result, :created_at
		)
	`, computation)
	if err != nil {
		return apperrors.DatabaseError("failed to save computation", err)
	}
	return nil
}

// Get retrieves a computation by id
func (r *HistoryRepositoryImpl) Get(ctx context.Context, id core.ID) (*models.Computation, error) {
	var computation models.Computation
	err := r.db.GetContext(ctx, &computation, `
		SELECT id, kind, operation, label, input, result, created_at
		FROM computations
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewComputationNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get computation", err)
	}
	return &computation, nil
}

// ListRecent returns the newest computations first
func (r *HistoryRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.Computation, error) {
	computations := []*models.Computation{}
	if limit <= 0 {
		return computations, nil
	}
	err := r.db.SelectContext(ctx, &computations, `
		SELECT id, kind, operation, label, input, result, created_at
		FROM computations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list computations", err)
	}
	return computations, nil
}
