package repository

import (
	"context"

	"rangeapi/internal/model"
)

// RangeRepository defines data access for deployed ranges.
type RangeRepository interface {
	// Create inserts a deployed range record and returns the stored row.
	Create(ctx context.Context, r *model.Range) (*model.Range, error)

	// FindByID returns a range by ID, scoped to ownerID unless it is empty.
	FindByID(ctx context.Context, id, ownerID string) (*model.Range, error)

	// List returns ranges owned by ownerID, newest first.
	List(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Range], error)

	// UpdateState transitions the lifecycle state of a range.
	UpdateState(ctx context.Context, id string, state model.RangeState) error

	// Delete removes a range row by ID. Nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
