package domain

import (
	"context"
)

// FoilRepository defines the abstraction for Foil
type FoilRepository interface {
	// InsertBatch persists all rows of one batch atomically: either the whole
	// batch becomes visible or none of it does.
	InsertBatch(ctx context.Context, foils []*Foil) error
	// GetAll returns every foil ordered by id.
	GetAll(ctx context.Context) ([]*Foil, error)
	// GetByBatch returns the foils of one batch ordered by id.
	GetByBatch(ctx context.Context, batch int) ([]*Foil, error)
	// GetByBatchRange returns the foils of the inclusive batch range.
	GetByBatchRange(ctx context.Context, startBatch, endBatch int) ([]*Foil, error)
	// GetFromBatch returns the foils of every batch at or above the threshold.
	GetFromBatch(ctx context.Context, startBatch int) ([]*Foil, error)
	// GetByTxID returns the foil funded by the given transaction, or
	// ErrFoilNotFound.
	GetByTxID(ctx context.Context, txid string) (*Foil, error)
	// NextBatchNumber scans linearly from first for the smallest batch number
	// with no rows.
	NextBatchNumber(ctx context.Context, first int) (int, error)
	// UpdateFoil persists the full state of one foil as a single row update.
	UpdateFoil(ctx context.Context, foil *Foil) error
	// Count returns the total number of foils.
	Count(ctx context.Context) (int64, error)
}
