package storage

import (
	"context"
	"errors"

	"github.com/chargeplan/chargeplan/pkg/types"
)

var (
	ErrProjectionNotFound = errors.New("projection not found")
)

// DefaultListLimit is the number of projections listed when no limit is given.
const DefaultListLimit = 50

// Database defines the interface for persisting projections.
type Database interface {
	// SaveProjection stores the record, replacing any record with the same ID.
	SaveProjection(ctx context.Context, record types.ProjectionRecord) error
	// GetProjection returns ErrProjectionNotFound for an unknown ID.
	GetProjection(ctx context.Context, id string) (types.ProjectionRecord, error)
	// ListProjections returns summaries newest first.
	ListProjections(ctx context.Context, limit int) ([]types.ProjectionSummary, error)

	// Lifecycle
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
