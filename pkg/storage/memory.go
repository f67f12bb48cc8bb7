package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/levenlabs/go-lflag"
	"github.com/patrickmn/go-cache"
)

// MemoryProvider implements the Database interface in process memory.
// Records expire after the configured retention. It is meant for local
// development and tests.
type MemoryProvider struct {
	records *cache.Cache
}

// configuredMemory sets up the in-memory provider.
func configuredMemory() *MemoryProvider {
	retention := lflag.Duration("memory-retention", 24*time.Hour, "How long the memory storage provider keeps projections")

	m := &MemoryProvider{}
	lflag.Do(func() {
		*m = *NewMemoryProvider(*retention)
	})
	return m
}

// NewMemoryProvider returns a MemoryProvider keeping records for retention.
// A non-positive retention keeps records until Close.
func NewMemoryProvider(retention time.Duration) *MemoryProvider {
	cleanup := retention / 2
	if retention <= 0 {
		retention = cache.NoExpiration
		cleanup = 0
	}
	return &MemoryProvider{records: cache.New(retention, cleanup)}
}

// SaveProjection implements Database.
func (m *MemoryProvider) SaveProjection(ctx context.Context, record types.ProjectionRecord) error {
	if record.ID == "" {
		return fmt.Errorf("projection id cannot be empty")
	}
	m.records.SetDefault(record.ID, record)
	return nil
}

// GetProjection implements Database.
func (m *MemoryProvider) GetProjection(ctx context.Context, id string) (types.ProjectionRecord, error) {
	v, ok := m.records.Get(id)
	if !ok {
		return types.ProjectionRecord{}, ErrProjectionNotFound
	}
	return v.(types.ProjectionRecord), nil
}

// ListProjections implements Database.
func (m *MemoryProvider) ListProjections(ctx context.Context, limit int) ([]types.ProjectionSummary, error) {
	items := m.records.Items()
	out := make([]types.ProjectionSummary, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(types.ProjectionRecord).Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements Database.
func (m *MemoryProvider) Close() error {
	m.records.Flush()
	return nil
}
