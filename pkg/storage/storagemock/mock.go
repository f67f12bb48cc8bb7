package storagemock

import (
	"context"

	"github.com/chargeplan/chargeplan/pkg/storage"
	"github.com/chargeplan/chargeplan/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) SaveProjection(ctx context.Context, record types.ProjectionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDatabase) GetProjection(ctx context.Context, id string) (types.ProjectionRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.ProjectionRecord), args.Error(1)
}

func (m *MockDatabase) ListProjections(ctx context.Context, limit int) ([]types.ProjectionSummary, error) {
	args := m.Called(ctx, limit)
	// return empty if not specified
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ProjectionSummary), args.Error(1)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}
