package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

type MockRangeRepository struct {
	mock.Mock
}

func (m *MockRangeRepository) Create(ctx context.Context, r *model.Range) (*model.Range, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Range), args.Error(1)
}

func (m *MockRangeRepository) FindByID(ctx context.Context, id, ownerID string) (*model.Range, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Range), args.Error(1)
}

func (m *MockRangeRepository) List(ctx context.Context, ownerID string, pq repository.PageQuery) (*repository.PageResult[model.Range], error) {
	args := m.Called(ctx, ownerID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Range]), args.Error(1)
}

func (m *MockRangeRepository) UpdateState(ctx context.Context, id string, state model.RangeState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockRangeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
