package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
	"rangeapi/internal/service"
)

type MockRangeService struct {
	mock.Mock
}

func (m *MockRangeService) Deploy(ctx context.Context, caller *model.User, masterKey []byte, templateID string, region model.Region) (*model.Range, error) {
	args := m.Called(ctx, caller, masterKey, templateID, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Range), args.Error(1)
}

func (m *MockRangeService) Destroy(ctx context.Context, caller *model.User, masterKey []byte, id string) error {
	args := m.Called(ctx, caller, masterKey, id)
	return args.Error(0)
}

func (m *MockRangeService) Get(ctx context.Context, caller *model.User, id string) (*model.Range, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Range), args.Error(1)
}

func (m *MockRangeService) List(ctx context.Context, caller *model.User, limit, offset int) (*service.RangeListResult, error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RangeListResult), args.Error(1)
}
