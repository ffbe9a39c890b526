package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) CreateRangeTemplate(ctx context.Context, t *model.RangeTemplate) (*model.RangeTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindRangeTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.RangeTemplate, error) {
	args := m.Called(ctx, id, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListRangeTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateRepository) DeleteRangeTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockTemplateRepository) CreateVPCTemplate(ctx context.Context, t *model.VPCTemplate) (*model.VPCTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VPCTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindVPCTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.VPCTemplate, error) {
	args := m.Called(ctx, id, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VPCTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListVPCTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateRepository) DeleteVPCTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockTemplateRepository) CreateSubnetTemplate(ctx context.Context, t *model.SubnetTemplate) (*model.SubnetTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubnetTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindSubnetTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.SubnetTemplate, error) {
	args := m.Called(ctx, id, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubnetTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListSubnetTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateRepository) DeleteSubnetTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

func (m *MockTemplateRepository) CreateHostTemplate(ctx context.Context, t *model.HostTemplate) (*model.HostTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindHostTemplate(ctx context.Context, id string, q repository.TemplateQuery) (*model.HostTemplate, error) {
	args := m.Called(ctx, id, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListHostTemplateHeaders(ctx context.Context, q repository.TemplateQuery) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateRepository) DeleteHostTemplate(ctx context.Context, id string, q repository.TemplateQuery) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
