package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
)

type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) CreateRangeTemplate(ctx context.Context, caller *model.User, t *model.RangeTemplate) (*model.RangeTemplate, error) {
	args := m.Called(ctx, caller, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeTemplate), args.Error(1)
}

func (m *MockTemplateService) GetRangeTemplate(ctx context.Context, caller *model.User, id string) (*model.RangeTemplate, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RangeTemplate), args.Error(1)
}

func (m *MockTemplateService) ListRangeTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, caller, standaloneOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateService) DeleteRangeTemplate(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockTemplateService) CreateVPCTemplate(ctx context.Context, caller *model.User, t *model.VPCTemplate) (*model.VPCTemplate, error) {
	args := m.Called(ctx, caller, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VPCTemplate), args.Error(1)
}

func (m *MockTemplateService) GetVPCTemplate(ctx context.Context, caller *model.User, id string) (*model.VPCTemplate, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VPCTemplate), args.Error(1)
}

func (m *MockTemplateService) ListVPCTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, caller, standaloneOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateService) DeleteVPCTemplate(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockTemplateService) CreateSubnetTemplate(ctx context.Context, caller *model.User, t *model.SubnetTemplate) (*model.SubnetTemplate, error) {
	args := m.Called(ctx, caller, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubnetTemplate), args.Error(1)
}

func (m *MockTemplateService) GetSubnetTemplate(ctx context.Context, caller *model.User, id string) (*model.SubnetTemplate, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubnetTemplate), args.Error(1)
}

func (m *MockTemplateService) ListSubnetTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, caller, standaloneOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateService) DeleteSubnetTemplate(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockTemplateService) CreateHostTemplate(ctx context.Context, caller *model.User, t *model.HostTemplate) (*model.HostTemplate, error) {
	args := m.Called(ctx, caller, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostTemplate), args.Error(1)
}

func (m *MockTemplateService) GetHostTemplate(ctx context.Context, caller *model.User, id string) (*model.HostTemplate, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HostTemplate), args.Error(1)
}

func (m *MockTemplateService) ListHostTemplates(ctx context.Context, caller *model.User, standaloneOnly bool) ([]model.TemplateHeader, error) {
	args := m.Called(ctx, caller, standaloneOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TemplateHeader), args.Error(1)
}

func (m *MockTemplateService) DeleteHostTemplate(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
