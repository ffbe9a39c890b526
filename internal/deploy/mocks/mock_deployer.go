package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/deploy"
)

type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, plan *deploy.Plan, creds deploy.Credentials) ([]byte, error) {
	args := m.Called(ctx, plan, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDeployer) Destroy(ctx context.Context, plan *deploy.Plan, state []byte, creds deploy.Credentials) error {
	args := m.Called(ctx, plan, state, creds)
	return args.Error(0)
}
