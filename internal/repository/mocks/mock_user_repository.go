package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rangeapi/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCredentials(ctx context.Context, id, hashedPassword, encryptedPrivateKey, keySalt string) error {
	args := m.Called(ctx, id, hashedPassword, encryptedPrivateKey, keySalt)
	return args.Error(0)
}

type MockSecretRepository struct {
	mock.Mock
}

func (m *MockSecretRepository) Get(ctx context.Context, userID string) (*model.Secret, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Secret), args.Error(1)
}

func (m *MockSecretRepository) Upsert(ctx context.Context, s *model.Secret) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
