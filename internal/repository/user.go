package repository

import (
	"context"
	"time"

	"rangeapi/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by email address.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// TouchLastActive updates the user's last_active timestamp.
	TouchLastActive(ctx context.Context, id string, at time.Time) error

	// UpdateCredentials replaces the password hash and re-sealed key material.
	UpdateCredentials(ctx context.Context, id, hashedPassword, encryptedPrivateKey, keySalt string) error
}

// SecretRepository defines data access for per-user cloud credentials.
// Stored values are already encrypted by the service layer.
type SecretRepository interface {
	// Get returns the secret row for a user. sql.ErrNoRows when absent.
	Get(ctx context.Context, userID string) (*model.Secret, error)

	// Upsert inserts or replaces the secret row for a user.
	Upsert(ctx context.Context, s *model.Secret) error
}
