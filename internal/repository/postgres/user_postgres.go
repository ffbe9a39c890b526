package postgres

import (
	"context"
	"database/sql"
	"time"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, email, hashed_password, is_admin, public_key, encrypted_private_key, key_salt, created_at, last_active`

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.HashedPassword,
		&u.IsAdmin,
		&u.PublicKey,
		&u.EncryptedPrivateKey,
		&u.KeySalt,
		&u.CreatedAt,
		&u.LastActive,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, email, hashed_password, is_admin, public_key, encrypted_private_key, key_salt, created_at, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.HashedPassword,
		u.IsAdmin,
		u.PublicKey,
		u.EncryptedPrivateKey,
		u.KeySalt,
		u.CreatedAt,
		u.LastActive,
	)
	return scanUser(row)
}

// FindByEmail fetches a single user by email address.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// TouchLastActive updates the last_active timestamp for a user.
func (r *UserPostgres) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE users SET last_active = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}

// UpdateCredentials replaces the password hash and re-sealed key material.
func (r *UserPostgres) UpdateCredentials(ctx context.Context, id, hashedPassword, encryptedPrivateKey, keySalt string) error {
	const q = `
		UPDATE users
		SET hashed_password = $2, encrypted_private_key = $3, key_salt = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, hashedPassword, encryptedPrivateKey, keySalt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
