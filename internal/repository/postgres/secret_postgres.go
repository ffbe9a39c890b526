package postgres

import (
	"context"
	"database/sql"

	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

// SecretPostgres is a PostgreSQL implementation of repository.SecretRepository.
type SecretPostgres struct {
	db *sql.DB
}

// NewSecretPostgres creates a new SecretPostgres repository.
func NewSecretPostgres(db *sql.DB) *SecretPostgres {
	return &SecretPostgres{db: db}
}

var _ repository.SecretRepository = (*SecretPostgres)(nil)

// Get fetches the secret row for a user.
func (r *SecretPostgres) Get(ctx context.Context, userID string) (*model.Secret, error) {
	const q = `
		SELECT user_id, aws_access_key, aws_secret_key, aws_created_at,
		       azure_client_id, azure_client_secret, azure_created_at
		FROM secrets
		WHERE user_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, userID)
	var s model.Secret
	if err := row.Scan(
		&s.UserID,
		&s.AWSAccessKey,
		&s.AWSSecretKey,
		&s.AWSCreatedAt,
		&s.AzureClientID,
		&s.AzureClientSecret,
		&s.AzureCreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserts or replaces the secret row for a user.
func (r *SecretPostgres) Upsert(ctx context.Context, s *model.Secret) error {
	const q = `
		INSERT INTO secrets (user_id, aws_access_key, aws_secret_key, aws_created_at,
		                     azure_client_id, azure_client_secret, azure_created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
		  aws_access_key = EXCLUDED.aws_access_key,
		  aws_secret_key = EXCLUDED.aws_secret_key,
		  aws_created_at = EXCLUDED.aws_created_at,
		  azure_client_id = EXCLUDED.azure_client_id,
		  azure_client_secret = EXCLUDED.azure_client_secret,
		  azure_created_at = EXCLUDED.azure_created_at
	`
	_, err := r.db.ExecContext(ctx, q,
		s.UserID,
		s.AWSAccessKey,
		s.AWSSecretKey,
		s.AWSCreatedAt,
		s.AzureClientID,
		s.AzureClientSecret,
		s.AzureCreatedAt,
	)
	return err
}
