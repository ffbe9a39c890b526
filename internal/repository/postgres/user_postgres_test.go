package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rangeapi/internal/model"
)

var userCols = []string{"id", "name", "email", "hashed_password", "is_admin", "public_key", "encrypted_private_key", "key_salt", "created_at", "last_active"}

func userRow(u *model.User) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		u.ID, u.Name, u.Email, u.HashedPassword, u.IsAdmin,
		u.PublicKey, u.EncryptedPrivateKey, u.KeySalt, u.CreatedAt, u.LastActive,
	)
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &model.User{
		ID:             "test-uuid",
		Name:           "Test User",
		Email:          "test@example.com",
		HashedPassword: "$2a$10$hash",
		CreatedAt:      now,
		LastActive:     now,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(u.ID, u.Name, u.Email, u.HashedPassword, u.IsAdmin,
			u.PublicKey, u.EncryptedPrivateKey, u.KeySalt, u.CreatedAt, u.LastActive).
		WillReturnRows(userRow(u))

	result, err := repo.Create(ctx, u)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, u.Email, result.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("found@example.com").
			WillReturnRows(userRow(&model.User{
				ID: "test-id", Name: "User", Email: "found@example.com",
				HashedPassword: "hash", CreatedAt: now, LastActive: now,
			}))

		u, err := repo.FindByEmail(ctx, "found@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "test-id", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "missing@example.com")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, u)
	})
}

func TestUserPostgres_TouchLastActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE users SET last_active").
		WithArgs("test-id", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.TouchLastActive(ctx, "test-id", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("test-id", "new-hash", "new-epk", "new-salt").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateCredentials(ctx, "test-id", "new-hash", "new-epk", "new-salt"))
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("missing", "new-hash", "new-epk", "new-salt").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateCredentials(ctx, "missing", "new-hash", "new-epk", "new-salt")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

func TestSecretPostgres_GetAndUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSecretPostgres(db)
	ctx := context.Background()

	t.Run("get found", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"user_id", "aws_access_key", "aws_secret_key", "aws_created_at",
			"azure_client_id", "azure_client_secret", "azure_created_at"}).
			AddRow("user-1", "enc-access", "enc-secret", &now, "", "", nil)

		mock.ExpectQuery("SELECT (.+) FROM secrets WHERE user_id = ?").
			WithArgs("user-1").
			WillReturnRows(rows)

		s, err := repo.Get(ctx, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "enc-access", s.AWSAccessKey)
		assert.True(t, s.HasAWS())
		assert.False(t, s.HasAzure())
	})

	t.Run("get not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM secrets WHERE user_id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		s, err := repo.Get(ctx, "missing")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, s)
	})

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO secrets").
			WithArgs("user-1", "enc-access", "enc-secret", nil, "", "", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(ctx, &model.Secret{
			UserID:       "user-1",
			AWSAccessKey: "enc-access",
			AWSSecretKey: "enc-secret",
		})
		assert.NoError(t, err)
	})
}
