package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rangeapi/internal/config"
	"rangeapi/internal/crypto"
	"rangeapi/internal/model"
	"rangeapi/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// LoginResult carries the issued token plus the base64 master key the client
// must present on credential-bearing operations. The key is derived from the
// password at login and never stored server side.
type LoginResult struct {
	Token     string    `json:"token"`
	MasterKey string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService defines the registration, login and token use cases.
type AuthService interface {
	// Register creates an account with a fresh keypair sealed under a
	// password-derived master key.
	Register(ctx context.Context, name, email, password string) (*model.User, error)

	// Login verifies credentials and issues an HS256 access token. Unknown
	// email and wrong password fail identically.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// UpdatePassword re-hashes the password and re-seals the private key
	// under a master key derived from the new password.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// ParseToken validates an access token and returns the subject user ID.
	ParseToken(token string) (string, error)

	// GetUser loads a user by ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// EnsureAdmin creates the configured admin account if it does not exist.
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	users   repository.UserRepository
	secrets repository.SecretRepository
	cfg     config.AuthConfig
	now     func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, secrets repository.SecretRepository, cfg config.AuthConfig) AuthService {
	return &authService{users: users, secrets: secrets, cfg: cfg, now: time.Now}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	u, err := s.newUser(name, email, password, false)
	if err != nil {
		return nil, err
	}

	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	// Empty secret row so credential updates are plain upserts.
	if err := s.secrets.Upsert(ctx, &model.Secret{UserID: stored.ID}); err != nil {
		return nil, fmt.Errorf("init secrets: %w", err)
	}
	return stored, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(u.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}

	masterKey, err := crypto.RederiveMasterKey(password, u.KeySalt)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	expiresAt := s.now().Add(time.Duration(s.cfg.TokenTTLMinutes) * time.Minute)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": u.ID,
		"exp":  expiresAt.Unix(),
	}).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	// Best effort; login must not fail on a bookkeeping write.
	_ = s.users.TouchLastActive(ctx, u.ID, s.now().UTC())

	return &LoginResult{
		Token:     token,
		MasterKey: base64.StdEncoding.EncodeToString(masterKey),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if !crypto.CheckPassword(u.HashedPassword, currentPassword) {
		return ErrInvalidCredentials
	}

	oldKey, err := crypto.RederiveMasterKey(currentPassword, u.KeySalt)
	if err != nil {
		return fmt.Errorf("derive master key: %w", err)
	}
	privateKey, err := crypto.Open(oldKey, u.EncryptedPrivateKey)
	if err != nil {
		return fmt.Errorf("unseal private key: %w", err)
	}

	newHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	newKey, newSalt, err := crypto.DeriveMasterKey(newPassword)
	if err != nil {
		return err
	}
	sealed, err := crypto.Seal(newKey, privateKey)
	if err != nil {
		return fmt.Errorf("reseal private key: %w", err)
	}

	return s.users.UpdateCredentials(ctx, userID, newHash, sealed, newSalt)
}

func (s *authService) ParseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	u, err := s.newUser(s.cfg.AdminName, s.cfg.AdminEmail, s.cfg.AdminPassword, true)
	if err != nil {
		return err
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		return err
	}
	return s.secrets.Upsert(ctx, &model.Secret{UserID: stored.ID})
}

// newUser builds an account with hashed password and sealed key material.
func (s *authService) newUser(name, email, password string, isAdmin bool) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	privB64, pubB64, err := crypto.GenerateRSAKeyPair()
	if err != nil {
		return nil, err
	}
	masterKey, salt, err := crypto.DeriveMasterKey(password)
	if err != nil {
		return nil, err
	}
	sealed, err := crypto.Seal(masterKey, []byte(privB64))
	if err != nil {
		return nil, fmt.Errorf("seal private key: %w", err)
	}

	now := s.now().UTC()
	return &model.User{
		ID:                  uuid.NewString(),
		Name:                name,
		Email:               email,
		HashedPassword:      hash,
		IsAdmin:             isAdmin,
		PublicKey:           pubB64,
		EncryptedPrivateKey: sealed,
		KeySalt:             salt,
		CreatedAt:           now,
		LastActive:          now,
	}, nil
}
