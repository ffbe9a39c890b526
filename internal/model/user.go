package model

import "time"

// User represents a registered account.
// This is a pure domain model with no database-specific dependencies or tags.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`

	// Per-user asymmetric keypair. The private key is encrypted with a
	// master key derived from the login password, so the server can never
	// read stored cloud credentials without the user present.
	PublicKey           string `json:"-"`
	EncryptedPrivateKey string `json:"-"`
	KeySalt             string `json:"-"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Secret holds a user's cloud provider credentials. The key fields store
// sealed ciphertext; callers unseal them with the master key per request.
type Secret struct {
	UserID string `json:"user_id"`

	AWSAccessKey string     `json:"-"`
	AWSSecretKey string     `json:"-"`
	AWSCreatedAt *time.Time `json:"aws_created_at,omitempty"`

	AzureClientID     string     `json:"-"`
	AzureClientSecret string     `json:"-"`
	AzureCreatedAt    *time.Time `json:"azure_created_at,omitempty"`
}

// HasAWS reports whether AWS credentials are present.
func (s *Secret) HasAWS() bool {
	return s.AWSAccessKey != "" && s.AWSSecretKey != ""
}

// HasAzure reports whether Azure credentials are present.
func (s *Secret) HasAzure() bool {
	return s.AzureClientID != "" && s.AzureClientSecret != ""
}
