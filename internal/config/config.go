package config

import (
	"os"
	"strconv"
)

const (
	// EnvProduction is the default runtime environment.
	EnvProduction = "production"
	// EnvDevelopment enables the debug listener alongside the service port.
	EnvDevelopment = "development"
)

// DatabaseConfig holds PostgreSQL connection and readiness-gate settings.
// Credential variables follow the POSTGRES_* convention used by the
// official postgres image so one env file can feed both containers.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int

	// Startup readiness gate: probe the database every ReadyIntervalSec
	// seconds with a ReadyTimeoutSec per-probe timeout, giving up after
	// ReadyRetries failed attempts.
	ReadyIntervalSec int
	ReadyTimeoutSec  int
	ReadyRetries     int
}

// MinIOConfig holds object storage settings for range state files and plans.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds JWT signing and admin bootstrap settings.
type AuthConfig struct {
	// Secret signs HS256 access tokens.
	Secret string
	// TokenTTLMinutes bounds access token lifetime.
	TokenTTLMinutes int

	// Admin account created on first startup if missing.
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env       string
	Port      string
	DebugPort string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Auth      AuthConfig
}

// IsDevelopment reports whether the app runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over .env contents.
func Load() *AppConfig {
	return &AppConfig{
		Env:       getEnv("APP_ENV", EnvProduction),
		Port:      getEnv("PORT", "80"),
		DebugPort: getEnv("DEBUG_PORT", "5678"),
		Database: DatabaseConfig{
			Host:               getEnv("POSTGRES_HOST", ""),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			User:               getEnv("POSTGRES_USER", ""),
			Password:           getEnv("POSTGRES_PASSWORD", ""),
			Name:               getEnv("POSTGRES_DB", ""),
			SSLMode:            getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ReadyIntervalSec:   getEnvInt("DB_READY_INTERVAL_SEC", 10),
			ReadyTimeoutSec:    getEnvInt("DB_READY_TIMEOUT_SEC", 5),
			ReadyRetries:       getEnvInt("DB_READY_RETRIES", 5),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "ranges"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			Secret:          getEnv("JWT_SECRET", ""),
			TokenTTLMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
			AdminEmail:      getEnv("ADMIN_EMAIL", ""),
			AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
			AdminName:       getEnv("ADMIN_NAME", "Admin"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
