package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Empty host and URL disable caching and rate limits.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWTSecret verifies the HS256 tokens issued by the auth provider
	JWTSecret string

	// AdminKeyHash is the bcrypt hash of the key guarding bulk import
	AdminKeyHash string

	// Object storage for food photos
	S3Bucket    string
	AWSRegion   string
	S3PublicURL string

	// ScheduleFile optionally overrides the compiled-in dining schedule
	ScheduleFile string

	MigrationsDir string

	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	applyDefaults(cfg, env)

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads ENV_FILE (default .env) into the process environment
// without overriding variables that are already set.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) {
	loadCommon(cfg, os.Getenv)
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
}

// loadDevConfig loads configuration for development from environment variables,
// falling back to Docker secrets for anything unset
func loadDevConfig(cfg *Config) {
	loadCommon(cfg, func(name string) string {
		if v := os.Getenv(name); v != "" {
			return v
		}
		return readSecret(strings.ToLower(name))
	})
}

// loadProdConfig loads configuration for production, secrets from Docker secrets only
func loadProdConfig(cfg *Config) {
	loadCommon(cfg, os.Getenv)
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.AdminKeyHash = readSecret("admin_key_hash")
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}
}

func loadCommon(cfg *Config, get func(string) string) {
	cfg.ServerPort = get("SERVER_PORT")
	cfg.ServerHost = get("SERVER_HOST")
	cfg.CORSOrigins = splitList(get("CORS_ORIGINS"))
	cfg.DBDriver = get("DB_DRIVER")
	cfg.DBPath = get("DB_PATH")
	cfg.DBHost = get("DB_HOST")
	cfg.DBPort = get("DB_PORT")
	cfg.DBUser = get("DB_USER")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = get("DB_NAME")
	cfg.DBSSLMode = get("DB_SSL_MODE")
	cfg.RedisHost = get("REDIS_HOST")
	cfg.RedisPort = get("REDIS_PORT")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisDB, _ = strconv.Atoi(get("REDIS_DB"))
	cfg.JWTSecret = get("JWT_SECRET")
	cfg.AdminKeyHash = get("ADMIN_KEY_HASH")
	cfg.S3Bucket = get("S3_BUCKET_NAME")
	cfg.AWSRegion = get("AWS_REGION")
	cfg.S3PublicURL = get("S3_PUBLIC_URL")
	cfg.ScheduleFile = get("SCHEDULE_FILE")
	cfg.MigrationsDir = get("MIGRATIONS_DIR")
	cfg.LogLevel = get("LOG_LEVEL")
	cfg.LogFormat = get("LOG_FORMAT")
}

func applyDefaults(cfg *Config, env Environment) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DBDriver == "sqlite" && cfg.DBPath == "" {
		cfg.DBPath = "illineats.db"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	if cfg.RedisHost != "" && cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = "illineats-food-images"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if env == Development {
			cfg.LogFormat = "console"
		}
	}
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
