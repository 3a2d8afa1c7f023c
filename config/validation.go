package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errors []string
	require := func(value, field, source string) {
		if strings.TrimSpace(value) == "" {
			errors = append(errors, ValidationError{Field: field, Message: source + " is required"}.Error())
		}
	}

	secret := "environment variable"
	if env == Production {
		secret = "secret"
	}

	require(cfg.JWTSecret, "jwt_secret", secret)

	switch cfg.DBDriver {
	case "postgres":
		require(cfg.DBHost, "DB_HOST", "environment variable")
		require(cfg.DBUser, "DB_USER", "environment variable")
		require(cfg.DBName, "DB_NAME", "environment variable")
		require(cfg.DBPassword, "db_password", secret)
	case "sqlite":
		if env == Production {
			errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"}.Error())
		}
		require(cfg.DBPath, "DB_PATH", "environment variable")
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if env == Production {
		if !cfg.RedisEnabled() {
			errors = append(errors, ValidationError{Field: "REDIS_URL", Message: "redis is required in production"}.Error())
		}
		require(cfg.AWSRegion, "AWS_REGION", "environment variable")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
