package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first, if present; real environment
// variables win over the file.
//
// Recognized variables:
//
//	HTTP_ADDRESS        bind address for the HTTP API
//	DATABASE_DSN        PostgreSQL DSN
//	STORAGE_BACKEND     "postgres" or "inmemory"
//	JWT_SECRET          HMAC signing key
//	JWT_ISSUER          token issuer
//	JWT_AUDIENCE        token audience
//	JWT_EXPIRES_MINUTES token lifetime in minutes
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		config.StorageBackend = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		config.Issuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		config.Audience = v
	}
	if v := os.Getenv("JWT_EXPIRES_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
}
