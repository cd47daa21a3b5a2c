package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from the environment.
type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBSSLRootCert string

	JWTSecret     string
	JWTExpiration time.Duration

	PlanRetention time.Duration
	SweepInterval time.Duration

	ServerPort string
	BaseURL    string
	AppEnv     string
	GinMode    string
	LogLevel   string
}

// ErrMissingJWTSecret is returned when JWT_SECRET is unset. There is no
// embedded fallback secret; the process must fail fast without one.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads configuration from the environment, optionally seeded from a
// .env file.
func Load() (*Config, error) {
	// .env file is optional; plain environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "planhive"),
		DBPassword:    getEnv("DB_PASSWORD", "planhive"),
		DBName:        getEnv("DB_NAME", "planhive"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBSSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: getEnvAsDuration("JWT_EXPIRATION", time.Hour),
		PlanRetention: getEnvAsDuration("PLAN_RETENTION", 24*time.Hour),
		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", time.Hour),
		ServerPort:    getEnv("SERVER_PORT", "7788"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:7788"),
		AppEnv:        getEnv("APP_ENV", "development"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
