package postgres

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the connection and pool settings for the action-history
// store. Zero value is not usable directly — call LoadConfigFromEnv or
// populate it explicitly.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DSN returns the libpq connection string pgxpool.ParseConfig accepts.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Validate checks Config for internally-inconsistent pool settings.
func (c Config) Validate() error {
	if c.Password == "" {
		return fmt.Errorf("ASTRAWEAVE_DB_PASSWORD is required")
	}
	if c.MinConns > c.MaxConns {
		return fmt.Errorf("ASTRAWEAVE_DB_MIN_CONNS (%d) cannot exceed ASTRAWEAVE_DB_MAX_CONNS (%d)", c.MinConns, c.MaxConns)
	}
	if c.MaxConns < 1 {
		return fmt.Errorf("ASTRAWEAVE_DB_MAX_CONNS must be at least 1")
	}
	if c.MinConns < 0 {
		return fmt.Errorf("ASTRAWEAVE_DB_MIN_CONNS cannot be negative")
	}
	return nil
}

// LoadConfigFromEnv loads the store's connection config from environment
// variables with production-ready defaults.
func LoadConfigFromEnv() (Config, error) {
	port, err := strconv.Atoi(getEnvOrDefault("ASTRAWEAVE_DB_PORT", "5432"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ASTRAWEAVE_DB_PORT: %w", err)
	}

	maxConns, _ := strconv.Atoi(getEnvOrDefault("ASTRAWEAVE_DB_MAX_CONNS", "10"))
	minConns, _ := strconv.Atoi(getEnvOrDefault("ASTRAWEAVE_DB_MIN_CONNS", "2"))

	maxLifetime, err := time.ParseDuration(getEnvOrDefault("ASTRAWEAVE_DB_CONN_MAX_LIFETIME", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ASTRAWEAVE_DB_CONN_MAX_LIFETIME: %w", err)
	}
	maxIdleTime, err := time.ParseDuration(getEnvOrDefault("ASTRAWEAVE_DB_CONN_MAX_IDLE_TIME", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ASTRAWEAVE_DB_CONN_MAX_IDLE_TIME: %w", err)
	}

	cfg := Config{
		Host:            getEnvOrDefault("ASTRAWEAVE_DB_HOST", "localhost"),
		Port:            port,
		User:            getEnvOrDefault("ASTRAWEAVE_DB_USER", "astraweave"),
		Password:        os.Getenv("ASTRAWEAVE_DB_PASSWORD"),
		Database:        getEnvOrDefault("ASTRAWEAVE_DB_NAME", "astraweave"),
		SSLMode:         getEnvOrDefault("ASTRAWEAVE_DB_SSLMODE", "disable"),
		MaxConns:        int32(maxConns),
		MinConns:        int32(minConns),
		MaxConnLifetime: maxLifetime,
		MaxConnIdleTime: maxIdleTime,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
