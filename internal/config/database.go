package config

import (
	"fmt"
	"strconv"
	"time"

	"bookstore-catalog/internal/infrastructure/database"
)

// envParser gom lỗi parse; chỉ lỗi đầu tiên được trả về
type envParser struct {
	err error
}

func (p *envParser) int(key, def string) int {
	raw := getEnv(key, def)
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v
}

func (p *envParser) duration(key, def string) time.Duration {
	raw := getEnv(key, def)
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v
}

// LoadDatabaseConfig builds the pool configuration from DB_* variables.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var p envParser

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              p.int("DB_PORT", "5432"),
		Username:          getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", ""),
		DBName:            getEnv("DB_NAME", "bookstore"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(p.int("DB_MAX_CONNECTIONS", "10")),
		MinConns:          int32(p.int("DB_MIN_CONNECTIONS", "1")),
		MaxConnLifetime:   p.duration("DB_MAX_CONN_LIFETIME", "30m"),
		MaxConnIdleTime:   p.duration("DB_MAX_CONN_IDLE_TIME", "5m"),
		HealthCheckPeriod: p.duration("DB_HEALTH_CHECK_PERIOD", "1m"),
		MaxRetries:        p.int("DB_MAX_RETRIES", "5"),
		RetryDelay:        p.duration("DB_RETRY_DELAY", "1s"),
		ConnectTimeout:    p.duration("DB_CONNECT_TIMEOUT", "10s"),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}

	return cfg, nil
}
