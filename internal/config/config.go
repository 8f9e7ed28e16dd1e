package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Audit    AuditConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	SSLMode    string
	MaxConns   int
	MinConns   int
	AutoSchema bool // apply embedded schema on startup
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

// =====================================================
// AUDIT CONFIGURATION
// =====================================================

const (
	AuditSinkDatabase = "database"
	AuditSinkQueue    = "queue"
)

type AuditConfig struct {
	Sink          string        // database | queue
	BufferSize    int           // pending entries before new ones are dropped
	Workers       int           // goroutines draining the buffer
	WriteTimeout  time.Duration // per-entry write deadline
	RetentionDays int           // 0 disables pruning
}

type WorkerConfig struct {
	Concurrency int
	HealthPort  string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookstore Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Database:   getEnv("DB_NAME", "bookstore"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxConns:   getEnvInt("DB_MAX_CONNECTIONS", 10),
			MinConns:   getEnvInt("DB_MIN_CONNECTIONS", 1),
			AutoSchema: getEnvBool("DB_AUTO_SCHEMA", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 15*time.Minute),
		},
		Audit: AuditConfig{
			Sink:          strings.ToLower(getEnv("AUDIT_SINK", AuditSinkDatabase)),
			BufferSize:    getEnvInt("AUDIT_BUFFER_SIZE", 1024),
			Workers:       getEnvInt("AUDIT_WORKERS", 2),
			WriteTimeout:  getEnvDuration("AUDIT_WRITE_TIMEOUT", 5*time.Second),
			RetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 0),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:  getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	if c.Database.MinConns < 0 || c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be >= 1 and DB_MIN_CONNECTIONS >= 0")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	switch c.Audit.Sink {
	case AuditSinkDatabase, AuditSinkQueue:
	default:
		return fmt.Errorf("AUDIT_SINK must be %q or %q, got %q", AuditSinkDatabase, AuditSinkQueue, c.Audit.Sink)
	}
	if c.Audit.BufferSize < 1 || c.Audit.Workers < 1 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE and AUDIT_WORKERS must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
