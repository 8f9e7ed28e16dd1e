package main

import (
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/config"
)

// Config holds all configuration for the worker
type Config struct {
	Redis       config.RedisConfig
	Audit       config.AuditConfig
	Concurrency int
	HealthAddr  string
}

// loadConfig lấy phần config worker cần từ application config
func loadConfig(app *config.Config) *Config {
	cfg := &Config{
		Redis:       app.Redis,
		Audit:       app.Audit,
		Concurrency: app.Worker.Concurrency,
		HealthAddr:  ":" + app.Worker.HealthPort,
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Int("concurrency", cfg.Concurrency).
		Int("retention_days", cfg.Audit.RetentionDays).
		Msg("[Config] Worker config loaded")

	return cfg
}
