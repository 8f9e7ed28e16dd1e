package main

import (
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates, registers and starts the scheduler
func setupScheduler(cfg *Config) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(cfg.Redis, cfg.Audit)

	registered, err := scheduler.RegisterJobs()
	if err != nil {
		return nil, err
	}

	log.Info().Int("jobs", registered).Msg("[Scheduler] Starting...")
	if err := scheduler.Start(); err != nil {
		return nil, err
	}

	return &asynqScheduler{Scheduler: scheduler}, nil
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] Stopped")
}
