package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/domains/audit/repository"
	"bookstore-catalog/pkg/logger"
)

type PruneLogsHandler struct {
	repo repository.RepositoryInterface
}

func NewPruneLogsHandler(repo repository.RepositoryInterface) *PruneLogsHandler {
	return &PruneLogsHandler{repo: repo}
}

func (h *PruneLogsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.PruneLogsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal PruneLogs payload failed", err)
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if payload.OlderThanDays <= 0 {
		return fmt.Errorf("older_than_days must be positive: %w", asynq.SkipRetry)
	}

	now := time.Now().UTC()
	if !payload.Now.IsZero() {
		now = payload.Now
	}
	cutoff := now.AddDate(0, 0, -payload.OlderThanDays)

	deleted, err := h.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("Prune audit logs failed", err)
		return err
	}

	log.Info().
		Time("cutoff", cutoff).
		Int64("deleted", deleted).
		Msg("Pruned audit logs")

	return nil
}
