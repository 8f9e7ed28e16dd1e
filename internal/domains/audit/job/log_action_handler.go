package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/domains/audit/repository"
	"bookstore-catalog/pkg/database"
)

// LogActionHandler insert audit entry được đẩy qua queue
type LogActionHandler struct {
	repo repository.RepositoryInterface
}

func NewLogActionHandler(repo repository.RepositoryInterface) *LogActionHandler {
	return &LogActionHandler{repo: repo}
}

func (h *LogActionHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.LogActionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal LogAction payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.repo.Insert(ctx, payload.Entry); err != nil {
		// Retry không giúp được khi dữ liệu vi phạm ràng buộc (vd: user_id không tồn tại)
		if errors.Is(err, database.ErrConstraintViolation) {
			log.Warn().Err(err).Str("action", payload.Entry.Action).Msg("Audit entry rejected by storage")
			return fmt.Errorf("insert log: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("insert log: %w", err)
	}

	log.Debug().Str("action", payload.Entry.Action).Msg("Audit entry stored")
	return nil
}
