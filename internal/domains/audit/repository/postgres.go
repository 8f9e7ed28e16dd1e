package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/pkg/database"
)

type RepositoryInterface interface {
	Insert(ctx context.Context, entry model.LogEntry) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, entry model.LogEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode log details: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO logs (user_id, action, details, created_at) VALUES ($1, $2, $3, $4)`,
		entry.UserID, entry.Action, payload, createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", database.TranslateError(err))
	}
	return nil
}

func (r *postgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
