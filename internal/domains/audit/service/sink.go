package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/domains/audit/repository"
	"bookstore-catalog/internal/shared"
)

// DatabaseSink ghi trực tiếp vào bảng logs
type DatabaseSink struct {
	repo repository.RepositoryInterface
}

func NewDatabaseSink(repo repository.RepositoryInterface) *DatabaseSink {
	return &DatabaseSink{repo: repo}
}

func (s *DatabaseSink) Write(ctx context.Context, entry model.LogEntry) error {
	return s.repo.Insert(ctx, entry)
}

// Enqueuer là phần của *asynq.Client mà QueueSink cần
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueSink đẩy entry thành task audit:log_action, worker sẽ insert vào DB
type QueueSink struct {
	client Enqueuer
}

func NewQueueSink(client Enqueuer) *QueueSink {
	return &QueueSink{client: client}
}

func (s *QueueSink) Write(ctx context.Context, entry model.LogEntry) error {
	task, err := NewLogActionTask(entry)
	if err != nil {
		return err
	}

	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueAudit),
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeAuditLogAction, err)
	}
	return nil
}

func NewLogActionTask(entry model.LogEntry) (*asynq.Task, error) {
	payload, err := json.Marshal(model.LogActionPayload{Entry: entry})
	if err != nil {
		return nil, fmt.Errorf("marshal log payload: %w", err)
	}
	return asynq.NewTask(shared.TypeAuditLogAction, payload), nil
}
