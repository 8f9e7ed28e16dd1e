package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/pkg/database"
)

type fakeRepo struct {
	inserted  []model.LogEntry
	insertErr error
	cutoff    time.Time
	deleted   int64
}

func (f *fakeRepo) Insert(_ context.Context, entry model.LogEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, entry)
	return nil
}

func (f *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, nil
}

func logTask(t *testing.T, entry model.LogEntry) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(model.LogActionPayload{Entry: entry})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeAuditLogAction, payload)
}

func TestLogActionHandler(t *testing.T) {
	repo := &fakeRepo{}
	h := NewLogActionHandler(repo)

	err := h.ProcessTask(context.Background(), logTask(t, model.LogEntry{Action: model.ActionSearchBooks}))
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, model.ActionSearchBooks, repo.inserted[0].Action)
}

func TestLogActionHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewLogActionHandler(&fakeRepo{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeAuditLogAction, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLogActionHandler_ConstraintViolationSkipsRetry(t *testing.T) {
	repo := &fakeRepo{insertErr: database.TranslateError(&pgconn.PgError{Code: "23503", Message: "fk"})}
	h := NewLogActionHandler(repo)

	err := h.ProcessTask(context.Background(), logTask(t, model.LogEntry{Action: "x"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLogActionHandler_TransientErrorRetries(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("connection reset")}
	h := NewLogActionHandler(repo)

	err := h.ProcessTask(context.Background(), logTask(t, model.LogEntry{Action: "x"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestPruneLogsHandler(t *testing.T) {
	repo := &fakeRepo{deleted: 12}
	h := NewPruneLogsHandler(repo)

	now := time.Date(2026, 3, 31, 3, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(model.PruneLogsPayload{OlderThanDays: 30, Now: now})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeAuditPruneLogs, payload)))
	assert.Equal(t, time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC), repo.cutoff)
}

func TestPruneLogsHandler_RejectsNonPositiveDays(t *testing.T) {
	h := NewPruneLogsHandler(&fakeRepo{})
	payload, _ := json.Marshal(model.PruneLogsPayload{OlderThanDays: 0})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeAuditPruneLogs, payload))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
