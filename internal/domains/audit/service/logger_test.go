package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/shared"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []model.LogEntry
	err     error
	block   chan struct{}
}

func (s *recordingSink) Write(ctx context.Context, entry model.LogEntry) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestAsyncLogger_DeliversEntries(t *testing.T) {
	sink := &recordingSink{}
	l := NewAsyncLogger(sink, Options{BufferSize: 16, Workers: 2})

	uid := int64(7)
	l.LogAction(&uid, model.ActionSearchBooks, map[string]any{"search": "dragons"})
	l.LogAction(nil, model.ActionSearchBooks, nil)

	require.NoError(t, l.Close(context.Background()))
	require.Equal(t, 2, sink.count())

	var withUser *model.LogEntry
	for i := range sink.entries {
		if sink.entries[i].UserID != nil {
			withUser = &sink.entries[i]
		}
	}
	require.NotNil(t, withUser)
	assert.Equal(t, int64(7), *withUser.UserID)
	assert.Equal(t, "dragons", withUser.Details["search"])
	assert.False(t, withUser.CreatedAt.IsZero())
}

func TestAsyncLogger_FailingSinkIsAbsorbed(t *testing.T) {
	sink := &recordingSink{err: errors.New("storage outage")}
	l := NewAsyncLogger(sink, Options{BufferSize: 4, Workers: 1})

	start := time.Now()
	for i := 0; i < 3; i++ {
		l.LogAction(nil, "x", nil)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	require.NoError(t, l.Close(context.Background()))
	assert.Equal(t, int64(3), l.Failed())
}

func TestAsyncLogger_FullBufferDropsWithoutBlocking(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	l := NewAsyncLogger(sink, Options{BufferSize: 2, Workers: 1, WriteTimeout: time.Second})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			l.LogAction(nil, "x", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LogAction blocked on a full buffer")
	}

	assert.GreaterOrEqual(t, l.Dropped(), int64(17))

	close(sink.block)
	require.NoError(t, l.Close(context.Background()))
	assert.Equal(t, int64(20), l.Dropped()+int64(sink.count()))
}

func TestAsyncLogger_WriteTimeout(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	l := NewAsyncLogger(sink, Options{BufferSize: 1, Workers: 1, WriteTimeout: 20 * time.Millisecond})

	l.LogAction(nil, "slow", nil)

	require.NoError(t, l.Close(context.Background()))
	assert.Equal(t, int64(1), l.Failed())
}

func TestAsyncLogger_LogAfterCloseIsDropped(t *testing.T) {
	l := NewAsyncLogger(&recordingSink{}, Options{})
	require.NoError(t, l.Close(context.Background()))
	require.NoError(t, l.Close(context.Background()))

	assert.NotPanics(t, func() { l.LogAction(nil, "late", nil) })
	assert.Equal(t, int64(1), l.Dropped())
}

type panicSink struct{}

func (panicSink) Write(context.Context, model.LogEntry) error { panic("boom") }

func TestAsyncLogger_SinkPanicRecovered(t *testing.T) {
	l := NewAsyncLogger(panicSink{}, Options{Workers: 1})
	l.LogAction(nil, "x", nil)
	l.LogAction(nil, "y", nil)

	require.NoError(t, l.Close(context.Background()))
	assert.Equal(t, int64(2), l.Failed())
}

type fakeEnqueuer struct {
	task *asynq.Task
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task = task
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestQueueSink_Write(t *testing.T) {
	enq := &fakeEnqueuer{}
	sink := NewQueueSink(enq)

	uid := int64(3)
	err := sink.Write(context.Background(), model.LogEntry{UserID: &uid, Action: model.ActionSearchBooks, Details: map[string]any{"limit": 50}})
	require.NoError(t, err)

	require.NotNil(t, enq.task)
	assert.Equal(t, shared.TypeAuditLogAction, enq.task.Type())

	var payload model.LogActionPayload
	require.NoError(t, json.Unmarshal(enq.task.Payload(), &payload))
	assert.Equal(t, int64(3), *payload.Entry.UserID)
	assert.Equal(t, float64(50), payload.Entry.Details["limit"])

	enq.err = errors.New("redis down")
	assert.Error(t, sink.Write(context.Background(), model.LogEntry{Action: "x"}))
}
