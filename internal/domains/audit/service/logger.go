package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/audit/model"
)

// Logger ghi audit log kiểu fire-and-forget:
// không block caller, không trả lỗi về caller
type Logger interface {
	LogAction(userID *int64, action string, details map[string]any)
}

// Sink là đích ghi thực sự (database hoặc queue)
type Sink interface {
	Write(ctx context.Context, entry model.LogEntry) error
}

type Options struct {
	BufferSize   int
	Workers      int
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.BufferSize < 1 {
		o.BufferSize = 1024
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	return o
}

// AsyncLogger đẩy entry vào buffer có giới hạn, các worker goroutine
// ghi xuống sink. Buffer đầy thì entry mới bị drop.
type AsyncLogger struct {
	sink    Sink
	opts    Options
	entries chan model.LogEntry

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	dropped atomic.Int64
	failed  atomic.Int64
}

var _ Logger = (*AsyncLogger)(nil)

func NewAsyncLogger(sink Sink, opts Options) *AsyncLogger {
	opts = opts.withDefaults()

	l := &AsyncLogger{
		sink:    sink,
		opts:    opts,
		entries: make(chan model.LogEntry, opts.BufferSize),
	}

	l.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go l.worker()
	}

	return l
}

func (l *AsyncLogger) LogAction(userID *int64, action string, details map[string]any) {
	entry := model.LogEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		l.dropped.Add(1)
		return
	}

	select {
	case l.entries <- entry:
	default:
		l.dropped.Add(1)
		log.Warn().Str("action", action).Msg("[AUDIT] Buffer full, entry dropped")
	}
}

func (l *AsyncLogger) worker() {
	defer l.wg.Done()
	for entry := range l.entries {
		l.write(entry)
	}
}

// write dùng context tách biệt khỏi request, có timeout riêng
func (l *AsyncLogger) write(entry model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), l.opts.WriteTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			l.failed.Add(1)
			log.Error().Interface("panic", p).Str("action", entry.Action).Msg("[AUDIT] Sink panicked")
		}
	}()

	if err := l.sink.Write(ctx, entry); err != nil {
		l.failed.Add(1)
		log.Warn().Err(err).Str("action", entry.Action).Msg("[AUDIT] Failed to write log entry")
	}
}

// Close ngừng nhận entry mới và chờ các worker ghi hết buffer
func (l *AsyncLogger) Close(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.entries)
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().
			Int64("dropped", l.dropped.Load()).
			Int64("failed", l.failed.Load()).
			Msg("[AUDIT] Logger drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *AsyncLogger) Dropped() int64 { return l.dropped.Load() }

func (l *AsyncLogger) Failed() int64 { return l.failed.Load() }

// Nop bỏ qua mọi entry
type Nop struct{}

func (Nop) LogAction(*int64, string, map[string]any) {}
