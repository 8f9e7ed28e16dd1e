package model

import "time"

// Actions
const (
	ActionSearchBooks = "search_books"
)

// LogEntry là một bản ghi audit; chỉ ghi, không bao giờ đọc lại
type LogEntry struct {
	UserID    *int64         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

// LogActionPayload là payload của task audit:log_action
type LogActionPayload struct {
	Entry LogEntry `json:"entry"`
}

// PruneLogsPayload là payload của task audit:prune_logs
type PruneLogsPayload struct {
	OlderThanDays int       `json:"older_than_days"`
	Now           time.Time `json:"now,omitempty"`
}
