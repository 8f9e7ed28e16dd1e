package shared

// Task types (asynq)
const (
	TypeAuditLogAction = "audit:log_action"
	TypeAuditPruneLogs = "audit:prune_logs"
)

// Queue names
const (
	QueueAudit       = "audit"
	QueueMaintenance = "maintenance"
)
