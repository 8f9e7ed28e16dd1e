package main

import (
	"github.com/hibiken/asynq"

	auditJob "bookstore-catalog/internal/domains/audit/job"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Audit handlers
	logAction *auditJob.LogActionHandler

	// Maintenance handlers
	pruneLogs *auditJob.PruneLogsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		logAction: auditJob.NewLogActionHandler(c.AuditRepo),
		pruneLogs: auditJob.NewPruneLogsHandler(c.AuditRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeAuditLogAction, h.logAction.ProcessTask)
	mux.HandleFunc(shared.TypeAuditPruneLogs, h.pruneLogs.ProcessTask)
}
