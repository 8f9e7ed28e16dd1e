package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/shared"
	"bookstore-catalog/pkg/logger"
)

// PruneLogsCron chạy lúc 3 AM UTC mỗi ngày (giờ ít traffic)
const PruneLogsCron = "0 3 * * *"

type Scheduler struct {
	scheduler *asynq.Scheduler
	auditCfg  config.AuditConfig
}

func NewScheduler(redisCfg config.RedisConfig, auditCfg config.AuditConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisOpt(redisCfg),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		auditCfg:  auditCfg,
	}
}

// RegisterJobs đăng ký các cron job; trả về số job đã đăng ký
func (s *Scheduler) RegisterJobs() (int, error) {
	task, ok, err := PruneLogsTask(s.auditCfg.RetentionDays)
	if err != nil {
		return 0, err
	}
	if !ok {
		logger.Info("Audit retention disabled, prune job not registered", map[string]interface{}{})
		return 0, nil
	}

	_, err = s.scheduler.Register(
		PruneLogsCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PruneLogs job", err)
		return 0, err
	}

	logger.Info("✓ Registered PruneLogs: daily at 3 AM", map[string]interface{}{
		"older_than_days": s.auditCfg.RetentionDays,
	})
	return 1, nil
}

// PruneLogsTask builds the scheduled retention task. ok is false when
// retention is disabled (days <= 0).
func PruneLogsTask(days int) (*asynq.Task, bool, error) {
	if days <= 0 {
		return nil, false, nil
	}

	payload, err := json.Marshal(model.PruneLogsPayload{OlderThanDays: days})
	if err != nil {
		return nil, false, err
	}

	return asynq.NewTask(shared.TypeAuditPruneLogs, payload), true, nil
}

// Start không block; dừng bằng Shutdown
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
