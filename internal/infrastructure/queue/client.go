package queue

import (
	"github.com/hibiken/asynq"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/shared"
)

// RedisOpt builds the asynq connection options from the Redis config section.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// Queues trả về priority cho asynq server
func Queues() map[string]int {
	return map[string]int{
		shared.QueueAudit:       10,
		shared.QueueMaintenance: 2,
	}
}
