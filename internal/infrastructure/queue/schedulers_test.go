package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/domains/audit/model"
	"bookstore-catalog/internal/shared"
)

func TestPruneLogsTask(t *testing.T) {
	task, ok, err := PruneLogsTask(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, task)

	task, ok, err = PruneLogsTask(90)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, shared.TypeAuditPruneLogs, task.Type())

	var payload model.PruneLogsPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, 90, payload.OlderThanDays)
}

func TestRedisOpt(t *testing.T) {
	opt := RedisOpt(config.RedisConfig{Host: "redis:6379", Password: "secret", DB: 2})
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "secret", opt.Password)
	assert.Equal(t, 2, opt.DB)

	assert.Contains(t, Queues(), shared.QueueAudit)
}
