package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.Providers.AttemptTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Providers.HealthCacheTTL)
	assert.Equal(t, 10, cfg.Agent.TopicCap)
	assert.Equal(t, 7*24*time.Hour, cfg.Agent.SessionTTL)
	assert.Equal(t, "venture", cfg.Agent.DefaultAgentId)
	assert.Equal(t, 1500, cfg.Knowledge.ChunkSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DEFAULT_AGENT_ID", "support")
	t.Setenv("AGENT_TOPIC_CAP", "5")
	t.Setenv("PROVIDER_ATTEMPT_TIMEOUT", "30s")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.Agent.SessionTTL)
	assert.Equal(t, "support", cfg.Agent.DefaultAgentId)
	assert.Equal(t, 5, cfg.Agent.TopicCap)
	assert.Equal(t, 30*time.Second, cfg.Providers.AttemptTimeout)
}
