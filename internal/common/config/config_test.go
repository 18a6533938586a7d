package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 5*time.Minute, cfg.Auth.MaxSkew)
	assert.Equal(t, "charity", cfg.Lottery.EndAuthority)
	assert.Equal(t, "reject", cfg.Lottery.NoRevealers)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOTTERY_END_AUTHORITY", "anyone")
	t.Setenv("LOTTERY_NO_REVEALERS", "refund")
	t.Setenv("AUTH_MAX_SKEW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, "anyone", cfg.Lottery.EndAuthority)
	assert.Equal(t, "refund", cfg.Lottery.NoRevealers)
	assert.Equal(t, 30*time.Second, cfg.Auth.MaxSkew)
	assert.True(t, cfg.NeedsRedis())
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := map[string]string{
		"STORAGE_DRIVER":        "postgres",
		"LOTTERY_END_AUTHORITY": "owner",
		"LOTTERY_NO_REVEALERS":  "rollover",
		"AUTH_MAX_SKEW":         "0s",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
