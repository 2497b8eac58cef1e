package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "opensesame")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, "menu.json", cfg.GitHubPath)
	assert.False(t, cfg.GitHubEnabled())
	assert.False(t, cfg.KafkaEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("GITHUB_OWNER", "cafe")
	t.Setenv("GITHUB_REPO", "menu")
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.GitHubEnabled())
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "menu-events", cfg.EventsTopic)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "no admin password", env: map[string]string{}},
		{name: "bad ttl", env: map[string]string{"ADMIN_PASSWORD": "x", "CACHE_TTL": "hourly"}},
		{name: "unknown driver", env: map[string]string{"ADMIN_PASSWORD": "x", "STORE_DRIVER": "sqlite"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", "")
			t.Setenv("ADMIN_PASSWORD_HASH", "")
			for k, v := range testCase.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("chatty").GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, NewLogger("info").Formatter)
}
