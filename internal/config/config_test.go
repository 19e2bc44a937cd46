package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "taskdesk.db", cfg.DBFile)
	assert.Equal(t, 5, cfg.MaxConnections)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.LookAheadWindow)
	assert.Equal(t, "desktop", cfg.NotifyChannel)
	assert.Equal(t, []string{"High:#e53935", "Medium:#fb8c00", "Low:#43a047"}, cfg.DefaultPriorities)
	assert.Equal(t, []string{"Work", "Personal", "Shopping"}, cfg.DefaultCategories)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("DEFAULT_CATEGORIES", "Errands, Chores ,")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"Errands", "Chores"}, cfg.DefaultCategories)
}

func TestLoadIgnoresInvalidDurations(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")
	t.Setenv("QUERY_TIMEOUT", "-5s")

	cfg := Load()

	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}
