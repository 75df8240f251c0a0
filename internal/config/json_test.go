package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"token": "tok", "user_id": 3},
		"storage": {"db": {"dsn": "/data/stock.db"}},
		"adapter": {"http_address": "localhost:8080", "request_timeout": "25s"},
		"sync": {
			"concurrency": 6,
			"max_attempts": 4,
			"backoff_base": "1s",
			"backoff_cap": "45s",
			"push_timeout": "12s"
		},
		"workers": {"sync_interval": "3m", "ping_interval": "7s"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, int64(3), cfg.App.UserID)
	assert.Equal(t, "/data/stock.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 25*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 6, cfg.Sync.Concurrency)
	assert.Equal(t, 4, cfg.Sync.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Sync.BackoffBase)
	assert.Equal(t, 45*time.Second, cfg.Sync.BackoffCap)
	assert.Equal(t, 12*time.Second, cfg.Sync.PushTimeout)
	assert.Equal(t, 3*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 7*time.Second, cfg.Workers.PingInterval)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	// durations may also be given as nanosecond numbers
	path := writeTempJSON(t, `{"adapter": {"request_timeout": 1000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"adapter": `)

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}
