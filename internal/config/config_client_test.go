package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Token: "tok", UserID: 7},
		Storage: Storage{
			DB: DB{DSN: "/tmp/stock.db"},
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 20 * time.Second,
		},
	}
}

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg, err := NewClientConfig(validStructuredConfig())
	require.NoError(t, err)

	assert.Equal(t, DefaultSyncConcurrency, cfg.Sync.Concurrency)
	assert.Equal(t, DefaultSyncMaxAttempts, cfg.Sync.MaxAttempts)
	assert.Equal(t, DefaultBackoffBase, cfg.Sync.BackoffBase)
	assert.Equal(t, DefaultBackoffCap, cfg.Sync.BackoffCap)
	assert.Equal(t, DefaultPushTimeout, cfg.Sync.PushTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
	assert.Equal(t, DefaultPingInterval, cfg.Workers.PingInterval)

	// explicit values survive
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "tok", cfg.App.Token)
	assert.Equal(t, int64(7), cfg.App.UserID)
}

func TestNewClientConfig_KeepsExplicitSyncSettings(t *testing.T) {
	base := validStructuredConfig()
	base.Sync = Sync{
		Concurrency: 2,
		MaxAttempts: 7,
		BackoffBase: time.Second,
		BackoffCap:  10 * time.Second,
		PushTimeout: 5 * time.Second,
	}

	cfg, err := NewClientConfig(base)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Sync.Concurrency)
	assert.Equal(t, 7, cfg.Sync.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Sync.BackoffBase)
	assert.Equal(t, 10*time.Second, cfg.Sync.BackoffCap)
	assert.Equal(t, 5*time.Second, cfg.Sync.PushTimeout)
}

func TestNewClientConfig_MissingDSN(t *testing.T) {
	base := validStructuredConfig()
	base.Storage.DB.DSN = ""

	_, err := NewClientConfig(base)
	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestNewClientConfig_MissingAdapterAddress(t *testing.T) {
	base := validStructuredConfig()
	base.Adapter.HTTPAddress = ""

	_, err := NewClientConfig(base)
	require.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestNewClientConfig_BackoffCapBelowBase(t *testing.T) {
	base := validStructuredConfig()
	base.Sync.BackoffBase = time.Minute
	base.Sync.BackoffCap = time.Second

	_, err := NewClientConfig(base)
	require.ErrorIs(t, err, ErrInvalidSyncConfigs)
}
