package config

import (
	"fmt"
	"time"
)

// Defaults applied to zero-valued sync and worker settings when the client
// config view is built.
const (
	DefaultSyncConcurrency = 4
	DefaultSyncMaxAttempts = 5
	DefaultBackoffBase     = 2 * time.Second
	DefaultBackoffCap      = 60 * time.Second
	DefaultPushTimeout     = 15 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultSyncInterval    = 5 * time.Minute
	DefaultPingInterval    = 10 * time.Second
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Token is the bearer token attached to backend requests.
	Token string
	// UserID is the server-assigned identifier of the owning user.
	UserID int64
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend HTTP endpoint address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds the sync coordinator settings with defaults applied.
type ClientSync struct {
	Concurrency int
	MaxAttempts int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	PushTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the periodic sync worker runs.
	SyncInterval time.Duration
	// PingInterval defines how often the connectivity monitor probes.
	PingInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains coordinator retry and concurrency settings.
	Sync ClientSync
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills zero-valued sync and worker settings
// with defaults, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps an already-merged [StructuredConfig] into the client
// view. Split out of [GetClientConfig] so tests can build a client config
// without touching process env and flags.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:  cfg.App.Token,
			UserID: cfg.App.UserID,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Concurrency: cfg.Sync.Concurrency,
			MaxAttempts: cfg.Sync.MaxAttempts,
			BackoffBase: cfg.Sync.BackoffBase,
			BackoffCap:  cfg.Sync.BackoffCap,
			PushTimeout: cfg.Sync.PushTimeout,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			PingInterval: cfg.Workers.PingInterval,
		},
	}

	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.Concurrency == 0 {
		cfg.Sync.Concurrency = DefaultSyncConcurrency
	}
	if cfg.Sync.MaxAttempts == 0 {
		cfg.Sync.MaxAttempts = DefaultSyncMaxAttempts
	}
	if cfg.Sync.BackoffBase == 0 {
		cfg.Sync.BackoffBase = DefaultBackoffBase
	}
	if cfg.Sync.BackoffCap == 0 {
		cfg.Sync.BackoffCap = DefaultBackoffCap
	}
	if cfg.Sync.PushTimeout == 0 {
		cfg.Sync.PushTimeout = DefaultPushTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.PingInterval == 0 {
		cfg.Workers.PingInterval = DefaultPingInterval
	}
}
