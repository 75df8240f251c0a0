// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-stock-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the bearer token and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network address and timeout settings for the backend
	// HTTP adapter.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds retry, timeout, and concurrency settings for the sync
	// coordinator.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Token is the bearer token attached to every authenticated backend
	// request. Issued out of band; the engine treats it as opaque.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// UserID is the server-assigned identifier of the owning user.
	// Env: APP_USER_ID
	UserID int64 `env:"USER_ID"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database backing the
// offline-event queue and the conflict log.
type DB struct {
	// DSN is the SQLite connection string (file path).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings for the outbound backend HTTP adapter.
type Adapter struct {
	// HTTPAddress is the base address of the backend REST API,
	// in "host:port" or full URL format.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound requests that are
	// not individual event pushes (pull, ping). (e.g. "30s", "1m")
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the coordinator's retry and concurrency knobs. Zero values are
// replaced with defaults when the client config view is built.
type Sync struct {
	// Concurrency bounds how many distinct entities may have pushes in
	// flight at the same time. Events for one entity are always sequential.
	// Env: SYNC_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// MaxAttempts is the number of transient-failure attempts before an
	// event is marked failed.
	// Env: SYNC_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BackoffBase is the delay before the first retry; it doubles on each
	// subsequent retry. (e.g. "2s")
	// Env: SYNC_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap is the upper bound on the retry delay. (e.g. "60s")
	// Env: SYNC_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// PushTimeout is the per-event push timeout; a push exceeding it is
	// treated as a transient failure. (e.g. "15s")
	// Env: SYNC_PUSH_TIMEOUT
	PushTimeout time.Duration `env:"PUSH_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the periodic sync worker triggers a
	// cycle. (e.g. "5m")
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PingInterval defines how often the connectivity monitor probes the
	// backend. (e.g. "10s")
	// Env: WORKERS_PING_INTERVAL
	PingInterval time.Duration `env:"PING_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
