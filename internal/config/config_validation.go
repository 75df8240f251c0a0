// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; the client view performs the actual
// validation after defaults are applied.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Concurrency < 1 || cfg.Sync.MaxAttempts < 1 ||
		cfg.Sync.BackoffBase <= 0 || cfg.Sync.BackoffCap < cfg.Sync.BackoffBase ||
		cfg.Sync.PushTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.SyncInterval == 0 || cfg.Workers.PingInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
