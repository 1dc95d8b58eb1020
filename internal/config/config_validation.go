// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

var (
	knownDrivers = map[string]bool{"memory": true, "sqlite": true, "postgres": true, "bolt": true}
	knownCiphers = map[string]bool{"aes-256-gcm": true, "xchacha20-poly1305": true}
)

// validate checks the merged configuration. All problems are reported at
// once, each wrapping its group sentinel.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if !knownDrivers[cfg.Storage.Driver] {
		errs = append(errs, fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver))
	}
	if cfg.Storage.Driver != "memory" && cfg.Storage.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: dsn is required for driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver))
	}

	if !knownCiphers[cfg.App.Cipher] {
		errs = append(errs, fmt.Errorf("%w: unknown cipher %q", ErrInvalidAppConfigs, cfg.App.Cipher))
	}
	if cfg.App.KDFTime == 0 || cfg.App.KDFMemoryKiB == 0 || cfg.App.KDFThreads == 0 {
		errs = append(errs, fmt.Errorf("%w: kdf parameters must be positive", ErrInvalidAppConfigs))
	}

	if cfg.MasterUser.Username != "" && cfg.MasterUser.PasswordHash == "" {
		errs = append(errs, fmt.Errorf("%w: password hash is required", ErrInvalidMasterUserConfigs))
	}

	if cfg.Sync.Interval < 0 || cfg.Sync.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: durations must not be negative", ErrInvalidSyncConfigs))
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: address and request timeout are required", ErrInvalidServerConfigs))
	}

	return errors.Join(errs...)
}
