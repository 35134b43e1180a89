// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/go-ride-keeper/internal/crypto"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if _, err := cfg.App.ResolveFieldKey(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.HistoryRetention < 0 || cfg.Workers.PruneInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ResolveFieldKey returns the 32-byte field-encryption key: FieldKey decoded
// from hex when set, otherwise FieldKeyPassphrase stretched with Argon2id
// over FieldKeySalt.
func (a App) ResolveFieldKey() ([]byte, error) {
	if a.FieldKey != "" {
		key, err := crypto.ParseKey(a.FieldKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
		return key, nil
	}

	if a.FieldKeyPassphrase == "" || a.FieldKeySalt == "" {
		return nil, fmt.Errorf("%w: field key or passphrase with salt is required", ErrInvalidAppConfigs)
	}

	return crypto.DeriveKey(a.FieldKeyPassphrase, []byte(a.FieldKeySalt)), nil
}
