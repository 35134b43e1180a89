package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidAppConfigs indicates missing or malformed field-key material
	// (no key, a key that is not 64 hex chars, or a passphrase without salt).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates a negative retention or a
	// non-positive prune interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
