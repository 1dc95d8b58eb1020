package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or a missing DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates an unknown cipher or zero KDF parameters.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidMasterUserConfigs indicates a master username without a
	// password verifier.
	ErrInvalidMasterUserConfigs = errors.New("invalid master user configuration")
	// ErrInvalidSyncConfigs indicates a negative interval or timeout.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidServerConfigs indicates a missing address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
