package auth

import "errors"

var (
	ErrAlreadyInitialized = errors.New("master password is already set up")
	ErrNotInitialized     = errors.New("master password is not set up")
	ErrInvalidCredential  = errors.New("invalid master password")
	ErrWeakPassword       = errors.New("master password does not meet the requirements")
	// ErrCredentialCorrupted means the stored verifier or key material
	// cannot be parsed or does not open with a verified password.
	ErrCredentialCorrupted  = errors.New("stored credential is corrupted")
	ErrBiometricUnavailable = errors.New("biometric authentication is unavailable")
	ErrBiometricFailed      = errors.New("biometric authentication failed")
	ErrInvalidSettings      = errors.New("invalid settings")
)
