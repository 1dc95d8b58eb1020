// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the CLI.
//
// Errors returned by the core packages are translated into one of these
// messages before being printed, so wording stays consistent across
// commands.
package app

const (
	// MsgInvalidMasterPassword is shown when the master password does not
	// match the stored verifier.
	MsgInvalidMasterPassword = "invalid master password"

	// MsgWeakMasterPassword prefixes the list of unmet password rules.
	MsgWeakMasterPassword = "master password is too weak"

	MsgAlreadyInitialized = "a profile already exists; run `onelock reset` to start over"
	MsgNotInitialized     = "no profile yet; run `onelock init` first"

	// MsgVaultLocked is shown when a command needs the vault but the
	// session is locked.
	MsgVaultLocked = "vault is locked"

	// MsgVaultCorrupted is shown when the stored vault cannot be decrypted
	// or fails validation. The data is left untouched.
	MsgVaultCorrupted = "stored vault is corrupted or was encrypted with another key"

	MsgCredentialCorrupted = "stored master credential is corrupted"
	MsgRecordNotFound      = "no record with that id"
	MsgInvalidRecord       = "invalid record"

	// MsgConcurrentModification is shown when another process changed the
	// vault during the command. Re-running the command is safe.
	MsgConcurrentModification = "vault was changed by another process, try again"

	MsgStorageUnavailable   = "secure storage is unavailable"
	MsgBiometricUnavailable = "biometric unlock is not available"
	MsgBiometricFailed      = "biometric authentication failed"
	MsgInvalidSettings      = "invalid settings"

	MsgSyncDisabled   = "sync is not configured (set MASTER_USER_USERNAME and MASTER_USER_PASSWORD_HASH)"
	MsgNotMasterUser  = "only the master user can sync"
	MsgRemoteFailed   = "remote sync failed"
	MsgBadSignature   = "remote dataset signature is invalid"
	MsgInvalidDataset = "remote dataset is invalid"

	MsgPasswordMismatch = "passwords do not match"
	MsgAborted          = "aborted"
	MsgUnknownCommand   = "unknown command; run `onelock help`"
)
