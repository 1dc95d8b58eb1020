package client

import (
	"errors"
	"strings"

	"github.com/MKhiriev/onelock/internal/app"
	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/masteruser"
	"github.com/MKhiriev/onelock/internal/vault"
)

// messageTable is checked top to bottom; the first match wins.
var messageTable = []struct {
	target   error
	message  string
	// detailed appends err's own text, which lists what was wrong.
	detailed bool
}{
	{auth.ErrInvalidCredential, app.MsgInvalidMasterPassword, false},
	{auth.ErrWeakPassword, app.MsgWeakMasterPassword, true},
	{auth.ErrAlreadyInitialized, app.MsgAlreadyInitialized, false},
	{auth.ErrNotInitialized, app.MsgNotInitialized, false},
	{auth.ErrCredentialCorrupted, app.MsgCredentialCorrupted, false},
	{auth.ErrBiometricUnavailable, app.MsgBiometricUnavailable, false},
	{auth.ErrBiometricFailed, app.MsgBiometricFailed, false},
	{auth.ErrInvalidSettings, app.MsgInvalidSettings, true},
	{vault.ErrVaultLocked, app.MsgVaultLocked, false},
	{vault.ErrVaultCorrupted, app.MsgVaultCorrupted, false},
	{vault.ErrRecordNotFound, app.MsgRecordNotFound, false},
	{vault.ErrConcurrentModification, app.MsgConcurrentModification, false},
	{kv.ErrConflict, app.MsgConcurrentModification, false},
	{vault.ErrInvalidRecord, app.MsgInvalidRecord, true},
	{masteruser.ErrNotMasterUser, app.MsgNotMasterUser, false},
	{masteruser.ErrInvalidCredentials, app.MsgInvalidMasterPassword, false},
	{masteruser.ErrBadSignature, app.MsgBadSignature, false},
	{masteruser.ErrInvalidDataset, app.MsgInvalidDataset, false},
	{masteruser.ErrRemote, app.MsgRemoteFailed, false},
	{ErrSyncDisabled, app.MsgSyncDisabled, false},
	{ErrPasswordMismatch, app.MsgPasswordMismatch, false},
	{ErrAborted, app.MsgAborted, false},
	{ErrUnknownCommand, app.MsgUnknownCommand, false},
	{kv.ErrStorageUnavailable, app.MsgStorageUnavailable, false},
}

// UserMessage turns err into the line printed to the user. Errors with
// detail the user can act on (validation, usage) keep their own text.
func UserMessage(err error) string {
	for _, e := range messageTable {
		if !errors.Is(err, e.target) {
			continue
		}
		if e.detailed {
			return e.message + ": " + detail(err, e.target)
		}
		return e.message
	}
	return err.Error()
}

// detail strips the sentinel prefix added by fmt.Errorf("%w: %w", ...).
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
