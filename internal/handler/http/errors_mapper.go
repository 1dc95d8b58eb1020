package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/masteruser"
	"github.com/MKhiriev/onelock/internal/passwords"
	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/internal/vault"
)

type errorStatus struct {
	target error
	status int
	code   string
}

// errorStatusTable is ordered: the first matching target wins, so wrapped
// causes listed later never shadow the outer classification.
var errorStatusTable = []errorStatus{
	{ErrInvalidJSON, http.StatusBadRequest, "invalid_json"},
	{ErrInvalidQuery, http.StatusBadRequest, "invalid_query"},
	{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
	{ErrResetNotConfirmed, http.StatusBadRequest, "reset_not_confirmed"},
	{ErrSyncDisabled, http.StatusNotFound, "sync_disabled"},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized, "invalid_session"},
	{utils.ErrInvalidSessionToken, http.StatusUnauthorized, "invalid_session"},

	{auth.ErrAlreadyInitialized, http.StatusConflict, "already_initialized"},
	{auth.ErrNotInitialized, http.StatusConflict, "not_initialized"},
	{auth.ErrInvalidCredential, http.StatusUnauthorized, "invalid_credential"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{auth.ErrInvalidSettings, http.StatusBadRequest, "invalid_settings"},
	{auth.ErrCredentialCorrupted, http.StatusInternalServerError, "credential_corrupted"},
	{auth.ErrBiometricUnavailable, http.StatusPreconditionFailed, "biometric_unavailable"},
	{auth.ErrBiometricFailed, http.StatusUnauthorized, "biometric_failed"},

	{vault.ErrVaultLocked, http.StatusLocked, "vault_locked"},
	{vault.ErrVaultCorrupted, http.StatusInternalServerError, "vault_corrupted"},
	{vault.ErrRecordNotFound, http.StatusNotFound, "record_not_found"},
	{vault.ErrConcurrentModification, http.StatusConflict, "concurrent_modification"},
	{vault.ErrInvalidRecord, http.StatusBadRequest, "invalid_record"},
	{vault.ErrIDExhausted, http.StatusInternalServerError, "id_exhausted"},

	{masteruser.ErrNotMasterUser, http.StatusForbidden, "not_master_user"},
	{masteruser.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credential"},
	{masteruser.ErrNotConfigured, http.StatusNotFound, "sync_disabled"},
	{masteruser.ErrBadSignature, http.StatusBadGateway, "bad_signature"},
	{masteruser.ErrInvalidDataset, http.StatusBadGateway, "invalid_dataset"},
	{masteruser.ErrRemote, http.StatusBadGateway, "remote_failed"},

	{passwords.ErrEmptyCharset, http.StatusBadRequest, "invalid_options"},
	{passwords.ErrInvalidLength, http.StatusBadRequest, "invalid_options"},

	{crypto.ErrDecryption, http.StatusInternalServerError, "decryption_failed"},
	{kv.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

func classify(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeServiceError logs err and answers with its mapped status. Server
// side failures get a generic message so internals do not leak.
func writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status, code := classify(err)

	log := logger.FromRequest(r)
	msg := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		log.Err(err).Str("func", fn).Str("code", code).Msg("request failed")
		msg = http.StatusText(status)
	} else {
		log.Debug().Err(err).Str("func", fn).Str("code", code).Send()
	}

	utils.WriteError(w, status, code, msg)
}
