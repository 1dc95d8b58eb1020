package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/internal/vault"
)

// requireUnlocked applies the auto-lock timeout and then rejects the
// request with 423 Locked unless the vault is unlocked. With session tokens
// enabled the request must also carry the token of the current unlock.
func (h *Handler) requireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		if h.services.Auth.EnforceAutoLock(ctx) {
			log.Info().Str("func", "*Handler.requireUnlocked").Msg("auto-lock timeout reached")
			h.endSession()
		}
		if !h.services.Auth.IsUnlocked() {
			utils.WriteError(w, http.StatusLocked, "vault_locked", vault.ErrVaultLocked.Error())
			return
		}
		if err := h.checkSession(r); err != nil {
			writeServiceError(w, r, "*Handler.requireUnlocked", err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireMasterUser hides the sync routes when no master user is
// configured.
func (h *Handler) requireMasterUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.services.MasterUser == nil {
			writeServiceError(w, r, "*Handler.requireMasterUser", ErrSyncDisabled)
			return
		}
		next.ServeHTTP(w, r)
	})
}
