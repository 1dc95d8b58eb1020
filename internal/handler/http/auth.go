package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/utils"
)

type setupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type unlockRequest struct {
	Password string `json:"password"`
}

// resetConfirmation must be echoed in the body of a reset request.
const resetConfirmation = "RESET"

type resetRequest struct {
	Confirm string `json:"confirm"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) authState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.services.Auth.EnforceAutoLock(ctx)

	state, err := h.services.Auth.GetAuthState(ctx)
	if err != nil {
		writeServiceError(w, r, "*Handler.authState", err)
		return
	}
	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

// setup creates the profile. A username matching the configured master
// user goes through the master-user path and must carry its password.
func (h *Handler) setup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setupRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeServiceError(w, r, "*Handler.setup", err)
		return
	}

	var err error
	if mu := h.services.MasterUser; mu != nil && mu.IsMasterUser(req.Username) {
		err = mu.InitializeMasterUser(ctx, req.Username, req.Password)
	} else {
		err = h.services.Auth.Setup(ctx, req.Username, req.Password)
	}
	if err != nil {
		writeServiceError(w, r, "*Handler.setup", err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.setup").Msg("profile created")
	h.writeState(w, r, http.StatusCreated)
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeServiceError(w, r, "*Handler.unlock", err)
		return
	}

	ok, err := h.services.Auth.Verify(r.Context(), req.Password)
	if err != nil {
		writeServiceError(w, r, "*Handler.unlock", err)
		return
	}
	if !ok {
		writeServiceError(w, r, "*Handler.unlock", auth.ErrInvalidCredential)
		return
	}
	if err = h.startSession(w); err != nil {
		writeServiceError(w, r, "*Handler.unlock", err)
		return
	}
	h.writeState(w, r, http.StatusOK)
}

func (h *Handler) unlockWithBiometrics(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Auth.AuthenticateWithBiometrics(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.unlockWithBiometrics", err)
		return
	}
	if err := h.startSession(w); err != nil {
		writeServiceError(w, r, "*Handler.unlockWithBiometrics", err)
		return
	}
	h.writeState(w, r, http.StatusOK)
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	h.services.Auth.Lock()
	h.endSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeServiceError(w, r, "*Handler.changePassword", err)
		return
	}

	if err := h.services.Auth.ChangeMasterPassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, "*Handler.changePassword", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reset erases the profile. The body must be JSON echoing the
// confirmation word, and while the vault is unlocked a session token is
// required like on any other gated route. A locked vault can be reset
// without one so a forgotten password can be recovered from.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := requireJSON(r); err != nil {
		writeServiceError(w, r, "*Handler.reset", err)
		return
	}
	var req resetRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeServiceError(w, r, "*Handler.reset", err)
		return
	}
	if req.Confirm != resetConfirmation {
		writeServiceError(w, r, "*Handler.reset", ErrResetNotConfirmed)
		return
	}

	if h.services.Auth.EnforceAutoLock(ctx) {
		h.endSession()
	}
	if h.services.Auth.IsUnlocked() {
		if err := h.checkSession(r); err != nil {
			writeServiceError(w, r, "*Handler.reset", err)
			return
		}
	}

	if err := h.services.Auth.ResetAuthData(ctx); err != nil {
		writeServiceError(w, r, "*Handler.reset", err)
		return
	}
	h.endSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, status int) {
	state, err := h.services.Auth.GetAuthState(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.writeState", err)
		return
	}
	_, _ = utils.WriteJSON(w, state, status)
}
