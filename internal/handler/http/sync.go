package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/onelock/internal/utils"
)

type syncStatusResponse struct {
	IsMasterUser bool       `json:"isMasterUser"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
}

type pullResponse struct {
	Records int `json:"records"`
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mu := h.services.MasterUser

	resp := syncStatusResponse{IsMasterUser: mu.IsCurrentUserMaster(ctx)}
	if t, ok := mu.LastSyncTime(ctx); ok {
		resp.LastSyncTime = &t
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// pull replaces the vault with the remote dataset.
func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.MasterUser.SyncFromRemote(r.Context())
	if err != nil {
		writeServiceError(w, r, "*Handler.pull", err)
		return
	}
	_, _ = utils.WriteJSON(w, pullResponse{Records: n}, http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	if err := h.services.MasterUser.SyncToRemote(r.Context()); err != nil {
		writeServiceError(w, r, "*Handler.push", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
