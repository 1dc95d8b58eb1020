package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.services.Auth.GetSettings(r.Context()), http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := decodeJSON(r, &patch, false); err != nil {
		writeServiceError(w, r, "*Handler.updateSettings", err)
		return
	}

	settings, err := h.services.Auth.UpdateSettings(r.Context(), patch)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateSettings", err)
		return
	}
	_, _ = utils.WriteJSON(w, settings, http.StatusOK)
}
