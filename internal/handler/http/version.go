package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/utils"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.services.Build, http.StatusOK)
}
