package http

import (
	"net/http"

	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is the router's MethodNotAllowed handler. It answers 404
// instead of 405 so that unsupported methods do not reveal which routes
// exist.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		if router.Match(rctx, r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		utils.WriteError(w, http.StatusNotFound, "not_found", http.StatusText(http.StatusNotFound))
	}
}
