package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router with its middleware chain.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withSignature)

	router.Get("/api/version", h.version)

	router.Route("/api/auth", func(r chi.Router) {
		r.Get("/state", h.authState)
		r.Post("/setup", h.setup)
		r.Post("/unlock", h.unlock)
		r.Post("/biometric", h.unlockWithBiometrics)
		r.Post("/lock", h.lock)
		r.Post("/reset", h.reset)
		r.With(h.requireUnlocked).Post("/password", h.changePassword)
	})

	router.Route("/api/settings", func(r chi.Router) {
		r.Get("/", h.getSettings)
		r.With(h.requireUnlocked).Patch("/", h.updateSettings)
	})

	router.Route("/api/passwords", func(r chi.Router) {
		r.Use(h.requireUnlocked)
		r.Get("/", h.listPasswords)
		r.Post("/", h.createPassword)
		r.Get("/{id}", h.getPassword)
		r.Patch("/{id}", h.updatePassword)
		r.Delete("/{id}", h.deletePassword)
		r.Post("/{id}/favorite", h.toggleFavorite)
	})

	router.Route("/api/sync", func(r chi.Router) {
		r.Use(h.requireMasterUser)
		r.Get("/status", h.syncStatus)
		r.With(h.requireUnlocked).Post("/pull", h.pull)
		r.With(h.requireUnlocked).Post("/push", h.push)
	})

	router.Route("/api/tools", func(r chi.Router) {
		r.Post("/generate", h.generatePassword)
		r.Post("/strength", h.checkStrength)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
