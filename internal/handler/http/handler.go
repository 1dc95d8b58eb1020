package http

import (
	"time"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/masteruser"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
)

// Services are the components the API exposes. MasterUser may be nil, in
// which case the sync routes answer 404.
type Services struct {
	Auth       *auth.Manager
	Vault      *vault.Store
	MasterUser *masteruser.Service
	Build      models.BuildInfo
}

// Handler serves the local API.
type Handler struct {
	services   *Services
	signingKey string
	sessions   *sessionTokens
	now        func() time.Time

	logger *logger.Logger
}

// Option customises a Handler.
type Option func(*Handler)

// WithSessionTokens makes unlock answer with a bearer token in
// SessionHeader and the gated routes require it. Only the token of the
// latest unlock is accepted until the vault locks.
func WithSessionTokens(key []byte, ttl time.Duration) Option {
	return func(h *Handler) { h.sessions = &sessionTokens{key: key, ttl: ttl} }
}

// WithClock replaces time.Now for session token timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates the API handler. A non-empty signingKey makes every
// response carry an HMAC signature header.
func NewHandler(services *Services, signingKey string, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:   services,
		signingKey: signingKey,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	logger.Info().Bool("session_tokens", h.sessions != nil).Msg("http handler created")
	return h
}
