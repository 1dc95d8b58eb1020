package http

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/onelock/internal/utils"
)

// SessionHeader carries the bearer token issued on unlock.
const SessionHeader = "X-OneLock-Session"

// sessionTokens binds API tokens to the current unlock. Only the token of
// the latest unlock is accepted.
type sessionTokens struct {
	key []byte
	ttl time.Duration

	mu      sync.Mutex
	current string
}

func (s *sessionTokens) issue(now time.Time) (string, error) {
	id := utils.NewUUIDGenerator().Generate()
	token, err := utils.IssueSessionToken(id, s.ttl, s.key, now)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
	return token, nil
}

func (s *sessionTokens) revoke() {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()
}

func (s *sessionTokens) check(token string, now time.Time) error {
	id, err := utils.ValidateSessionToken(token, s.key, now)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" || id != s.current {
		return fmt.Errorf("%w: session has ended", utils.ErrInvalidSessionToken)
	}
	return nil
}

// startSession issues a token for a fresh unlock. It is a no-op when
// session tokens are disabled.
func (h *Handler) startSession(w http.ResponseWriter) error {
	if h.sessions == nil {
		return nil
	}
	token, err := h.sessions.issue(h.now())
	if err != nil {
		return err
	}
	w.Header().Set(SessionHeader, token)
	return nil
}

func (h *Handler) endSession() {
	if h.sessions != nil {
		h.sessions.revoke()
	}
}

// checkSession validates the bearer token of r.
func (h *Handler) checkSession(r *http.Request) error {
	if h.sessions == nil {
		return nil
	}
	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return err
	}
	return h.sessions.check(token, h.now())
}
