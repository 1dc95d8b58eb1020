package masteruser

import "strings"

// Config names the master user and its precomputed password verifier.
// It is injected at construction, never compiled in.
type Config struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether a master user is configured.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Username) != "" && c.PasswordHash != ""
}
