package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sessionKey = []byte("0123456789abcdef0123456789abcdef")
	issuedAt   = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
)

func TestIssueSessionToken_RoundTrip(t *testing.T) {
	token, err := IssueSessionToken("session-1", time.Hour, sessionKey, issuedAt)
	require.NoError(t, err)

	id, err := ValidateSessionToken(token, sessionKey, issuedAt.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)
}

func TestIssueSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ttl  time.Duration
		key  []byte
	}{
		{name: "empty id", ttl: time.Hour, key: sessionKey},
		{name: "zero ttl", id: "s", key: sessionKey},
		{name: "empty key", id: "s", ttl: time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IssueSessionToken(tt.id, tt.ttl, tt.key, issuedAt)
			assert.Error(t, err)
		})
	}
}

func TestValidateSessionToken_Rejects(t *testing.T) {
	valid, err := IssueSessionToken("session-1", time.Hour, sessionKey, issuedAt)
	require.NoError(t, err)

	foreignIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ID:        "session-1",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(sessionKey)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: SessionIssuer,
		ID:     "session-1",
	}).SignedString(sessionKey)
	require.NoError(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(sessionKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		key   []byte
		at    time.Time
	}{
		{name: "expired", token: valid, key: sessionKey, at: issuedAt.Add(2 * time.Hour)},
		{name: "wrong key", token: valid, key: []byte("another-key-another-key-another!"), at: issuedAt},
		{name: "foreign issuer", token: foreignIssuer, key: sessionKey, at: issuedAt},
		{name: "no expiry", token: noExpiry, key: sessionKey, at: issuedAt},
		{name: "no session id", token: noID, key: sessionKey, at: issuedAt},
		{name: "garbage", token: "not.a.token", key: sessionKey, at: issuedAt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSessionToken(tt.token, tt.key, tt.at)
			assert.ErrorIs(t, err, ErrInvalidSessionToken)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer  abc ", want: "abc"},
		{header: "", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
