package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer is the iss claim of API session tokens.
const SessionIssuer = "onelock"

var (
	ErrInvalidSessionToken        = errors.New("invalid session token")
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// IssueSessionToken signs an HS256 token naming the unlock session
// sessionID. The token expires after ttl.
//
//	token, err := utils.IssueSessionToken(id, 12*time.Hour, key, time.Now())
func IssueSessionToken(sessionID string, ttl time.Duration, key []byte, now time.Time) (string, error) {
	if sessionID == "" || ttl <= 0 || len(key) == 0 {
		return "", errors.New("invalid params for issuing session token")
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken checks the signature, issuer and expiry of token
// at now and returns its session id.
func ValidateSessionToken(token string, key []byte, now time.Time) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithIssuer(SessionIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: empty session id", ErrInvalidSessionToken)
	}
	return claims.ID, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer x"
// header value.
func ParseBearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return strings.TrimSpace(token), nil
}
