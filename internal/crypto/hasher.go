// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Hasher produces self-describing argon2id verifiers:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// The password is first keyed with HMAC-SHA256 under the configured pepper,
// so a leaked verifier cannot be attacked without the application secret.
type Argon2Hasher struct {
	params KDFParams
	pepper []byte
}

// NewPasswordHasher builds a hasher. An empty pepper disables peppering.
func NewPasswordHasher(params KDFParams, pepper string) *Argon2Hasher {
	return &Argon2Hasher{params: params, pepper: []byte(pepper)}
}

// DeriveVerifier hashes the peppered password under a fresh salt.
func (h *Argon2Hasher) DeriveVerifier(password string) (string, error) {
	salt, err := randomBytes(h.params.SaltLen)
	if err != nil {
		return "", err
	}

	key := argon2.IDKey(h.peppered(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the hash with the parameters stored in verifier, so
// verifiers created under older parameters keep working.
func (h *Argon2Hasher) Verify(password, verifier string) (bool, error) {
	parts := strings.Split(verifier, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, ErrInvalidVerifier
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version", ErrInvalidVerifier)
	}

	var (
		memory, time uint32
		threads      uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: parameters: %w", ErrInvalidVerifier, err)
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false, fmt.Errorf("%w: zero parameter", ErrInvalidVerifier)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %w", ErrInvalidVerifier, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: hash", ErrInvalidVerifier)
	}

	got := argon2.IDKey(h.peppered(password), salt, time, memory, threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Argon2Hasher) peppered(password string) []byte {
	if len(h.pepper) == 0 {
		return []byte(password)
	}
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
