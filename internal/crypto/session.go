// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// SessionKey keeps the data-encryption key of an unlocked session sealed in
// a memguard enclave. The plaintext key lives in guarded memory only for the
// duration of [SessionKey.Cipher].
type SessionKey struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewSessionKey seals key. The source slice is wiped.
func NewSessionKey(key []byte) (*SessionKey, error) {
	if len(key) != dekSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, dekSize, len(key))
	}
	return &SessionKey{enclave: memguard.NewEnclave(key)}, nil
}

// Cipher opens the enclave and builds a cipher that encrypts with alg.
func (s *SessionKey) Cipher(alg Algorithm) (*AEADCipher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave == nil {
		return nil, ErrSessionKeyDestroyed
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("open session key: %w", err)
	}
	defer buf.Destroy()

	return NewCipher(buf.Bytes(), alg)
}

// Destroy forgets the key. Later calls to Cipher fail.
func (s *SessionKey) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enclave = nil
}
