// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const dekSize = 32

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params KDFParams
}

// NewKeyChainService constructs a [KeyChainService] with the given Argon2id
// parameters.
func NewKeyChainService(params KDFParams) KeyChainService {
	return &keyChainService{params: params}
}

// GenerateSalt returns SaltLen random bytes.
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	return randomBytes(k.params.SaltLen)
}

// GenerateDEK returns KeyLen random bytes.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	return randomBytes(dekSize)
}

// DeriveKEK implements [KeyChainService]. The KEK exists only in memory.
func (k *keyChainService) DeriveKEK(masterPassword string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(masterPassword),
		salt,
		k.params.Time,
		k.params.MemoryKiB,
		k.params.Threads,
		k.params.KeyLen,
	)
}

// WrapKey implements [KeyChainService] with AES-256-GCM:
// base64(nonce ‖ ciphertext).
func (k *keyChainService) WrapKey(dek, kek []byte) (string, error) {
	gcm, err := newGCM(kek)
	if err != nil {
		return "", err
	}

	nonce, err := randomBytes(uint32(gcm.NonceSize()))
	if err != nil {
		return "", err
	}

	blob := gcm.Seal(nonce, nonce, dek, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// UnwrapKey implements [KeyChainService]. An authentication failure almost
// always means the KEK was derived from a wrong password.
func (k *keyChainService) UnwrapKey(wrapped string, kek []byte) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: decode wrapped key: %w", ErrDecryption, err)
	}

	gcm, err := newGCM(kek)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize+gcm.Overhead() {
		return nil, fmt.Errorf("%w: wrapped key too short", ErrDecryption)
	}

	dek, err := gcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap key: %w", ErrDecryption, err)
	}

	return dek, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
