// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Algorithm names an AEAD construction.
type Algorithm string

const (
	AlgAES256GCM         Algorithm = "aes-256-gcm"
	AlgXChaCha20Poly1305 Algorithm = "xchacha20-poly1305"
)

// Algorithms lists the supported AEADs.
var Algorithms = []Algorithm{AlgAES256GCM, AlgXChaCha20Poly1305}

// ParseAlgorithm validates name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

const formatVersion = "onelock1"

// AEADCipher encrypts with a subkey derived from the data-encryption key via
// HKDF-SHA256, one subkey per algorithm. Ciphertexts look like
//
//	onelock1:<algorithm>:<base64(nonce ‖ sealed)>
//
// and the "onelock1:<algorithm>:" header is bound as associated data.
// Decrypt honours the algorithm named in the header, so switching the
// configured cipher does not strand existing data.
type AEADCipher struct {
	key []byte
	alg Algorithm
}

// NewCipher builds a cipher over a 32-byte key that encrypts with alg.
func NewCipher(key []byte, alg Algorithm) (*AEADCipher, error) {
	if len(key) != dekSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, dekSize, len(key))
	}
	if _, err := ParseAlgorithm(string(alg)); err != nil {
		return nil, err
	}

	k := make([]byte, len(key))
	copy(k, key)
	return &AEADCipher{key: k, alg: alg}, nil
}

// Algorithm returns the algorithm used by Encrypt.
func (c *AEADCipher) Algorithm() Algorithm {
	return c.alg
}

// Encrypt seals plaintext under a fresh nonce and returns a tagged blob.
func (c *AEADCipher) Encrypt(plaintext []byte) (string, error) {
	aead, err := c.aead(c.alg)
	if err != nil {
		return "", err
	}

	nonce, err := randomBytes(uint32(aead.NonceSize()))
	if err != nil {
		return "", err
	}

	header := formatVersion + ":" + string(c.alg) + ":"
	sealed := aead.Seal(nonce, nonce, plaintext, []byte(header))

	return header + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Any tampering or unknown
// format yields [ErrDecryption].
func (c *AEADCipher) Decrypt(ciphertext string) ([]byte, error) {
	parts := strings.SplitN(ciphertext, ":", 3)
	if len(parts) != 3 || parts[0] != formatVersion {
		return nil, fmt.Errorf("%w: unrecognised format", ErrDecryption)
	}

	alg, err := ParseAlgorithm(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	aead, err := c.aead(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	sealed, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrDecryption, err)
	}

	nonceSize := aead.NonceSize()
	if len(sealed) < nonceSize+aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	header := parts[0] + ":" + parts[1] + ":"
	plaintext, err := aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], []byte(header))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return plaintext, nil
}

func (c *AEADCipher) aead(alg Algorithm) (gocipher.AEAD, error) {
	subkey := make([]byte, dekSize)
	kdf := hkdf.New(sha256.New, c.key, nil, []byte("onelock vault "+string(alg)))
	if _, err := io.ReadFull(kdf, subkey); err != nil {
		return nil, fmt.Errorf("derive subkey: %w", err)
	}

	switch alg {
	case AlgXChaCha20Poly1305:
		return chacha20poly1305.NewX(subkey)
	case AlgAES256GCM:
		block, err := aes.NewCipher(subkey)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		return gocipher.NewGCM(block)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}
