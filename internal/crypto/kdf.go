// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// KDFParams are the Argon2id tuning parameters.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// DefaultKDFParams returns the OWASP recommendation: one pass over 64 MiB
// with four lanes, producing 256-bit keys from 128-bit salts.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
		KeyLen:    32,
		SaltLen:   16,
	}
}

func randomBytes(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}
