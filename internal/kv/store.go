// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package kv implements the secure key-value store that holds the password
// verifier, key material, settings and the encrypted vault blob.
//
// [SecureStore] enforces the fixed key set and the error contract on top of
// a [Backend]: in-memory, SQLite, PostgreSQL or bbolt.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/onelock/internal/logger"
)

// SecureStore is the [Store] implementation shared by all backends.
type SecureStore struct {
	backend Backend
	logger  *logger.Logger
}

// NewSecureStore wraps backend.
func NewSecureStore(backend Backend, log *logger.Logger) *SecureStore {
	return &SecureStore{backend: backend, logger: log}
}

// Get returns the value stored under key. An absent key yields
// [ErrNotFound]; a backend failure is wrapped in [ErrStorageUnavailable].
func (s *SecureStore) Get(ctx context.Context, key string) (string, error) {
	if !IsKnownKey(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Err(err).Str("func", "*SecureStore.Get").Str("key", key).Msg("backend read failed")
		return "", fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, key, err)
	}
	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

// Lookup is a non-critical read: storage failures are logged by Get and
// reported as an absent key.
func (s *SecureStore) Lookup(ctx context.Context, key string) (string, bool) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set writes a single key. Failures always propagate.
func (s *SecureStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany writes all entries in one backend transaction. Either every key
// is written or none is.
func (s *SecureStore) SetMany(ctx context.Context, entries map[string]string) error {
	for key := range entries {
		if !IsKnownKey(key) {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
	}
	if len(entries) == 0 {
		return nil
	}

	if err := s.backend.Put(ctx, entries); err != nil {
		s.logger.Err(err).Str("func", "*SecureStore.SetMany").Int("keys", len(entries)).Msg("backend write failed")
		return fmt.Errorf("%w: write: %w", ErrStorageUnavailable, err)
	}

	return nil
}

// CompareAndSwap writes value only if key still holds expected. An empty
// expected means the key must be absent. A lost race yields [ErrConflict].
func (s *SecureStore) CompareAndSwap(ctx context.Context, key, expected, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	swapped, err := s.backend.CompareAndSwap(ctx, key, expected, value)
	if err != nil {
		s.logger.Err(err).Str("func", "*SecureStore.CompareAndSwap").Str("key", key).Msg("backend write failed")
		return fmt.Errorf("%w: swap %s: %w", ErrStorageUnavailable, key, err)
	}
	if !swapped {
		s.logger.Warn().Str("func", "*SecureStore.CompareAndSwap").Str("key", key).Msg("value changed since it was read")
		return ErrConflict
	}

	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *SecureStore) Remove(ctx context.Context, key string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if err := s.backend.Delete(ctx, key); err != nil {
		s.logger.Err(err).Str("func", "*SecureStore.Remove").Str("key", key).Msg("backend delete failed")
		return fmt.Errorf("%w: delete %s: %w", ErrStorageUnavailable, key, err)
	}
	return nil
}

// Has reports whether key is present.
func (s *SecureStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// ClearAll deletes exactly the fixed key set [Keys].
func (s *SecureStore) ClearAll(ctx context.Context) error {
	if err := s.backend.Delete(ctx, Keys...); err != nil {
		s.logger.Err(err).Str("func", "*SecureStore.ClearAll").Msg("backend delete failed")
		return fmt.Errorf("%w: clear: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info().Str("func", "*SecureStore.ClearAll").Msg("secure storage cleared")
	return nil
}

// Close releases the backend.
func (s *SecureStore) Close() error {
	return s.backend.Close()
}
