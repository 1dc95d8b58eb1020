// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault persists the credential collection as a single encrypted
// blob in the secure key-value store.
//
// A [Store] is locked until it is handed a cipher by the authentication
// manager. Mutations are serialised in-process and committed with a
// compare-and-swap on the blob, so a write from another process between
// read and commit fails with [ErrConcurrentModification] instead of being
// lost.
package vault

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/utils"
	"github.com/MKhiriev/onelock/internal/validators"
	"github.com/MKhiriev/onelock/models"
)

const maxIDAttempts = 8

// IDGenerator produces record identifiers.
type IDGenerator interface {
	Generate() string
}

// Store is the vault. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	cipher    crypto.Cipher
	records   []models.Credential
	ids       IDGenerator
	now       func() time.Time
	validator validators.Validator
	logger    *logger.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// NewStore creates a locked vault over store. Ids default to UUIDv7.
func NewStore(store kv.Store, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:        store,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		validator: validators.NewCredentialValidator(),
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Unlock installs the cipher derived from the master password.
func (s *Store) Unlock(c crypto.Cipher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cipher = c
}

// Lock drops the cipher and the cached records.
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cipher = nil
	s.records = nil
}

// IsUnlocked reports whether a cipher is installed.
func (s *Store) IsUnlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cipher != nil
}

// Records returns a copy of the collection as of the last successful load
// or commit.
func (s *Store) Records() []models.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// LoadAll reads and decrypts the whole collection. An absent blob is an
// empty vault; a blob that cannot be opened is [ErrVaultCorrupted]. A
// present blob needs the store to be unlocked.
func (s *Store) LoadAll(ctx context.Context) ([]models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.records = records
	return slices.Clone(records), nil
}

// SaveAll replaces the collection. It does not check for concurrent
// writers: the last SaveAll wins.
func (s *Store) SaveAll(ctx context.Context, records []models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.currentCipher()
	if err != nil {
		return err
	}
	if err = s.validator.Validate(ctx, records); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	blob, err := encode(c, records)
	if err != nil {
		return err
	}
	if err = s.kv.Set(ctx, kv.KeyVaultBlob, blob); err != nil {
		return err
	}

	s.records = slices.Clone(records)
	s.logger.Debug().Str("func", "*Store.SaveAll").Int("records", len(records)).Msg("vault saved")
	return nil
}

// Import normalises records from an external dataset (missing or
// duplicate ids, missing timestamps, unknown categories) and replaces the
// collection with them.
func (s *Store) Import(ctx context.Context, records []models.Credential) ([]models.Credential, error) {
	normalized, err := s.normalize(records)
	if err != nil {
		return nil, err
	}
	if err = s.SaveAll(ctx, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Add appends a new record with a fresh id and returns it.
func (s *Store) Add(ctx context.Context, in models.CredentialInput) (models.Credential, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	var added models.Credential
	err := s.mutate(ctx, "add", func(records []models.Credential) ([]models.Credential, error) {
		id, err := s.uniqueID(records)
		if err != nil {
			return nil, err
		}
		added = models.NewCredential(id, in, s.timestamp(time.Time{}))
		return append(records, added), nil
	})

	return added, err
}

// Update applies patch to the record with id and bumps its updatedAt.
func (s *Store) Update(ctx context.Context, id string, patch models.CredentialPatch) (models.Credential, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	var updated models.Credential
	err := s.mutate(ctx, "update", func(records []models.Credential) ([]models.Credential, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		patch.Apply(&records[i])
		records[i].UpdatedAt = s.timestamp(records[i].UpdatedAt)
		updated = records[i]
		return records, nil
	})

	return updated, err
}

// ToggleFavorite flips the favourite flag of the record with id.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (models.Credential, error) {
	var updated models.Credential
	err := s.mutate(ctx, "toggle favorite", func(records []models.Credential) ([]models.Credential, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		records[i].IsFavorite = !records[i].IsFavorite
		records[i].UpdatedAt = s.timestamp(records[i].UpdatedAt)
		updated = records[i]
		return records, nil
	})

	return updated, err
}

// Remove deletes the record with id. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove", func(records []models.Credential) ([]models.Credential, error) {
		i := indexOf(records, id)
		if i < 0 {
			return nil, errNoChange
		}
		return slices.Delete(records, i, i+1), nil
	})
}

// FindByID loads the collection and returns the record with id.
func (s *Store) FindByID(ctx context.Context, id string) (models.Credential, bool, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return models.Credential{}, false, err
	}
	if i := indexOf(records, id); i >= 0 {
		return records[i], true, nil
	}
	return models.Credential{}, false, nil
}

// Rekey re-encrypts the collection under next and hands the new blob to
// commit, which must persist it together with the new key material. The
// store switches to next only if commit succeeds.
func (s *Store) Rekey(ctx context.Context, next crypto.Cipher, commit func(ctx context.Context, blob string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, _, err := s.read(ctx)
	if err != nil {
		return err
	}
	blob, err := encode(next, records)
	if err != nil {
		return err
	}
	if err = commit(ctx, blob); err != nil {
		return err
	}

	s.cipher = next
	s.records = records
	s.logger.Info().Str("func", "*Store.Rekey").Int("records", len(records)).Msg("vault re-encrypted")
	return nil
}

// errNoChange aborts a mutation without writing.
var errNoChange = errors.New("no change")

// mutate runs fn over a fresh copy of the collection and commits the
// result with a compare-and-swap against the blob that was read.
func (s *Store) mutate(ctx context.Context, op string, fn func([]models.Credential) ([]models.Credential, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	if _, err := s.currentCipher(); err != nil {
		return err
	}
	records, raw, err := s.read(ctx)
	if err != nil {
		return err
	}

	next, err := fn(slices.Clone(records))
	if errors.Is(err, errNoChange) {
		s.records = records
		return nil
	}
	if err != nil {
		return err
	}

	blob, err := encode(s.cipher, next)
	if err != nil {
		return err
	}

	err = s.kv.CompareAndSwap(ctx, kv.KeyVaultBlob, raw, blob)
	if errors.Is(err, kv.ErrConflict) {
		log.Warn().Str("func", "*Store.mutate").Str("op", op).Msg("vault blob changed underneath")
		return fmt.Errorf("%s: %w", op, ErrConcurrentModification)
	}
	if err != nil {
		return err
	}

	s.records = next
	log.Debug().Str("func", "*Store.mutate").Str("op", op).Int("records", len(next)).Msg("vault committed")
	return nil
}

// read returns the decoded collection and the raw blob it came from. An
// absent blob needs no key, so it reads as empty even while locked.
// Callers must hold mu.
func (s *Store) read(ctx context.Context) ([]models.Credential, string, error) {
	raw, err := s.kv.Get(ctx, kv.KeyVaultBlob)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Credential{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	c, err := s.currentCipher()
	if err != nil {
		return nil, "", err
	}

	records, err := s.decode(ctx, c, raw)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Store.read").Msg("vault blob rejected")
		return nil, "", err
	}
	return records, raw, nil
}

func (s *Store) currentCipher() (crypto.Cipher, error) {
	if s.cipher == nil {
		return nil, ErrVaultLocked
	}
	return s.cipher, nil
}

// timestamp returns the current time at millisecond precision, forced to
// be strictly after prev.
func (s *Store) timestamp(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func (s *Store) uniqueID(records []models.Credential) (string, error) {
	for range maxIDAttempts {
		id := s.ids.Generate()
		if id != "" && indexOf(records, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (s *Store) normalize(records []models.Credential) ([]models.Credential, error) {
	out := make([]models.Credential, 0, len(records))
	now := s.timestamp(time.Time{})
	for _, r := range records {
		if r.ID == "" || indexOf(out, r.ID) >= 0 {
			id, err := s.uniqueID(out)
			if err != nil {
				return nil, err
			}
			r.ID = id
		}
		if !r.Category.Valid() {
			r.Category = models.CategoryOther
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.UpdatedAt.IsZero() || r.UpdatedAt.Before(r.CreatedAt) {
			r.UpdatedAt = r.CreatedAt
		}
		out = append(out, r)
	}
	return out, nil
}

func indexOf(records []models.Credential, id string) int {
	return slices.IndexFunc(records, func(c models.Credential) bool { return c.ID == id })
}
