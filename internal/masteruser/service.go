// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package masteruser implements the master-user profile and its dataset
// sync: a configured identity that may replace the local vault with a
// remote dataset (pull) and publish the encrypted vault (push).
package masteruser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
)

// Service composes the authentication manager and the vault. It adds no
// storage of its own beyond the last sync time.
type Service struct {
	cfg    Config
	auth   *auth.Manager
	vault  *vault.Store
	kv     kv.Store
	hasher crypto.PasswordHasher
	source Source
	pusher Pusher
	now    func() time.Time
	logger *logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithSource replaces the bundled dataset used by SyncFromRemote.
func WithSource(src Source) Option {
	return func(s *Service) { s.source = src }
}

// WithPusher sets the push target of SyncToRemote.
func WithPusher(p Pusher) Option {
	return func(s *Service) { s.pusher = p }
}

// WithClock replaces time.Now for sync timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the extension. With a zero cfg every master-user
// check reports false.
func NewService(cfg Config, manager *auth.Manager, v *vault.Store, store kv.Store, hasher crypto.PasswordHasher, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		auth:   manager,
		vault:  v,
		kv:     store,
		hasher: hasher,
		source: EmbeddedSource{},
		pusher: NopPusher{},
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsMasterUser reports whether username names the configured master user,
// ignoring case.
func (s *Service) IsMasterUser(username string) bool {
	if !s.cfg.Enabled() {
		return false
	}
	return strings.EqualFold(username, s.cfg.Username)
}

// VerifyMasterUserPassword checks password against the configured verifier.
func (s *Service) VerifyMasterUserPassword(password string) (bool, error) {
	if !s.cfg.Enabled() {
		return false, ErrNotConfigured
	}
	ok, err := s.hasher.Verify(password, s.cfg.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("master user verifier: %w", err)
	}
	return ok, nil
}

// InitializeMasterUser sets up the local profile as the master user. The
// configured verifier is stored as the master credential.
func (s *Service) InitializeMasterUser(ctx context.Context, username, password string) error {
	if !s.IsMasterUser(username) {
		return ErrInvalidCredentials
	}
	ok, err := s.VerifyMasterUserPassword(password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	err = s.auth.SetupProfile(ctx, auth.Profile{
		Username: username,
		Password: password,
		Verifier: s.cfg.PasswordHash,
		UserType: models.UserTypeMaster,
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("func", "*Service.InitializeMasterUser").Str("username", username).Msg("master user initialized")
	return nil
}

// IsCurrentUserMaster reports whether the local profile is the master user.
func (s *Service) IsCurrentUserMaster(ctx context.Context) bool {
	return s.auth.UserType(ctx) == models.UserTypeMaster
}

// SyncFromRemote replaces the whole vault with the source dataset. This is
// a destructive last-writer-wins replace, not a merge. The vault must be
// unlocked.
func (s *Service) SyncFromRemote(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	if !s.IsCurrentUserMaster(ctx) {
		return 0, ErrNotMasterUser
	}
	if !s.vault.IsUnlocked() {
		return 0, vault.ErrVaultLocked
	}

	ds, err := s.source.Fetch(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Service.SyncFromRemote").Msg("fetch failed")
		return 0, err
	}

	imported, err := s.vault.Import(ctx, ds.Passwords)
	if err != nil {
		return 0, err
	}
	if err = s.recordSync(ctx); err != nil {
		return 0, err
	}

	log.Info().Str("func", "*Service.SyncFromRemote").Int("records", len(imported)).Msg("vault replaced from remote")
	return len(imported), nil
}

// ReadyToPush enforces the auto-lock timeout and reports whether the vault
// is unlocked.
func (s *Service) ReadyToPush(ctx context.Context) bool {
	s.auth.EnforceAutoLock(ctx)
	return s.auth.IsUnlocked()
}

// SyncToRemote pushes the encrypted vault through the pusher and records
// the sync time.
func (s *Service) SyncToRemote(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if !s.IsCurrentUserMaster(ctx) {
		return ErrNotMasterUser
	}

	records, err := s.vault.LoadAll(ctx)
	if err != nil {
		return err
	}
	blob, err := s.kv.Get(ctx, kv.KeyVaultBlob)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	snapshot := Snapshot{
		Username: s.auth.GetSettings(ctx).Username,
		Records:  len(records),
		Blob:     blob,
		SyncedAt: s.now().UTC(),
	}
	if err = s.pusher.Push(ctx, snapshot); err != nil {
		log.Err(err).Str("func", "*Service.SyncToRemote").Msg("push failed")
		return err
	}
	if err = s.recordSync(ctx); err != nil {
		return err
	}

	log.Info().Str("func", "*Service.SyncToRemote").Int("records", len(records)).Msg("vault pushed")
	return nil
}

// LastSyncTime returns the time of the last successful pull or push.
func (s *Service) LastSyncTime(ctx context.Context) (time.Time, bool) {
	v, ok := s.kv.Lookup(ctx, kv.KeyLastSyncTime)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Service) recordSync(ctx context.Context) error {
	return s.kv.Set(ctx, kv.KeyLastSyncTime, s.now().UTC().Format(time.RFC3339Nano))
}
