// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth implements the authentication manager: master password
// setup and verification, the lock state machine, auto-lock, biometrics
// and user settings.
//
//	Uninitialized --Setup--> Locked --Verify/Biometrics--> Unlocked --Lock/auto-lock--> Locked
//
// Unlock state lives only in process memory; every cold start is Locked.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/validators"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
)

const biometricReason = "Unlock OneLock"

// Manager owns the master credential and the vault's lock state.
type Manager struct {
	mu      sync.Mutex
	kv      kv.Store
	vault   *vault.Store
	keys    crypto.KeyChainService
	hasher  crypto.PasswordHasher
	alg     crypto.Algorithm
	bio     Biometrics
	session *crypto.SessionKey
	seed    bool
	now     func() time.Time
	logger  *logger.Logger
}

// Option customises a Manager.
type Option func(*Manager)

// WithBiometrics sets the platform biometric capability.
func WithBiometrics(b Biometrics) Option {
	return func(m *Manager) { m.bio = b }
}

// WithAlgorithm selects the AEAD used for new vault keys.
func WithAlgorithm(alg crypto.Algorithm) Option {
	return func(m *Manager) { m.alg = alg }
}

// WithStarterTemplates makes Setup seed the vault with sample records.
func WithStarterTemplates(seed bool) Option {
	return func(m *Manager) { m.seed = seed }
}

// WithClock replaces time.Now for unlock timestamps and auto-lock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a manager over store. The vault starts locked.
func NewManager(store kv.Store, v *vault.Store, keys crypto.KeyChainService, hasher crypto.PasswordHasher, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		kv:     store,
		vault:  v,
		keys:   keys,
		hasher: hasher,
		alg:    crypto.AlgAES256GCM,
		bio:    NoBiometrics{},
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Profile describes the identity written by SetupProfile. When Verifier is
// set it is stored as-is instead of being derived from Password.
type Profile struct {
	Username string
	Password string
	Verifier string
	UserType models.UserType
}

// Setup creates the master credential for a local profile. The manager
// stays Locked afterwards.
func (m *Manager) Setup(ctx context.Context, username, password string) error {
	if err := validators.ValidateMasterPassword(password); err != nil {
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}
	return m.SetupProfile(ctx, Profile{Username: username, Password: password, UserType: models.UserTypeLocal})
}

// SetupProfile writes the verifier, key material and default settings in
// one batch and optionally seeds the vault.
func (m *Manager) SetupProfile(ctx context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	log := logger.FromContext(ctx)

	configured, err := m.kv.Has(ctx, kv.KeyMasterPasswordHash)
	if err != nil {
		return err
	}
	if configured {
		return ErrAlreadyInitialized
	}

	verifier := p.Verifier
	if verifier == "" {
		if verifier, err = m.hasher.DeriveVerifier(p.Password); err != nil {
			return fmt.Errorf("derive verifier: %w", err)
		}
	}

	material, err := m.newKeyMaterial(p.Password)
	if err != nil {
		return err
	}

	settings := models.DefaultSettings()
	settings.Username = p.Username
	if p.UserType != "" {
		settings.UserType = p.UserType
	}

	entries := settingsEntries(settings)
	entries[kv.KeyMasterPasswordHash] = verifier
	entries[kv.KeyVaultKeySalt] = material.salt
	entries[kv.KeyVaultKeyWrapped] = material.wrapped
	if err = m.kv.SetMany(ctx, entries); err != nil {
		return err
	}

	if m.seed {
		m.vault.Unlock(material.cipher)
		if _, err = m.vault.Import(ctx, vault.StarterTemplates()); err != nil {
			log.Warn().Err(err).Str("func", "*Manager.SetupProfile").Msg("could not seed starter records")
		}
	}
	m.vault.Lock()

	log.Info().Str("func", "*Manager.SetupProfile").Str("user_type", string(settings.UserType)).Msg("master credential created")
	return nil
}

// Verify checks password against the stored verifier. On success the
// vault is unlocked and the unlock time recorded; on mismatch it returns
// false and the state is unchanged.
func (m *Manager) Verify(ctx context.Context, password string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok, err := m.checkPassword(ctx, password)
	if err != nil || !ok {
		return false, err
	}

	c, dek, err := m.openKeyMaterial(ctx, password)
	if err != nil {
		return false, err
	}
	if err = m.startSession(ctx, c, dek); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info().Str("func", "*Manager.Verify").Msg("vault unlocked")
	return true, nil
}

// Lock closes the session. The session key survives so that biometrics
// can unlock again within this process.
func (m *Manager) Lock() {
	m.vault.Lock()
}

// IsUnlocked reports whether this process holds an unlocked session.
func (m *Manager) IsUnlocked() bool {
	return m.vault.IsUnlocked()
}

// ChangeMasterPassword replaces the master password and re-encrypts the
// vault under a fresh data-encryption key. The verifier, key material and
// vault blob are committed together.
func (m *Manager) ChangeMasterPassword(ctx context.Context, current, next string) error {
	if err := validators.ValidateMasterPassword(next); err != nil {
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ok, err := m.checkPassword(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredential
	}

	oldCipher, oldDEK, err := m.openKeyMaterial(ctx, current)
	if err != nil {
		return err
	}
	clear(oldDEK)

	verifier, err := m.hasher.DeriveVerifier(next)
	if err != nil {
		return fmt.Errorf("derive verifier: %w", err)
	}
	material, err := m.newKeyMaterial(next)
	if err != nil {
		return err
	}

	wasUnlocked := m.vault.IsUnlocked()
	m.vault.Unlock(oldCipher)
	err = m.vault.Rekey(ctx, material.cipher, func(ctx context.Context, blob string) error {
		return m.kv.SetMany(ctx, map[string]string{
			kv.KeyMasterPasswordHash: verifier,
			kv.KeyVaultKeySalt:       material.salt,
			kv.KeyVaultKeyWrapped:    material.wrapped,
			kv.KeyVaultBlob:          blob,
		})
	})
	if err != nil {
		if !wasUnlocked {
			m.vault.Lock()
		}
		return err
	}

	if err = m.startSession(ctx, material.cipher, material.dek); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("func", "*Manager.ChangeMasterPassword").Msg("master password changed")
	return nil
}

// IsBiometricAvailable probes the sensor.
func (m *Manager) IsBiometricAvailable(ctx context.Context) bool {
	return m.bio.Available(ctx)
}

// AuthenticateWithBiometrics unlocks the vault after a successful prompt.
// It needs a configured master credential, biometrics enabled in settings
// and a session key from an earlier password unlock in this process.
func (m *Manager) AuthenticateWithBiometrics(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	configured, err := m.kv.Has(ctx, kv.KeyMasterPasswordHash)
	if err != nil {
		return err
	}
	if !configured {
		return ErrNotInitialized
	}
	if !m.bio.Available(ctx) || !m.GetSettings(ctx).BiometricEnabled || m.session == nil {
		return ErrBiometricUnavailable
	}

	if err = m.bio.Authenticate(ctx, biometricReason); err != nil {
		return fmt.Errorf("%w: %w", ErrBiometricFailed, err)
	}

	c, err := m.session.Cipher(m.alg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBiometricUnavailable, err)
	}
	m.vault.Unlock(c)

	if err = m.SetLastUnlockTime(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("func", "*Manager.AuthenticateWithBiometrics").Msg("vault unlocked")
	return nil
}

// GetAuthState summarises the state for the UI shell. Storage failures
// are returned rather than reported as a first launch.
func (m *Manager) GetAuthState(ctx context.Context) (models.AuthState, error) {
	configured, err := m.kv.Has(ctx, kv.KeyMasterPasswordHash)
	if err != nil {
		return models.AuthState{}, err
	}

	settings := m.GetSettings(ctx)
	return models.AuthState{
		IsFirstLaunch:      !configured,
		BiometricAvailable: m.bio.Available(ctx),
		BiometricEnabled:   settings.BiometricEnabled,
		Username:           settings.Username,
		IsUnlocked:         m.IsUnlocked(),
	}, nil
}

// ResetAuthData wipes every persisted key, including the vault, and
// forgets the session. This cannot be undone.
func (m *Manager) ResetAuthData(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vault.Lock()
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}

	if err := m.kv.ClearAll(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Warn().Str("func", "*Manager.ResetAuthData").Msg("all data wiped")
	return nil
}

// UserType returns the type of the configured profile.
func (m *Manager) UserType(ctx context.Context) models.UserType {
	return m.GetSettings(ctx).UserType
}

// checkPassword compares password with the stored verifier.
func (m *Manager) checkPassword(ctx context.Context, password string) (bool, error) {
	verifier, err := m.kv.Get(ctx, kv.KeyMasterPasswordHash)
	if errors.Is(err, kv.ErrNotFound) {
		return false, ErrNotInitialized
	}
	if err != nil {
		return false, err
	}

	ok, err := m.hasher.Verify(password, verifier)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Manager.checkPassword").Msg("stored verifier rejected")
		return false, fmt.Errorf("%w: %w", ErrCredentialCorrupted, err)
	}
	return ok, nil
}

type keyMaterial struct {
	salt    string
	wrapped string
	dek     []byte
	cipher  *crypto.AEADCipher
}

// newKeyMaterial generates a salt and DEK and wraps the DEK with the KEK
// derived from password.
func (m *Manager) newKeyMaterial(password string) (keyMaterial, error) {
	salt, err := m.keys.GenerateSalt()
	if err != nil {
		return keyMaterial{}, fmt.Errorf("generate salt: %w", err)
	}
	dek, err := m.keys.GenerateDEK()
	if err != nil {
		return keyMaterial{}, fmt.Errorf("generate DEK: %w", err)
	}

	kek := m.keys.DeriveKEK(password, salt)
	defer clear(kek)

	wrapped, err := m.keys.WrapKey(dek, kek)
	if err != nil {
		return keyMaterial{}, fmt.Errorf("wrap DEK: %w", err)
	}
	c, err := crypto.NewCipher(dek, m.alg)
	if err != nil {
		return keyMaterial{}, err
	}

	return keyMaterial{
		salt:    base64.StdEncoding.EncodeToString(salt),
		wrapped: wrapped,
		dek:     dek,
		cipher:  c,
	}, nil
}

// openKeyMaterial unwraps the stored DEK with a verified password.
func (m *Manager) openKeyMaterial(ctx context.Context, password string) (*crypto.AEADCipher, []byte, error) {
	encodedSalt, err := m.kv.Get(ctx, kv.KeyVaultKeySalt)
	if err != nil {
		return nil, nil, m.materialError(err)
	}
	wrapped, err := m.kv.Get(ctx, kv.KeyVaultKeyWrapped)
	if err != nil {
		return nil, nil, m.materialError(err)
	}

	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decode salt: %w", ErrCredentialCorrupted, err)
	}

	kek := m.keys.DeriveKEK(password, salt)
	defer clear(kek)

	dek, err := m.keys.UnwrapKey(wrapped, kek)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unwrap DEK: %w", ErrCredentialCorrupted, err)
	}
	c, err := crypto.NewCipher(dek, m.alg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCredentialCorrupted, err)
	}
	return c, dek, nil
}

func (m *Manager) materialError(err error) error {
	if errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("%w: key material missing", ErrCredentialCorrupted)
	}
	return err
}

// startSession unlocks the vault with c and seals dek for biometric
// re-unlock. dek is wiped.
func (m *Manager) startSession(ctx context.Context, c crypto.Cipher, dek []byte) error {
	session, err := crypto.NewSessionKey(dek)
	if err != nil {
		return err
	}
	if m.session != nil {
		m.session.Destroy()
	}
	m.session = session

	m.vault.Unlock(c)
	return m.SetLastUnlockTime(ctx)
}
