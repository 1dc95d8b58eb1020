// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/mock"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUser     = "alice"
	testPassword = "Abc12345!"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func fastParams() crypto.KDFParams {
	return crypto.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1, KeyLen: 32, SaltLen: 16}
}

type harness struct {
	manager *Manager
	vault   *vault.Store
	kv      *kv.SecureStore
	clock   *fakeClock
	hasher  crypto.PasswordHasher
}

func newHarnessOn(t *testing.T, secure *kv.SecureStore, opts ...Option) *harness {
	t.Helper()
	clock := newFakeClock()
	v := vault.NewStore(secure, logger.Nop(), vault.WithClock(clock.Now))
	hasher := crypto.NewPasswordHasher(fastParams(), "test-pepper")
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	m := NewManager(secure, v, crypto.NewKeyChainService(fastParams()), hasher, logger.Nop(), opts...)
	return &harness{manager: m, vault: v, kv: secure, clock: clock, hasher: hasher}
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	return newHarnessOn(t, kv.NewSecureStore(kv.NewMemoryBackend(), logger.Nop()), opts...)
}

func (h *harness) setup(t *testing.T) {
	t.Helper()
	require.NoError(t, h.manager.Setup(context.Background(), testUser, testPassword))
}

func (h *harness) unlock(t *testing.T) {
	t.Helper()
	ok, err := h.manager.Verify(context.Background(), testPassword)
	require.NoError(t, err)
	require.True(t, ok)
}

// ── setup / verify ────────────────────────────────────────────────────────────

func TestSetup_ThenVerify(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.setup(t)

	assert.False(t, h.manager.IsUnlocked(), "setup ends locked")

	ok, err := h.manager.Verify(ctx, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, h.manager.IsUnlocked())

	ok, err = h.manager.Verify(ctx, testPassword)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, h.manager.IsUnlocked())

	last, recorded := h.manager.LastUnlockTime(ctx)
	require.True(t, recorded)
	assert.Equal(t, h.clock.Now(), last)
}

func TestSetup_WritesDefaults(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.setup(t)

	settings := h.manager.GetSettings(ctx)
	assert.Equal(t, testUser, settings.Username)
	assert.Equal(t, models.DefaultAutoLockMinutes, settings.AutoLockMinutes)
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.Equal(t, models.UserTypeLocal, settings.UserType)
	assert.False(t, settings.BiometricEnabled)

	for _, key := range []string{kv.KeyMasterPasswordHash, kv.KeyVaultKeySalt, kv.KeyVaultKeyWrapped} {
		v, err := h.kv.Get(ctx, key)
		require.NoError(t, err, key)
		assert.NotContains(t, v, testPassword)
	}
}

func TestSetup_Errors(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	err := h.manager.Setup(ctx, testUser, "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	h.setup(t)
	err = h.manager.Setup(ctx, testUser, testPassword)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestSetup_SeedsStarterTemplates(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, WithStarterTemplates(true))
	h.setup(t)
	assert.False(t, h.manager.IsUnlocked())

	h.unlock(t)
	records, err := h.vault.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, len(vault.StarterTemplates()))
}

func TestSetupProfile_PrecomputedVerifier(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	verifier, err := h.hasher.DeriveVerifier(testPassword)
	require.NoError(t, err)

	require.NoError(t, h.manager.SetupProfile(ctx, Profile{
		Username: "Admin",
		Password: testPassword,
		Verifier: verifier,
		UserType: models.UserTypeMaster,
	}))

	stored, err := h.kv.Get(ctx, kv.KeyMasterPasswordHash)
	require.NoError(t, err)
	assert.Equal(t, verifier, stored)
	assert.Equal(t, models.UserTypeMaster, h.manager.UserType(ctx))

	h.unlock(t)
}

func TestVerify_NotInitialized(t *testing.T) {
	h := newHarness(t)

	ok, err := h.manager.Verify(context.Background(), testPassword)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestVerify_CorruptedCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("verifier", func(t *testing.T) {
		h := newHarness(t)
		h.setup(t)
		require.NoError(t, h.kv.Set(ctx, kv.KeyMasterPasswordHash, "plaintext"))

		_, err := h.manager.Verify(ctx, testPassword)
		assert.ErrorIs(t, err, ErrCredentialCorrupted)
	})

	t.Run("wrapped key", func(t *testing.T) {
		h := newHarness(t)
		h.setup(t)
		require.NoError(t, h.kv.Set(ctx, kv.KeyVaultKeyWrapped, "AAAA"))

		_, err := h.manager.Verify(ctx, testPassword)
		assert.ErrorIs(t, err, ErrCredentialCorrupted)
		assert.False(t, h.manager.IsUnlocked())
	})

	t.Run("missing salt", func(t *testing.T) {
		h := newHarness(t)
		h.setup(t)
		require.NoError(t, h.kv.Remove(ctx, kv.KeyVaultKeySalt))

		_, err := h.manager.Verify(ctx, testPassword)
		assert.ErrorIs(t, err, ErrCredentialCorrupted)
	})
}

func TestLock(t *testing.T) {
	h := newHarness(t)
	h.setup(t)
	h.unlock(t)

	h.manager.Lock()
	assert.False(t, h.manager.IsUnlocked())

	_, err := h.vault.Add(context.Background(), models.CredentialInput{Title: "x", Secret: "y"})
	assert.ErrorIs(t, err, vault.ErrVaultLocked)
}

// ── scenarios ─────────────────────────────────────────────────────────────────

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.manager.Setup(ctx, testUser, "Abc12345!"))

	ok, err := h.manager.Verify(ctx, "Abc12345!")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.manager.Verify(ctx, "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	added, err := h.vault.Add(ctx, models.CredentialInput{Title: "Example", Secret: "s3cret"})
	require.NoError(t, err)

	records, err := h.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Example", records[0].Title)
	assert.Equal(t, "s3cret", records[0].Secret)
	assert.Equal(t, added.ID, records[0].ID)

	fav := true
	_, err = h.vault.Update(ctx, added.ID, models.CredentialPatch{IsFavorite: &fav})
	require.NoError(t, err)

	found, exists, err := h.vault.FindByID(ctx, added.ID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.True(t, found.IsFavorite)
	assert.NotEqual(t, added.UpdatedAt, found.UpdatedAt)

	require.NoError(t, h.vault.Remove(ctx, added.ID))

	records, err = h.vault.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResetAuthData(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.setup(t)
	h.unlock(t)

	_, err := h.vault.Add(ctx, models.CredentialInput{Title: "Example", Secret: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, h.manager.ResetAuthData(ctx))

	state, err := h.manager.GetAuthState(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsFirstLaunch)
	assert.False(t, state.IsUnlocked)
	assert.Empty(t, state.Username)

	records, err := h.vault.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, key := range kv.Keys {
		has, err := h.kv.Has(ctx, key)
		require.NoError(t, err)
		assert.False(t, has, key)
	}

	h.setup(t)
}

// ── change password ───────────────────────────────────────────────────────────

func TestChangeMasterPassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.setup(t)
	h.unlock(t)

	_, err := h.vault.Add(ctx, models.CredentialInput{Title: "Bank", Secret: "p"})
	require.NoError(t, err)
	h.manager.Lock()

	const next = "Xyz98765?"
	require.NoError(t, h.manager.ChangeMasterPassword(ctx, testPassword, next))
	assert.True(t, h.manager.IsUnlocked())

	// A fresh process sees only the new password and the re-encrypted vault.
	fresh := newHarnessOn(t, h.kv)
	ok, err := fresh.manager.Verify(ctx, testPassword)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = fresh.manager.Verify(ctx, next)
	require.NoError(t, err)
	require.True(t, ok)

	records, err := fresh.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bank", records[0].Title)
}

func TestChangeMasterPassword_Errors(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	assert.ErrorIs(t, h.manager.ChangeMasterPassword(ctx, testPassword, "Xyz98765?"), ErrNotInitialized)

	h.setup(t)
	assert.ErrorIs(t, h.manager.ChangeMasterPassword(ctx, "wrong", "Xyz98765?"), ErrInvalidCredential)
	assert.ErrorIs(t, h.manager.ChangeMasterPassword(ctx, testPassword, "weak"), ErrWeakPassword)

	h.unlock(t)
}

// ── auth state ────────────────────────────────────────────────────────────────

func TestGetAuthState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	state, err := h.manager.GetAuthState(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsFirstLaunch)
	assert.False(t, state.BiometricAvailable)

	h.setup(t)
	h.unlock(t)

	state, err = h.manager.GetAuthState(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AuthState{Username: testUser, IsUnlocked: true}, state)
}

func TestGetAuthState_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	store.EXPECT().Has(gomock.Any(), kv.KeyMasterPasswordHash).Return(false, kv.ErrStorageUnavailable)

	m := NewManager(store, vault.NewStore(store, logger.Nop()), crypto.NewKeyChainService(fastParams()), crypto.NewPasswordHasher(fastParams(), ""), logger.Nop())

	_, err := m.GetAuthState(context.Background())
	assert.ErrorIs(t, err, kv.ErrStorageUnavailable)
}

// ── biometrics ────────────────────────────────────────────────────────────────

func TestAuthenticateWithBiometrics(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	bio := mock.NewMockBiometrics(ctrl)
	bio.EXPECT().Available(gomock.Any()).Return(true).AnyTimes()

	h := newHarness(t, WithBiometrics(bio))

	assert.ErrorIs(t, h.manager.AuthenticateWithBiometrics(ctx), ErrNotInitialized)

	h.setup(t)
	assert.ErrorIs(t, h.manager.AuthenticateWithBiometrics(ctx), ErrBiometricUnavailable, "disabled in settings")

	enabled := true
	_, err := h.manager.UpdateSettings(ctx, models.SettingsPatch{BiometricEnabled: &enabled})
	require.NoError(t, err)
	assert.ErrorIs(t, h.manager.AuthenticateWithBiometrics(ctx), ErrBiometricUnavailable, "no session key yet")

	h.unlock(t)
	h.manager.Lock()

	bio.EXPECT().Authenticate(gomock.Any(), biometricReason).Return(assert.AnError)
	err = h.manager.AuthenticateWithBiometrics(ctx)
	assert.ErrorIs(t, err, ErrBiometricFailed)
	assert.False(t, h.manager.IsUnlocked())

	h.clock.Advance(time.Hour)
	bio.EXPECT().Authenticate(gomock.Any(), biometricReason).Return(nil)
	require.NoError(t, h.manager.AuthenticateWithBiometrics(ctx))
	assert.True(t, h.manager.IsUnlocked())

	last, ok := h.manager.LastUnlockTime(ctx)
	require.True(t, ok)
	assert.Equal(t, h.clock.Now(), last)

	_, err = h.vault.Add(ctx, models.CredentialInput{Title: "x", Secret: "y"})
	require.NoError(t, err)
}

func TestAuthenticateWithBiometrics_NoSensor(t *testing.T) {
	h := newHarness(t)
	h.setup(t)
	h.unlock(t)

	assert.False(t, h.manager.IsBiometricAvailable(context.Background()))
	assert.ErrorIs(t, h.manager.AuthenticateWithBiometrics(context.Background()), ErrBiometricUnavailable)
}

// ── crypto failures ───────────────────────────────────────────────────────────

func TestSetup_KeyMaterialFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	hasher := mock.NewMockPasswordHasher(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	hasher.EXPECT().DeriveVerifier(testPassword).Return("$argon2id$stub", nil)
	keys.EXPECT().GenerateSalt().Return(nil, assert.AnError)

	secure := kv.NewSecureStore(kv.NewMemoryBackend(), logger.Nop())
	m := NewManager(secure, vault.NewStore(secure, logger.Nop()), keys, hasher, logger.Nop())

	err := m.Setup(ctx, testUser, testPassword)
	require.ErrorIs(t, err, assert.AnError)

	has, err := secure.Has(ctx, kv.KeyMasterPasswordHash)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestVerify_MalformedVerifier(t *testing.T) {
	ctx := context.Background()
	hasher := mock.NewMockPasswordHasher(gomock.NewController(t))
	hasher.EXPECT().Verify(testPassword, "garbage").Return(false, crypto.ErrInvalidVerifier)

	secure := kv.NewSecureStore(kv.NewMemoryBackend(), logger.Nop())
	require.NoError(t, secure.Set(ctx, kv.KeyMasterPasswordHash, "garbage"))
	m := NewManager(secure, vault.NewStore(secure, logger.Nop()), crypto.NewKeyChainService(fastParams()), hasher, logger.Nop())

	ok, err := m.Verify(ctx, testPassword)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCredentialCorrupted)
	assert.False(t, m.IsUnlocked())
}

// flakyBackend fails writes while failWrites is set.
type flakyBackend struct {
	*kv.MemoryBackend
	failWrites bool
}

func (b *flakyBackend) Put(ctx context.Context, entries map[string]string) error {
	if b.failWrites {
		return assert.AnError
	}
	return b.MemoryBackend.Put(ctx, entries)
}

func TestChangeMasterPassword_FailedCommitKeepsLockState(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: kv.NewMemoryBackend()}
	h := newHarnessOn(t, kv.NewSecureStore(backend, logger.Nop()))
	h.setup(t)
	require.False(t, h.manager.IsUnlocked())

	backend.failWrites = true
	err := h.manager.ChangeMasterPassword(ctx, testPassword, "Xyz98765!")
	require.ErrorIs(t, err, kv.ErrStorageUnavailable)
	assert.False(t, h.manager.IsUnlocked())
	assert.False(t, h.vault.IsUnlocked())

	backend.failWrites = false
	h.unlock(t)
	err = h.manager.ChangeMasterPassword(ctx, testPassword, "Xyz98765!")
	assert.NoError(t, err)
	assert.True(t, h.manager.IsUnlocked())
}
