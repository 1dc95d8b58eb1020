// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package masteruser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/onelock/internal/auth"
	"github.com/MKhiriev/onelock/internal/crypto"
	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/internal/logger"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	masterName     = "Admin"
	masterPassword = "Master123!"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type staticSource struct {
	ds  Dataset
	err error
}

func (s staticSource) Fetch(context.Context) (Dataset, error) { return s.ds, s.err }

type recordingPusher struct {
	mu        sync.Mutex
	snapshots []Snapshot
	err       error
}

func (p *recordingPusher) Push(_ context.Context, s Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.snapshots = append(p.snapshots, s)
	return nil
}

func fastParams() crypto.KDFParams {
	return crypto.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1, KeyLen: 32, SaltLen: 16}
}

func fixedNow() time.Time {
	return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
}

type harness struct {
	svc     *Service
	manager *auth.Manager
	vault   *vault.Store
	kv      *kv.SecureStore
}

func newHarness(t *testing.T, cfg *Config, opts ...Option) *harness {
	t.Helper()

	secure := kv.NewSecureStore(kv.NewMemoryBackend(), logger.Nop())
	hasher := crypto.NewPasswordHasher(fastParams(), "pepper")
	v := vault.NewStore(secure, logger.Nop())
	m := auth.NewManager(secure, v, crypto.NewKeyChainService(fastParams()), hasher, logger.Nop())

	if cfg == nil {
		hash, err := hasher.DeriveVerifier(masterPassword)
		require.NoError(t, err)
		cfg = &Config{Username: masterName, PasswordHash: hash}
	}

	opts = append([]Option{WithClock(fixedNow)}, opts...)
	svc := NewService(*cfg, m, v, secure, hasher, logger.Nop(), opts...)
	return &harness{svc: svc, manager: m, vault: v, kv: secure}
}

func (h *harness) initMaster(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.svc.InitializeMasterUser(ctx, "admin", masterPassword))
	ok, err := h.manager.Verify(ctx, masterPassword)
	require.NoError(t, err)
	require.True(t, ok)
}

// ── identity ──────────────────────────────────────────────────────────────────

func TestIsMasterUser(t *testing.T) {
	h := newHarness(t, nil)

	assert.True(t, h.svc.IsMasterUser("Admin"))
	assert.True(t, h.svc.IsMasterUser("ADMIN"))
	assert.False(t, h.svc.IsMasterUser(" admin "), "exact match, no trimming")
	assert.False(t, h.svc.IsMasterUser("admin\n"))
	assert.False(t, h.svc.IsMasterUser("administrator"))
	assert.False(t, h.svc.IsMasterUser(""))

	unconfigured := newHarness(t, &Config{})
	assert.False(t, unconfigured.svc.IsMasterUser(""))
	assert.False(t, unconfigured.svc.IsMasterUser("admin"))
}

func TestVerifyMasterUserPassword(t *testing.T) {
	h := newHarness(t, nil)

	ok, err := h.svc.VerifyMasterUserPassword(masterPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.svc.VerifyMasterUserPassword("nope")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = newHarness(t, &Config{}).svc.VerifyMasterUserPassword(masterPassword)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = newHarness(t, &Config{Username: "x", PasswordHash: "plain"}).svc.VerifyMasterUserPassword(masterPassword)
	assert.ErrorIs(t, err, crypto.ErrInvalidVerifier)
}

func TestInitializeMasterUser(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)

	assert.ErrorIs(t, h.svc.InitializeMasterUser(ctx, "bob", masterPassword), ErrInvalidCredentials)
	assert.ErrorIs(t, h.svc.InitializeMasterUser(ctx, "admin", "wrong"), ErrInvalidCredentials)
	assert.False(t, h.svc.IsCurrentUserMaster(ctx))

	h.initMaster(t)
	assert.True(t, h.svc.IsCurrentUserMaster(ctx))

	settings := h.manager.GetSettings(ctx)
	assert.Equal(t, "admin", settings.Username)
	assert.Equal(t, models.UserTypeMaster, settings.UserType)
	assert.Equal(t, models.DefaultAutoLockMinutes, settings.AutoLockMinutes)

	assert.ErrorIs(t, h.svc.InitializeMasterUser(ctx, "admin", masterPassword), auth.ErrAlreadyInitialized)
}

// ── pull ──────────────────────────────────────────────────────────────────────

func TestSyncFromRemote_ReplacesVault(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	h.initMaster(t)

	_, err := h.vault.Add(ctx, models.CredentialInput{Title: "Local only", Secret: "x"})
	require.NoError(t, err)

	n, err := h.svc.SyncFromRemote(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := h.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Empty(t, vault.Search(records, "Local only"))

	last, ok := h.svc.LastSyncTime(ctx)
	require.True(t, ok)
	assert.Equal(t, fixedNow(), last)
}

func TestSyncFromRemote_NormalizesDataset(t *testing.T) {
	ctx := context.Background()
	src := staticSource{ds: Dataset{Passwords: []models.Credential{
		{Title: "No id", Secret: "a"},
		{ID: "dup", Title: "First", Secret: "b", Category: "Weird"},
		{ID: "dup", Title: "Second", Secret: "c"},
	}}}
	h := newHarness(t, nil, WithSource(src))
	h.initMaster(t)

	_, err := h.svc.SyncFromRemote(ctx)
	require.NoError(t, err)

	records, err := h.vault.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.NotEmpty(t, r.ID)
		assert.True(t, r.Category.Valid())
		assert.False(t, r.CreatedAt.IsZero())
	}
}

func TestSyncFromRemote_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("local profile", func(t *testing.T) {
		h := newHarness(t, nil)
		require.NoError(t, h.manager.Setup(ctx, "bob", "Abc12345!"))
		_, err := h.svc.SyncFromRemote(ctx)
		assert.ErrorIs(t, err, ErrNotMasterUser)
	})

	t.Run("locked", func(t *testing.T) {
		h := newHarness(t, nil)
		h.initMaster(t)
		h.manager.Lock()
		_, err := h.svc.SyncFromRemote(ctx)
		assert.ErrorIs(t, err, vault.ErrVaultLocked)
	})

	t.Run("source failure leaves vault", func(t *testing.T) {
		h := newHarness(t, nil, WithSource(staticSource{err: ErrRemote}))
		h.initMaster(t)
		_, err := h.vault.Add(ctx, models.CredentialInput{Title: "keep", Secret: "x"})
		require.NoError(t, err)

		_, err = h.svc.SyncFromRemote(ctx)
		assert.ErrorIs(t, err, ErrRemote)

		records, err := h.vault.LoadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
		_, ok := h.svc.LastSyncTime(ctx)
		assert.False(t, ok)
	})

	t.Run("invalid records", func(t *testing.T) {
		h := newHarness(t, nil, WithSource(staticSource{ds: Dataset{Passwords: []models.Credential{{Title: "", Secret: ""}}}}))
		h.initMaster(t)
		_, err := h.svc.SyncFromRemote(ctx)
		assert.ErrorIs(t, err, vault.ErrInvalidRecord)
	})
}

// ── push ──────────────────────────────────────────────────────────────────────

func TestSyncToRemote(t *testing.T) {
	ctx := context.Background()
	pusher := &recordingPusher{}
	h := newHarness(t, nil, WithPusher(pusher))
	h.initMaster(t)

	_, err := h.vault.Add(ctx, models.CredentialInput{Title: "Bank", Secret: "p"})
	require.NoError(t, err)

	require.NoError(t, h.svc.SyncToRemote(ctx))

	require.Len(t, pusher.snapshots, 1)
	snap := pusher.snapshots[0]
	assert.Equal(t, "admin", snap.Username)
	assert.Equal(t, 1, snap.Records)
	assert.Equal(t, fixedNow(), snap.SyncedAt)

	blob, err := h.kv.Get(ctx, kv.KeyVaultBlob)
	require.NoError(t, err)
	assert.Equal(t, blob, snap.Blob)
	assert.NotContains(t, snap.Blob, "Bank")

	_, ok := h.svc.LastSyncTime(ctx)
	assert.True(t, ok)
}

func TestSyncToRemote_Errors(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, nil, WithPusher(&recordingPusher{err: ErrRemote}))
	assert.ErrorIs(t, h.svc.SyncToRemote(ctx), ErrNotMasterUser)

	h.initMaster(t)
	assert.ErrorIs(t, h.svc.SyncToRemote(ctx), ErrRemote)
	_, ok := h.svc.LastSyncTime(ctx)
	assert.False(t, ok)
}

func TestLastSyncTime_Unparseable(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	require.NoError(t, h.kv.Set(ctx, kv.KeyLastSyncTime, "garbage"))

	_, ok := h.svc.LastSyncTime(ctx)
	assert.False(t, ok)
}

func TestReadyToPush(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	require.NoError(t, h.svc.InitializeMasterUser(ctx, "admin", masterPassword))
	assert.False(t, h.svc.ReadyToPush(ctx), "locked after setup")

	ok, err := h.manager.Verify(ctx, masterPassword)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, h.svc.ReadyToPush(ctx))

	// No recorded unlock time means the timeout counts as elapsed.
	require.NoError(t, h.kv.Remove(ctx, kv.KeyLastUnlockTime))
	assert.False(t, h.svc.ReadyToPush(ctx))
	assert.False(t, h.manager.IsUnlocked())
}
