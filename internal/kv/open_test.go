package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/onelock/internal/config"
	"github.com/MKhiriev/onelock/internal/logger"
)

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.Storage{Driver: DriverMemory}, logger.Nop())
		require.NoError(t, err)
		assert.IsType(t, &MemoryBackend{}, b)
	})

	t.Run("bolt creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "onelock.db")
		b, err := OpenBackend(ctx, config.Storage{Driver: DriverBolt, DSN: path}, logger.Nop())
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &BoltBackend{}, b)
		assert.FileExists(t, path)
	})

	t.Run("sqlite runs migrations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "onelock.sqlite")
		b, err := OpenBackend(ctx, config.Storage{Driver: DriverSQLite, DSN: path}, logger.Nop())
		require.NoError(t, err)
		defer b.Close()

		s := NewSecureStore(b, logger.Nop())
		require.NoError(t, s.SetMany(ctx, map[string]string{KeyTheme: "dark", KeyUsername: "alice"}))
		require.NoError(t, s.Set(ctx, KeyTheme, "light"))
		require.NoError(t, s.CompareAndSwap(ctx, KeyVaultBlob, "", "blob-1"))
		require.ErrorIs(t, s.CompareAndSwap(ctx, KeyVaultBlob, "", "blob-2"), ErrConflict)

		v, err := s.Get(ctx, KeyTheme)
		require.NoError(t, err)
		assert.Equal(t, "light", v)

		require.NoError(t, s.ClearAll(ctx))
		_, err = s.Get(ctx, KeyUsername)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.Storage{Driver: "etcd"}, logger.Nop())
		assert.ErrorIs(t, err, ErrUnsupportedDriver)
	})
}
