package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendMemory}

	a, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NoError(t, closeFn())
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.BackendSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "test.db"),
	}

	a, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, a.Set(context.Background(), "k", []byte("v")))
	v, err := a.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestOpen_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := &config.Config{
		StorageBackend: config.BackendRedis,
		RedisAddr:      mr.Addr(),
	}

	a, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	require.NotNil(t, a)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageBackend: "tape"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tape")
}
