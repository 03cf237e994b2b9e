package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	a := New()
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := a.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestGet_AbsentReturnsNilNil(t *testing.T) {
	a := New()

	v, err := a.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	a := New()
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte("old")))
	require.NoError(t, a.Set(ctx, "k", []byte("new")))

	v, err := a.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestRemove_IsIdempotent(t *testing.T) {
	a := New()
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, a.Remove(ctx, "x"))

	v, err := a.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, a.Remove(ctx, "x"))
}

func TestGet_ReturnsCopy(t *testing.T) {
	a := New()
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte("abc")))

	v, err := a.Get(ctx, "k")
	require.NoError(t, err)
	v[0] = 'z'

	again, err := a.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestCancelledContext(t *testing.T) {
	a := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, a.Set(ctx, "k", nil))
	require.Error(t, a.Remove(ctx, "k"))
}
