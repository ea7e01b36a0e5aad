package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	radix "github.com/mediocregopher/radix/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, radix.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	pool, err := radix.NewPool("tcp", mr.Addr(), 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return mr, pool
}

func TestRedisStorageRoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	mr, pool := newRedis(t)
	storage := NewRedisStorage(pool, time.Hour)

	s := New(storage, "abc")
	require.NoError(t, s.AddToCart(ctx, tv, 2))

	assert.True(t, mr.Exists("cart:abc"))
	assert.Equal(t, time.Hour, mr.TTL("cart:abc"))

	restored, err := Open(ctx, storage, "abc", resolver(tv))
	require.NoError(t, err)
	assert.Equal(t, 2, restored.TotalItems())

	require.NoError(t, restored.ClearCart(ctx))
	assert.False(t, mr.Exists("cart:abc"))
}

func TestRedisStorageMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	mr, pool := newRedis(t)
	storage := NewRedisStorage(pool, 0)

	snap, err := storage.Load(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	require.NoError(t, mr.Set("cart:bad", "{not json"))
	snap, err = storage.Load(ctx, "bad")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.False(t, mr.Exists("cart:bad"))
}
