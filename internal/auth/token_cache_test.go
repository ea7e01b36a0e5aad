package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	radix "github.com/mediocregopher/radix/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/user"
)

func TestTokenCacheVerifyFillsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	pool, err := radix.NewPool("tcp", mr.Addr(), 2)
	require.NoError(t, err)
	defer pool.Close()

	cfg := &config.JWTConfig{Secret: "s3cret", TTLMinutes: 60}
	token, err := GenerateToken(cfg, &user.User{ID: "u1", Email: "user@example.com"})
	require.NoError(t, err)

	ring := NewConsistentHashRing([]string{"n1", "n2"}, 10)
	cache := NewTokenCache(pool, ring, time.Minute)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, hit)

	claims, err := cache.Verify(ctx, cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "auth:jwt:"+ring.GetNode(token)+":"))
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	cached, hit, err := cache.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "user@example.com", cached.Email)
}

func TestTokenCacheWithoutRedisStillVerifies(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cret"}
	token, err := GenerateToken(cfg, &user.User{ID: "u2"})
	require.NoError(t, err)

	cache := NewTokenCache(nil, nil, 0)
	claims, err := cache.Verify(context.Background(), cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)

	_, err = cache.Verify(context.Background(), cfg, "garbage")
	assert.Error(t, err)
}

func TestConsistentHashRing(t *testing.T) {
	ring := NewConsistentHashRing([]string{"a", "b", "c"}, 20)
	node := ring.GetNode("some-token")
	assert.Contains(t, []string{"a", "b", "c"}, node)
	assert.Equal(t, node, ring.GetNode("some-token"))

	// 重复添加不会改变归属
	ring.Add("a", "b")
	assert.Equal(t, node, ring.GetNode("some-token"))

	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		seen[ring.GetNode(fmt.Sprintf("token-%d", i))]++
	}
	assert.Len(t, seen, 3)

	cache := NewTokenCache(nil, ring, 0)
	assert.True(t, strings.HasPrefix(cache.cacheKey("some-token"), "auth:jwt:"+node+":"))

	empty := NewConsistentHashRing(nil, 0)
	assert.Equal(t, "auth-node-default", empty.GetNode("x"))
}
