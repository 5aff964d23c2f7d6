package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKV(client)
}

func TestRedisKV_SetGetDelete(t *testing.T) {
	_, kv := setupTestRedis(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "jwks:tenant")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "jwks:tenant", `{"keys":[]}`, time.Minute))
	v, err := kv.Get(ctx, "jwks:tenant")
	require.NoError(t, err)
	assert.Equal(t, `{"keys":[]}`, v)

	require.NoError(t, kv.Delete(ctx, "jwks:tenant"))
	_, err = kv.Get(ctx, "jwks:tenant")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisKV_Expires(t *testing.T) {
	mr, kv := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKV_Expires(t *testing.T) {
	kv := NewMemoryKV()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, kv.Set(ctx, "forever", "v", 0))

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(time.Minute)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = kv.Get(ctx, "forever")
	assert.NoError(t, err)
}
