package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/layer-3/dropregards/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisNonceStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisNonceStore(client).(*RedisNonceStore)
}

func TestRedisNonceStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	mr, s := newRedisStore(t)

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))
	assert.True(t, mr.Exists("dropregards:nonce:alice"))
	assert.Equal(t, time.Minute, mr.TTL("dropregards:nonce:alice"))

	require.NoError(t, s.Consume(ctx, "alice", "m1"))
	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrNonceNotFound)
}

func TestRedisNonceStore_MismatchBurnsNonce(t *testing.T) {
	ctx := context.Background()
	mr, s := newRedisStore(t)

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, "alice", "forged"), core.ErrInvalidNonce)
	assert.False(t, mr.Exists("dropregards:nonce:alice"))
}

func TestRedisNonceStore_ReissueReplaces(t *testing.T) {
	ctx := context.Background()
	_, s := newRedisStore(t)

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))
	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m2"}, time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrInvalidNonce)
}

func TestRedisNonceStore_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, s := newRedisStore(t)

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrNonceNotFound)
}

func TestRedisNonceStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisNonceStore(client)
	mr.Close()

	err = s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute)
	assert.Error(t, err)

	err = s.Consume(ctx, "alice", "m1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNonceNotFound)
}
