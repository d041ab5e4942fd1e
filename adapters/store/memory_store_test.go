package store

import (
	"context"
	"testing"
	"time"

	"github.com/layer-3/dropregards/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNonceStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryNonceStore()

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))

	require.NoError(t, s.Consume(ctx, "alice", "m1"))
	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrNonceNotFound)
}

func TestMemoryNonceStore_Mismatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryNonceStore()

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, "alice", "other"), core.ErrInvalidNonce)
	// a failed attempt burns the nonce
	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrNonceNotFound)
}

func TestMemoryNonceStore_BoundToAddress(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryNonceStore()

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, "bob", "m1"), core.ErrNonceNotFound)
	assert.NoError(t, s.Consume(ctx, "alice", "m1"))
}

func TestMemoryNonceStore_ReissueReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryNonceStore()

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))
	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m2"}, time.Minute))

	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrInvalidNonce)
}

func TestMemoryNonceStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewMemoryNonceStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "alice", Message: "m1"}, time.Minute))
	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "bob", Message: "m2"}, time.Minute))

	now = now.Add(time.Minute)
	assert.ErrorIs(t, s.Consume(ctx, "alice", "m1"), core.ErrNonceNotFound)

	// expired entries are swept on the next write
	require.NoError(t, s.Put(ctx, &core.Nonce{Address: "carol", Message: "m3"}, time.Minute))
	assert.Equal(t, 1, s.Len())
}
