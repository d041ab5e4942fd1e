package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
	"github.com/redis/go-redis/v9"
)

// RedisNonceStore is a Redis implementation of the NonceStore interface
type RedisNonceStore struct {
	client *redis.Client
	prefix string
}

// NewRedisNonceStore creates a new Redis nonce store
func NewRedisNonceStore(client *redis.Client) ports.NonceStore {
	return &RedisNonceStore{
		client: client,
		prefix: "dropregards:nonce:",
	}
}

// Put stores the nonce message under the wallet address with expiration
func (s *RedisNonceStore) Put(ctx context.Context, nonce *core.Nonce, ttl time.Duration) error {
	key := s.prefix + nonce.Address

	if err := s.client.Set(ctx, key, nonce.Message, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store nonce: %w", err)
	}

	return nil
}

// Consume atomically reads and deletes the nonce so it can be used only once
func (s *RedisNonceStore) Consume(ctx context.Context, address, message string) error {
	key := s.prefix + address

	stored, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.ErrNonceNotFound
		}
		return fmt.Errorf("failed to consume nonce: %w", err)
	}

	if stored != message {
		return core.ErrInvalidNonce
	}

	return nil
}
