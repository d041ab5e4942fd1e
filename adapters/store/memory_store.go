package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/dropregards/core"
)

type memoryNonce struct {
	message   string
	expiresAt time.Time
}

// MemoryNonceStore is an in-memory implementation of the NonceStore interface
// for tests and single-instance development
type MemoryNonceStore struct {
	nonces map[string]memoryNonce
	now    func() time.Time
	mu     sync.Mutex
}

// NewMemoryNonceStore creates a new in-memory nonce store
func NewMemoryNonceStore() *MemoryNonceStore {
	return &MemoryNonceStore{
		nonces: make(map[string]memoryNonce),
		now:    time.Now,
	}
}

// Put stores the nonce for its address and drops expired entries
func (s *MemoryNonceStore) Put(ctx context.Context, nonce *core.Nonce, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for address, n := range s.nonces {
		if !now.Before(n.expiresAt) {
			delete(s.nonces, address)
		}
	}

	s.nonces[nonce.Address] = memoryNonce{
		message:   nonce.Message,
		expiresAt: now.Add(ttl),
	}

	return nil
}

// Consume removes the stored nonce and checks it matches message
func (s *MemoryNonceStore) Consume(ctx context.Context, address, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.nonces[address]
	if !exists {
		return core.ErrNonceNotFound
	}
	delete(s.nonces, address)

	if !s.now().Before(n.expiresAt) {
		return core.ErrNonceNotFound
	}

	if n.message != message {
		return core.ErrInvalidNonce
	}

	return nil
}

// Len returns the number of stored nonces
func (s *MemoryNonceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.nonces)
}
