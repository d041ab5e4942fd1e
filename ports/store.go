package ports

import (
	"context"
	"time"

	"github.com/layer-3/dropregards/core"
)

// NonceStore keeps the outstanding authentication nonce of each wallet
type NonceStore interface {
	// Put stores the nonce for its address, replacing any previous one
	Put(ctx context.Context, nonce *core.Nonce, ttl time.Duration) error
	// Consume removes the stored nonce and checks it matches message
	Consume(ctx context.Context, address, message string) error
}

// ProfileStore persists user profiles
type ProfileStore interface {
	FindByWallet(ctx context.Context, address string) (*core.Profile, error)
	FindByUsername(ctx context.Context, username string) (*core.Profile, error)
	Create(ctx context.Context, profile *core.Profile) error
	Update(ctx context.Context, address string, update core.ProfileUpdate) (*core.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// RegardStore persists verified regards
type RegardStore interface {
	// Create rejects a second regard for the same transaction signature with core.ErrConflict
	Create(ctx context.Context, regard *core.Regard) error
	ListByRecipient(ctx context.Context, address string, limit, offset int) ([]core.Regard, error)
	Stats(ctx context.Context, address string) (*core.RegardStats, error)
}
