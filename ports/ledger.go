package ports

import (
	"context"

	"github.com/layer-3/dropregards/core"
)

// Ledger reads finalized transactions from the chain
type Ledger interface {
	// GetTransaction returns core.ErrTransactionNotFound or core.ErrLedgerUnavailable on failure
	GetTransaction(ctx context.Context, signature string) (*core.Transaction, error)
}

// SignatureVerifier checks that message was signed by the key behind address
type SignatureVerifier interface {
	Verify(address, signature, message string) bool
	ValidAddress(address string) bool
}
