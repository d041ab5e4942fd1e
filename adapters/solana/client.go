// Package solana reads finalized transactions from a Solana JSON-RPC endpoint.
package solana

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/layer-3/dropregards/core"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single getTransaction call
	DefaultTimeout = 10 * time.Second

	// DefaultAttempts is the number of tries for transient failures
	DefaultAttempts = 3

	// DefaultBackoff is the base delay between tries
	DefaultBackoff = 200 * time.Millisecond

	// DefaultCommitment only returns transactions that cannot be rolled back
	DefaultCommitment = "finalized"
)

// Config holds the ledger client settings
type Config struct {
	URL        string
	Timeout    time.Duration
	Attempts   uint
	Backoff    time.Duration
	Commitment string
	HTTPClient *http.Client
}

// Client is a read-only Solana RPC client implementing ports.Ledger
type Client struct {
	rpc        *rpc.Client
	timeout    time.Duration
	attempts   uint
	backoff    time.Duration
	commitment string
	logger     *zap.Logger
}

// NewClient creates a client for the configured endpoint. No connection is
// made until the first call.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("solana rpc url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.Commitment == "" {
		cfg.Commitment = DefaultCommitment
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rpcClient, err := rpc.DialOptions(ctx, cfg.URL, rpc.WithHTTPClient(cfg.HTTPClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc client: %w", err)
	}

	return &Client{
		rpc:        rpcClient,
		timeout:    cfg.Timeout,
		attempts:   cfg.Attempts,
		backoff:    cfg.Backoff,
		commitment: cfg.Commitment,
		logger:     logger,
	}, nil
}

// GetTransaction fetches a finalized transaction by its signature. Transient
// failures are retried; a missing transaction is not.
func (c *Client) GetTransaction(ctx context.Context, signature string) (*core.Transaction, error) {
	var (
		tx      *core.Transaction
		callErr error
	)

	_ = retry.Retry(func(attempt uint) error {
		tx, callErr = c.getTransaction(ctx, signature)
		if callErr == nil || !errors.Is(callErr, core.ErrLedgerUnavailable) || ctx.Err() != nil {
			return nil
		}
		c.logger.Warn("ledger call failed",
			zap.String("signature", signature),
			zap.Uint("attempt", attempt+1),
			zap.Error(callErr),
		)
		return callErr
	}, strategy.Limit(c.attempts), strategy.Backoff(backoff.BinaryExponential(c.backoff)))

	return tx, callErr
}

func (c *Client) getTransaction(ctx context.Context, signature string) (*core.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result *transactionResult
	err := c.rpc.CallContext(ctx, &result, "getTransaction", signature, map[string]interface{}{
		"encoding":                       "json",
		"commitment":                     c.commitment,
		"maxSupportedTransactionVersion": 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getTransaction: %v", core.ErrLedgerUnavailable, err)
	}

	if result == nil || result.Meta == nil {
		return nil, core.ErrTransactionNotFound
	}

	tx := &core.Transaction{
		Signature:    signature,
		Slot:         result.Slot,
		Accounts:     result.accounts(),
		PreBalances:  result.Meta.PreBalances,
		PostBalances: result.Meta.PostBalances,
		Fee:          result.Meta.Fee,
		Failed:       result.Meta.failed(),
	}
	if result.BlockTime != nil {
		tx.BlockTime = *result.BlockTime
	}

	return tx, nil
}

// Close releases the underlying rpc client
func (c *Client) Close() {
	c.rpc.Close()
}
