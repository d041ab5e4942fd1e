package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
)

const regardColumns = `id, sender_wallet, sender_username, recipient_wallet, recipient_username, amount, message, includes_nft, nft_design, transaction_signature, status, created_at`

// RegardStore implements ports.RegardStore on PostgreSQL
type RegardStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewRegardStore creates a new RegardStore with the given database connection
func NewRegardStore(db *sql.DB) ports.RegardStore {
	return &RegardStore{db: db, now: time.Now}
}

// Create inserts a regard. The unique index on transaction_signature makes a
// concurrent or repeated claim of the same transfer fail with core.ErrConflict.
func (s *RegardStore) Create(ctx context.Context, r *core.Regard) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO regards (`+regardColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID,
		r.Sender.WalletAddress, r.Sender.Username,
		r.Recipient.WalletAddress, r.Recipient.Username,
		r.Amount, r.Message, r.IncludesNFT, r.NFTDesign,
		r.TransactionSignature, string(r.Status), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert regard: %w", mapError(err))
	}
	return nil
}

// ListByRecipient returns completed regards received by address, newest first
func (s *RegardStore) ListByRecipient(ctx context.Context, address string, limit, offset int) ([]core.Regard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+regardColumns+` FROM regards
		WHERE recipient_wallet = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		address, string(core.RegardCompleted), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query regards: %w", err)
	}
	defer rows.Close()

	regards := make([]core.Regard, 0, limit)
	for rows.Next() {
		var (
			r      core.Regard
			status string
		)
		if err := rows.Scan(
			&r.ID,
			&r.Sender.WalletAddress, &r.Sender.Username,
			&r.Recipient.WalletAddress, &r.Recipient.Username,
			&r.Amount, &r.Message, &r.IncludesNFT, &r.NFTDesign,
			&r.TransactionSignature, &status, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan regard: %w", err)
		}
		r.Status = core.RegardStatus(status)
		regards = append(regards, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regards: %w", err)
	}

	return regards, nil
}

// Stats aggregates the completed regards received by address
func (s *RegardStore) Stats(ctx context.Context, address string) (*core.RegardStats, error) {
	var stats core.RegardStats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(amount), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE includes_nft),
			COUNT(DISTINCT sender_wallet)
		FROM regards
		WHERE recipient_wallet = $1 AND status = $2`,
		address, string(core.RegardCompleted),
	).Scan(&stats.TotalAmount, &stats.TotalRegards, &stats.TotalNFTs, &stats.UniqueSenders)
	if err != nil {
		return nil, fmt.Errorf("aggregate regards: %w", err)
	}
	return &stats, nil
}
