package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/dropregards/core"
)

func newRegardStore(db *sql.DB) *RegardStore {
	return &RegardStore{db: db, now: func() time.Time { return fixedNow }}
}

func sampleRegard() *core.Regard {
	return &core.Regard{
		ID:                   "r1",
		Sender:               core.Party{WalletAddress: "sender1", Username: "bob"},
		Recipient:            core.Party{WalletAddress: "wallet1", Username: "alice"},
		Amount:               decimal.RequireFromString("0.5"),
		Message:              "thanks",
		TransactionSignature: "sig1",
		Status:               core.RegardCompleted,
	}
}

func TestRegardStore_Create(t *testing.T) {
	db, mock := newMock(t)
	store := newRegardStore(db)

	r := sampleRegard()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO regards`)).
		WithArgs("r1", "sender1", "bob", "wallet1", "alice", sqlmock.AnyArg(), "thanks", false, "", "sig1", "completed", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Create(context.Background(), r))
	assert.Equal(t, fixedNow, r.CreatedAt)
}

func TestRegardStore_CreateDuplicateSignature(t *testing.T) {
	db, mock := newMock(t)
	store := newRegardStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO regards`)).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "regards_transaction_signature_key"})

	err := store.Create(context.Background(), sampleRegard())
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestRegardStore_ListByRecipient(t *testing.T) {
	db, mock := newMock(t)
	store := newRegardStore(db)

	rows := sqlmock.NewRows([]string{
		"id", "sender_wallet", "sender_username", "recipient_wallet", "recipient_username",
		"amount", "message", "includes_nft", "nft_design", "transaction_signature", "status", "created_at",
	}).
		AddRow("r2", "sender2", "", "wallet1", "alice", "1.25", "gm", true, "sunset", "sig2", "completed", fixedNow).
		AddRow("r1", "sender1", "bob", "wallet1", "alice", "0.5", "thanks", false, "", "sig1", "completed", fixedNow.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM regards`)).
		WithArgs("wallet1", "completed", 10, 0).
		WillReturnRows(rows)

	regards, err := store.ListByRecipient(context.Background(), "wallet1", 10, 0)
	require.NoError(t, err)
	require.Len(t, regards, 2)
	assert.Equal(t, "r2", regards[0].ID)
	assert.True(t, regards[0].Amount.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, regards[0].IncludesNFT)
	assert.Equal(t, "bob", regards[1].Sender.Username)
	assert.Equal(t, core.RegardCompleted, regards[1].Status)
}

func TestRegardStore_ListByRecipientQueryError(t *testing.T) {
	db, mock := newMock(t)
	store := newRegardStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM regards`)).
		WillReturnError(errors.New("connection reset"))

	_, err := store.ListByRecipient(context.Background(), "wallet1", 10, 0)
	assert.Error(t, err)
}

func TestRegardStore_Stats(t *testing.T) {
	db, mock := newMock(t)
	store := newRegardStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(DISTINCT sender_wallet)`)).
		WithArgs("wallet1", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count", "nfts", "senders"}).AddRow("1.75", 2, 1, 2))

	stats, err := store.Stats(context.Background(), "wallet1")
	require.NoError(t, err)
	assert.True(t, stats.TotalAmount.Equal(decimal.RequireFromString("1.75")))
	assert.Equal(t, int64(2), stats.TotalRegards)
	assert.Equal(t, int64(1), stats.TotalNFTs)
	assert.Equal(t, int64(2), stats.UniqueSenders)
}
