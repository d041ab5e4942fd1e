package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/dropregards/core"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db, now: func() time.Time { return fixedNow }}
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "wallet_address", "username", "display_name", "bio", "profile_image", "created_at", "updated_at",
	})
}

func TestProfileStore_FindByWallet(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE wallet_address = $1`)).
		WithArgs("wallet1").
		WillReturnRows(profileRows().AddRow("id1", "wallet1", "alice", "Alice", "hi", "", fixedNow, fixedNow))

	p, err := store.FindByWallet(context.Background(), "wallet1")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, fixedNow, p.CreatedAt)
}

func TestProfileStore_FindByUsernameNotFound(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnRows(profileRows())

	_, err := store.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProfileStore_Create(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	p := &core.Profile{ID: "id1", WalletAddress: "wallet1", Username: "alice"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("id1", "wallet1", "alice", "", "", "", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Create(context.Background(), p))
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)
}

func TestProfileStore_CreateConflict(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: "users_username_key"})

	err := store.Create(context.Background(), &core.Profile{ID: "id1", WalletAddress: "wallet1", Username: "alice"})
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestProfileStore_UpdateKeepsNilFields(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	bio := "new bio"
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs("wallet1", nil, "new bio", nil, fixedNow).
		WillReturnRows(profileRows().AddRow("id1", "wallet1", "alice", "Alice", "new bio", "", fixedNow, fixedNow))

	p, err := store.Update(context.Background(), "wallet1", core.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "Alice", p.DisplayName)
}

func TestProfileStore_UpdateMissingProfile(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	name := "Bob"
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
		WillReturnRows(profileRows())

	_, err := store.Update(context.Background(), "wallet1", core.ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProfileStore_UsernameExists(t *testing.T) {
	db, mock := newMock(t)
	store := newProfileStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.UsernameExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMigrate(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS users`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
}
