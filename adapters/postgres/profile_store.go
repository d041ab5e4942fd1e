package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/layer-3/dropregards/core"
	"github.com/layer-3/dropregards/ports"
)

const profileColumns = `id, wallet_address, username, display_name, bio, profile_image, created_at, updated_at`

// ProfileStore implements ports.ProfileStore on PostgreSQL
type ProfileStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewProfileStore creates a new ProfileStore with the given database connection
func NewProfileStore(db *sql.DB) ports.ProfileStore {
	return &ProfileStore{db: db, now: time.Now}
}

func scanProfile(row interface{ Scan(...interface{}) error }) (*core.Profile, error) {
	var p core.Profile
	err := row.Scan(&p.ID, &p.WalletAddress, &p.Username, &p.DisplayName, &p.Bio, &p.ProfileImage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// FindByWallet returns the profile registered for address or core.ErrNotFound
func (s *ProfileStore) FindByWallet(ctx context.Context, address string) (*core.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE wallet_address = $1`,
		address,
	)
	return scanProfile(row)
}

// FindByUsername returns the profile with username or core.ErrNotFound
func (s *ProfileStore) FindByUsername(ctx context.Context, username string) (*core.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE username = $1`,
		username,
	)
	return scanProfile(row)
}

// Create inserts a profile. A taken wallet or username yields core.ErrConflict.
func (s *ProfileStore) Create(ctx context.Context, p *core.Profile) error {
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.WalletAddress, p.Username, p.DisplayName, p.Bio, p.ProfileImage, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", mapError(err))
	}
	return nil
}

// Update changes the non-nil fields of update and returns the stored profile
func (s *ProfileStore) Update(ctx context.Context, address string, update core.ProfileUpdate) (*core.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE users SET
			display_name = COALESCE($2, display_name),
			bio = COALESCE($3, bio),
			profile_image = COALESCE($4, profile_image),
			updated_at = $5
		WHERE wallet_address = $1
		RETURNING `+profileColumns,
		address, nullString(update.DisplayName), nullString(update.Bio), nullString(update.ProfileImage), s.now().UTC(),
	)
	return scanProfile(row)
}

// UsernameExists reports whether a profile already uses username
func (s *ProfileStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
