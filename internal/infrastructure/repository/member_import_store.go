package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	orgdomain "github.com/orgstack/orgstack/internal/domain/org"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// MemberImportStore is the import worker's hot path into the store. It
// relies on unique constraints rather than locks: concurrent writers of
// the same username or (org, user) pair converge on one row.
type MemberImportStore struct {
	pool *pgxpool.Pool
}

func NewMemberImportStore(pool *pgxpool.Pool) *MemberImportStore {
	return &MemberImportStore{pool: pool}
}

func (s *MemberImportStore) GetOrganizationBySlug(ctx context.Context, slug string) (*orgdomain.Organization, error) {
	var o orgdomain.Organization
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, slug FROM organizations WHERE slug = $1`,
		slug,
	).Scan(&o.ID, &o.Name, &o.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orgdomain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}
	return &o, nil
}

// GetOrCreateUser resolves a username to a user id, creating the account
// with a hashed placeholder password when missing. A concurrent create
// of the same username is absorbed by the ON CONFLICT clause plus a
// re-read.
func (s *MemberImportStore) GetOrCreateUser(ctx context.Context, username string) (uint64, bool, error) {
	var id uint64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1`, username,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("get user by username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(userdomain.PlaceholderPassword(username)), bcrypt.DefaultCost)
	if err != nil {
		return 0, false, fmt.Errorf("hash placeholder password: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
INSERT INTO users (username, password_hash, active, must_reset_password, created_at, updated_at)
VALUES ($1, $2, FALSE, TRUE, NOW(), NOW())
ON CONFLICT (username) DO NOTHING
RETURNING id`, username, string(hash)).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("create user: %w", err)
	}

	// Lost the race: another writer inserted the row between our select
	// and insert.
	err = s.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1`, username,
	).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("get user after conflict: %w", err)
	}
	return id, false, nil
}

// UpsertMembershipRole applies update-or-create on the (org, user) pair
// and reports whether a new membership row was created. xmax = 0 holds
// only for freshly inserted rows.
func (s *MemberImportStore) UpsertMembershipRole(ctx context.Context, orgID, userID uint64, role orgdomain.Role) (bool, error) {
	var inserted bool
	err := s.pool.QueryRow(ctx, `
INSERT INTO organization_memberships (organization_id, user_id, role, joined_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (organization_id, user_id) DO UPDATE
  SET role = EXCLUDED.role
RETURNING (xmax = 0) AS inserted`, orgID, userID, string(role)).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert membership: %w", err)
	}
	return inserted, nil
}
