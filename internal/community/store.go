// Package community provides tenant persistence and host resolution for the
// front door. The store is the only stateful collaborator of the redirect
// engine; the engine itself never touches it.
package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"signpost/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS communities (
	id         TEXT PRIMARY KEY,
	ident      TEXT NOT NULL UNIQUE,
	domain     TEXT NOT NULL DEFAULT '',
	use_domain INTEGER NOT NULL DEFAULT 0,
	deleted    INTEGER NOT NULL DEFAULT 0,
	closed     INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_communities_domain ON communities(domain);
`

// identPattern restricts idents to valid DNS labels.
var identPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Store persists communities in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) the community database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open community database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize community schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create adds a new community. The ident must be a valid DNS label and
// unique across the platform.
func (s *Store) Create(ctx context.Context, ident, customDomain string) (*domain.Community, error) {
	if !identPattern.MatchString(ident) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdent, ident)
	}

	if _, err := s.GetByIdent(ctx, ident); err == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrCommunityExists, ident)
	} else if !errors.Is(err, domain.ErrCommunityNotFound) {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO communities (id, ident, domain, use_domain, deleted, closed, created_at, updated_at)
		 VALUES (?, ?, ?, 0, 0, 0, ?, ?)`,
		uuid.NewString(), ident, customDomain, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert community: %w", err)
	}

	return &domain.Community{Ident: ident, Domain: customDomain}, nil
}

// GetByIdent looks a community up by its subdomain label.
func (s *Store) GetByIdent(ctx context.Context, ident string) (*domain.Community, error) {
	return s.get(ctx, `SELECT ident, domain, use_domain, deleted, closed FROM communities WHERE ident = ?`, ident)
}

// GetByDomain looks a community up by its custom domain.
func (s *Store) GetByDomain(ctx context.Context, customDomain string) (*domain.Community, error) {
	return s.get(ctx, `SELECT ident, domain, use_domain, deleted, closed FROM communities WHERE domain = ? AND domain != ''`, customDomain)
}

func (s *Store) get(ctx context.Context, query string, arg string) (*domain.Community, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	var c domain.Community
	if err := row.Scan(&c.Ident, &c.Domain, &c.UseDomain, &c.Deleted, &c.Closed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to scan community row: %w", err)
	}
	return &c, nil
}

// List returns every community ordered by ident.
func (s *Store) List(ctx context.Context) ([]domain.Community, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ident, domain, use_domain, deleted, closed FROM communities ORDER BY ident`)
	if err != nil {
		return nil, fmt.Errorf("failed to query communities: %w", err)
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var c domain.Community
		if err := rows.Scan(&c.Ident, &c.Domain, &c.UseDomain, &c.Deleted, &c.Closed); err != nil {
			return nil, fmt.Errorf("failed to scan community row: %w", err)
		}
		communities = append(communities, c)
	}
	return communities, rows.Err()
}

// Count returns the number of non-deleted communities. The engine uses a
// zero count to send traffic to marketplace creation.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities WHERE deleted = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count communities: %w", err)
	}
	return count, nil
}

// SetDomain configures (or clears) a community's custom domain and whether
// it is active for serving traffic.
func (s *Store) SetDomain(ctx context.Context, ident, customDomain string, useDomain bool) error {
	return s.update(ctx, ident,
		`UPDATE communities SET domain = ?, use_domain = ?, updated_at = ? WHERE ident = ?`,
		customDomain, useDomain, time.Now().UTC().Format(time.RFC3339), ident,
	)
}

// MarkClosed closes a community; its traffic is redirected to the fallback page.
func (s *Store) MarkClosed(ctx context.Context, ident string) error {
	return s.update(ctx, ident,
		`UPDATE communities SET closed = 1, updated_at = ? WHERE ident = ?`,
		time.Now().UTC().Format(time.RFC3339), ident,
	)
}

// MarkDeleted soft-deletes a community. The row is kept so the redirect
// engine can distinguish deleted tenants from unknown hosts.
func (s *Store) MarkDeleted(ctx context.Context, ident string) error {
	return s.update(ctx, ident,
		`UPDATE communities SET deleted = 1, updated_at = ? WHERE ident = ?`,
		time.Now().UTC().Format(time.RFC3339), ident,
	)
}

func (s *Store) update(ctx context.Context, ident, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update community: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", domain.ErrCommunityNotFound, ident)
	}
	return nil
}
