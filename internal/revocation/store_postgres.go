package revocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PostgresStore persists revoked UVCIs in the revoked_uvcis table.
type PostgresStore struct {
	db    *sql.DB
	clock func() time.Time
}

// PostgresStoreOption configures a PostgresStore.
type PostgresStoreOption func(*PostgresStore)

// WithPostgresClock sets the clock used for revoked_at.
func WithPostgresClock(clock func() time.Time) PostgresStoreOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgresStore constructs a PostgreSQL-backed revocation store.
func NewPostgresStore(db *sql.DB, opts ...PostgresStoreOption) *PostgresStore {
	s := &PostgresStore{db: db, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Apply runs the insert and delete batches in one transaction.
func (s *PostgresStore) Apply(ctx context.Context, revoked, deleted []string) (err error) {
	revoked, deleted = normalize(revoked), normalize(deleted)
	if len(revoked) == 0 && len(deleted) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin crl update: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if len(revoked) > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO revoked_uvcis (uvci, revoked_at)
			SELECT unnest($1::text[]), $2
			ON CONFLICT (uvci) DO NOTHING
		`, pq.Array(revoked), s.clock())
		if err != nil {
			return fmt.Errorf("insert revoked uvcis: %w", err)
		}
	}
	if len(deleted) > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM revoked_uvcis WHERE uvci = ANY($1)`, pq.Array(deleted))
		if err != nil {
			return fmt.Errorf("delete revoked uvcis: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit crl update: %w", err)
	}
	recordApply(len(revoked), len(deleted))
	return nil
}

func (s *PostgresStore) IsRevoked(ctx context.Context, uvci string) (bool, error) {
	uvci = strings.TrimSpace(uvci)
	if uvci == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_uvcis WHERE uvci = $1)`, uvci).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check uvci revocation: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Clean(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM revoked_uvcis`); err != nil {
		return fmt.Errorf("clean crl: %w", err)
	}
	recordClean()
	return nil
}
