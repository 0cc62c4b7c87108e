package scoped

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/dmitrijs2005/gophsession/internal/client/migrations"
	"github.com/dmitrijs2005/gophsession/internal/dbx"
	"github.com/dmitrijs2005/gophsession/internal/filex"
)

// SQLiteOpener opens one SQLite database per scope under Dir.
type SQLiteOpener struct {
	Dir string
}

func NewSQLiteOpener(dir string) *SQLiteOpener {
	return &SQLiteOpener{Dir: dir}
}

// FileName maps a scope key to its database file name.
func FileName(scope string) string {
	sum := blake2b.Sum256([]byte(scope))
	return "scope-" + hex.EncodeToString(sum[:16]) + ".db"
}

func (o *SQLiteOpener) Open(ctx context.Context, scope string) (Store, error) {
	dir, err := filex.EnsureDir(o.Dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName(scope)))
	if err != nil {
		return nil, fmt.Errorf("open scope db: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.ScopedDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := claimScope(ctx, db, scope); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, scope: scope}, nil
}

// claimScope records the owning scope in a fresh file and rejects files that
// already belong to a different one.
func claimScope(ctx context.Context, db *sql.DB, scope string) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var owner string
		err := tx.QueryRowContext(ctx, `SELECT value FROM scope_info WHERE key = 'scope'`).Scan(&owner)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `INSERT INTO scope_info (key, value) VALUES ('scope', ?)`, scope)
			if err != nil {
				return fmt.Errorf("claim scope: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("read scope owner: %w", err)
		case owner != scope:
			return ErrScopeCollision
		default:
			return nil
		}
	})
}

// SQLiteStore is the Store of a single scope.
type SQLiteStore struct {
	db    *sql.DB
	scope string
}

func (s *SQLiteStore) Scope() string { return s.scope }

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scoped_items (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put scoped[%s]: %w", key, err)
	}
	return nil
}

// Get returns (nil, nil) for an absent key and a non-nil slice otherwise.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM scoped_items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scoped[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scoped_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete scoped[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM scoped_items ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scoped keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan scoped key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scoped keys: %w", err)
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
