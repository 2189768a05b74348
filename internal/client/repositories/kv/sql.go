package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cyberdefense/internal/dbx"
)

// SQLStore implements Store on a single "kv" table.
type SQLStore struct {
	db      *sql.DB
	conn    dbx.DBTX
	dialect dbx.Dialect
}

// NewSQLStore returns a new SQLStore bound to db. The schema must already
// exist; see RunMigrations.
func NewSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{db: db, conn: db, dialect: dialect}
}

func (s *SQLStore) q(query string) string { return s.dialect.Rebind(query) }

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, s.q(`SELECT value FROM kv WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, s.q(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.conn.ExecContext(ctx, s.q(`DELETE FROM kv WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

// CompareAndSwap relies on single conditional statements, so no explicit
// transaction is needed.
func (s *SQLStore) CompareAndSwap(ctx context.Context, key string, old *string, value string) (bool, error) {
	var (
		res sql.Result
		err error
	)
	if old == nil {
		res, err = s.conn.ExecContext(ctx, s.q(`
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO NOTHING
		`), key, value)
	} else {
		res, err = s.conn.ExecContext(ctx, s.q(`
			UPDATE kv SET value = ?, updated_at = CURRENT_TIMESTAMP
			WHERE key = ? AND value = ?
		`), value, key, *old)
	}
	if err != nil {
		return false, fmt.Errorf("failed to swap kv[%s]: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to swap kv[%s]: %w", key, err)
	}
	return n == 1, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
