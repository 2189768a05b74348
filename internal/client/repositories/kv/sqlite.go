package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cyberdefense/internal/dbx"
	"github.com/dmitrijs2005/cyberdefense/internal/filex"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) the SQLite database at dsn and
// migrates it. dsn may be a file path or ":memory:".
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("failed to prepare sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
	}
	// One connection: SQLite serializes writers anyway, and an in-memory
	// database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, dbx.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, dbx.DialectSQLite), nil
}

// isFilePath reports whether dsn is a plain path rather than ":memory:" or a
// "file:" URI.
func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
