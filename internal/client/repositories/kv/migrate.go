package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cyberdefense/internal/client/migrations"
	"github.com/dmitrijs2005/cyberdefense/internal/dbx"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema for dialect to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	dir := "sqlite"
	if dialect == dbx.DialectPostgres {
		dir = "postgres"
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
