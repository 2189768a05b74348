// Package migrations embeds the schema of the SQL-backed key-value stores,
// one goose directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
