// Package migrations embeds the schema of the catalog for every supported store.
package migrations

import "embed"

// FS holds the versioned Postgres migrations under postgres/ and the SQLite
// schema under sqlite/.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

const (
	// PostgresDir is the golang-migrate source directory inside FS.
	PostgresDir = "postgres"
	// SQLiteSchema is the path of the idempotent SQLite schema inside FS.
	SQLiteSchema = "sqlite/schema.sql"
)
