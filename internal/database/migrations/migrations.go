package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds all registered ledger schema migrations.
var Migrations = migrate.NewMigrations()
