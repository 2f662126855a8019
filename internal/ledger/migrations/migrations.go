package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/TipJarIndexer/internal/db"
	"github.com/goran-ethernal/TipJarIndexer/internal/logger"
)

//go:embed 001_initial.sql
var mig0001 string

// RunMigrations runs all migrations for the ledger database.
func RunMigrations(log *logger.Logger, sqlDB *sql.DB) error {
	migrations := []db.Migration{
		{
			ID:  "001_initial.sql",
			SQL: mig0001,
		},
	}

	return db.RunMigrationsDB(log, sqlDB, migrations)
}
