package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/goran-ethernal/TipJarIndexer/pkg/config"
	"github.com/mattn/go-sqlite3"
)

// ErrIntegrityCheck is returned when SQLite reports the database file as damaged.
var ErrIntegrityCheck = errors.New("database integrity check failed")

// NewSQLiteDB creates a new SQLite DB
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", fmt.Sprintf(
		"file:%s?_txlock=immediate&_journal_mode=WAL&_busy_timeout=30000",
		dbPath,
	))
}

// NewSQLiteDBFromConfig creates a new SQLite DB with the given configuration.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"file:%s?_txlock=immediate&_journal_mode=%s&_busy_timeout=%d",
		cfg.Path,
		cfg.JournalMode,
		cfg.BusyTimeout,
	)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply connection pool settings
	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	// Apply PRAGMA settings
	pragmas := []string{
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.Synchronous),
		fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize),
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	return db, nil
}

// QuickCheck runs SQLite's quick_check and returns an error if the database file is damaged
// or is not a database at all.
func QuickCheck(db *sql.DB) error {
	var result string
	if err := db.QueryRow("PRAGMA quick_check").Scan(&result); err != nil {
		IntegrityFailureInc()
		return fmt.Errorf("quick check failed: %w", err)
	}

	if result != "ok" {
		IntegrityFailureInc()
		return fmt.Errorf("%w: %s", ErrIntegrityCheck, result)
	}

	return nil
}

// IsUnreadable reports whether err means the file is not a usable SQLite database,
// as opposed to a transient condition such as a lock.
func IsUnreadable(err error) bool {
	if errors.Is(err, ErrIntegrityCheck) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrCorrupt || sqliteErr.Code == sqlite3.ErrNotADB
	}

	return false
}

// DBTotalSize returns the size of the database file including its -wal and -shm companions.
func DBTotalSize(dbPath string) (int64, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat database file: %w", err)
	}

	total := info.Size()
	for _, suffix := range []string{"-wal", "-shm"} {
		if companion, err := os.Stat(dbPath + suffix); err == nil {
			total += companion.Size()
		}
	}

	DBSizeLog(total)

	return total, nil
}
