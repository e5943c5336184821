package storage

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// migrations is the ordered migration chain. Index i holds the migration that
// brings the schema from version i to version i+1. Migrations are append-only;
// never edit a shipped migration, add a new one.
var migrations = []func(*sql.DB) error{
	migrateBaseline,
}

// LatestSchemaVersion returns the schema version the binary expects.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion returns the database's current schema version, 0 when the
// schema_version table does not exist yet.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB brings the database up to the latest schema version.
// A file-backed database gets a .bak copy before any migration applies.
// PRE: db is a valid database connection; dbPath is the file path or ":memory:"
// POST: SchemaVersion == LatestSchemaVersion, WAL and foreign keys enabled
func MigrateDB(db *sql.DB, dbPath string) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if version >= LatestSchemaVersion() {
		return nil
	}

	if err := backupDBFile(dbPath); err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	for v := version; v < LatestSchemaVersion(); v++ {
		if err := migrations[v](db); err != nil {
			return fmt.Errorf("migration %d failed: %w", v+1, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", v+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", v+1, err)
		}
		slog.Info("db_event", "event", "migration_applied", "version", v+1)
	}

	return nil
}

// backupDBFile copies a file-backed database aside before migrating.
// In-memory and missing files are skipped.
func backupDBFile(dbPath string) error {
	if dbPath == "" || dbPath == ":memory:" {
		return nil
	}
	src, err := os.Open(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open db for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dbPath + ".bak")
	if err != nil {
		return fmt.Errorf("failed to create db backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write db backup: %w", err)
	}
	slog.Info("db_event", "event", "backup_written", "path", dbPath+".bak")
	return nil
}

// migrateBaseline creates the full studio schema.
func migrateBaseline(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS appointment (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		category TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		price_cents INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_appointment_date ON appointment(date);

	CREATE TABLE IF NOT EXISTS onboarding_submission (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
