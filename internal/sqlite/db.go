// Package sqlite implements the backend record store over SQLite.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The metadata object is stored as one
// JSON column; its shape is owned by the store package, not by SQL.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    type_ref TEXT NOT NULL CHECK(type_ref IN ('restorative', 'neutral', 'mixed', 'depleting')),
    start_time TEXT NOT NULL,
    end_time TEXT,
    status TEXT NOT NULL CHECK(status IN ('planned', 'completed')),
    metadata TEXT NOT NULL DEFAULT '{}',
    created_seq INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_owner_activities ON activities(owner);
CREATE INDEX IF NOT EXISTS idx_owner_start ON activities(owner, start_time);

CREATE TABLE IF NOT EXISTS activity_seq (
    owner TEXT PRIMARY KEY,
    seq INTEGER NOT NULL
);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
