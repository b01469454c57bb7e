package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema for the SQLite storage backend.
// Collections are snapshot-written, so tables carry no cross-references;
// set-valued columns (level_access, affected_ids) hold JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS foods (
    id           INTEGER PRIMARY KEY,
    image_url    TEXT NOT NULL,
    type         TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Sold Out')),
    hash         TEXT NOT NULL,
    level_access TEXT NOT NULL DEFAULT '[]',
    sort_order   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'kitchen' CHECK (role IN ('admin', 'kitchen'))
);

CREATE TABLE IF NOT EXISTS menu_levels (
    type         TEXT PRIMARY KEY,
    level_access TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS status_history (
    id           REAL PRIMARY KEY,
    at           DATETIME NOT NULL,
    by           TEXT NOT NULL,
    role         TEXT NOT NULL DEFAULT '',
    image_name   TEXT NOT NULL DEFAULT '',
    image_url    TEXT NOT NULL DEFAULT '',
    type         TEXT NOT NULL DEFAULT '',
    from_status  TEXT NOT NULL DEFAULT '',
    to_status    TEXT NOT NULL DEFAULT '',
    count        INTEGER NOT NULL DEFAULT 0,
    affected_ids TEXT NOT NULL DEFAULT '[]'
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
