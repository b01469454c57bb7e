// Package db opens the SQLite database backing the optional sqlite
// storage backend and owns its schema.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database and configures it for the snapshot-write
// workload: every save rewrites a whole table in one transaction, so WAL
// keeps readers unblocked during the rewrite and synchronous=NORMAL is
// safe (a torn write loses at most the last snapshot, never corrupts).
// The schema carries no cross-table references, so foreign keys stay at
// the SQLite default.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
