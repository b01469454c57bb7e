package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tranvh/menuboard/internal/model"
)

// SQLite persists each collection in its own table, replacing the whole
// table inside one transaction on every save. This keeps the same
// full-collection-rewrite semantics as the JSON-file backend, just with
// transactional durability instead of rename atomicity.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened database. The caller is responsible for
// opening the connection and ensuring the schema exists.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) LoadFoods() ([]model.Food, error) {
	rows, err := s.db.Query(
		`SELECT id, image_url, type, status, hash, level_access, sort_order
		 FROM foods ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading foods: %w", err)
	}
	defer rows.Close()

	var foods []model.Food
	for rows.Next() {
		var f model.Food
		var levels string
		if err := rows.Scan(&f.ID, &f.ImageURL, &f.Type, &f.Status, &f.Hash, &levels, &f.Order); err != nil {
			return nil, fmt.Errorf("scanning food: %w", err)
		}
		if err := json.Unmarshal([]byte(levels), &f.LevelAccess); err != nil {
			return nil, fmt.Errorf("parsing level access for food %d: %w", f.ID, err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (s *SQLite) SaveFoods(foods []model.Food) error {
	return s.replace("foods", func(tx *sql.Tx) error {
		for _, f := range foods {
			levels, err := json.Marshal(emptyNotNil(f.LevelAccess))
			if err != nil {
				return fmt.Errorf("encoding level access for food %d: %w", f.ID, err)
			}
			_, err = tx.Exec(
				`INSERT INTO foods (id, image_url, type, status, hash, level_access, sort_order)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				f.ID, f.ImageURL, f.Type, f.Status, f.Hash, string(levels), f.Order,
			)
			if err != nil {
				return fmt.Errorf("inserting food %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLite) LoadUsers() ([]model.User, error) {
	rows, err := s.db.Query(`SELECT username, password_hash, role FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLite) SaveUsers(users []model.User) error {
	return s.replace("users", func(tx *sql.Tx) error {
		for _, u := range users {
			_, err := tx.Exec(
				`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
				u.Username, u.PasswordHash, u.Role,
			)
			if err != nil {
				return fmt.Errorf("inserting user %q: %w", u.Username, err)
			}
		}
		return nil
	})
}

func (s *SQLite) LoadLevels() (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT type, level_access FROM menu_levels`)
	if err != nil {
		return nil, fmt.Errorf("loading menu levels: %w", err)
	}
	defer rows.Close()

	levels := make(map[string][]string)
	for rows.Next() {
		var foodType, encoded string
		if err := rows.Scan(&foodType, &encoded); err != nil {
			return nil, fmt.Errorf("scanning menu level: %w", err)
		}
		var access []string
		if err := json.Unmarshal([]byte(encoded), &access); err != nil {
			return nil, fmt.Errorf("parsing level access for type %q: %w", foodType, err)
		}
		levels[foodType] = access
	}
	return levels, rows.Err()
}

func (s *SQLite) SaveLevels(levels map[string][]string) error {
	return s.replace("menu_levels", func(tx *sql.Tx) error {
		for foodType, access := range levels {
			encoded, err := json.Marshal(emptyNotNil(access))
			if err != nil {
				return fmt.Errorf("encoding level access for type %q: %w", foodType, err)
			}
			_, err = tx.Exec(
				`INSERT INTO menu_levels (type, level_access) VALUES (?, ?)`,
				foodType, string(encoded),
			)
			if err != nil {
				return fmt.Errorf("inserting menu level %q: %w", foodType, err)
			}
		}
		return nil
	})
}

func (s *SQLite) LoadHistory() ([]model.Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, at, by, role, image_name, image_url, type, from_status, to_status, count, affected_ids
		 FROM status_history ORDER BY at`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading status history: %w", err)
	}
	defer rows.Close()

	var history []model.Entry
	for rows.Next() {
		var e model.Entry
		var ids string
		if err := rows.Scan(&e.ID, &e.At, &e.By, &e.Role, &e.ImageName, &e.ImageURL,
			&e.Type, &e.From, &e.To, &e.Count, &ids); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &e.AffectedIDs); err != nil {
			return nil, fmt.Errorf("parsing affected ids: %w", err)
		}
		history = append(history, e)
	}
	return history, rows.Err()
}

func (s *SQLite) SaveHistory(history []model.Entry) error {
	return s.replace("status_history", func(tx *sql.Tx) error {
		for _, e := range history {
			ids, err := json.Marshal(emptyNotNil(e.AffectedIDs))
			if err != nil {
				return fmt.Errorf("encoding affected ids: %w", err)
			}
			_, err = tx.Exec(
				`INSERT INTO status_history
				 (id, at, by, role, image_name, image_url, type, from_status, to_status, count, affected_ids)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				e.ID, e.At, e.By, e.Role, e.ImageName, e.ImageURL,
				e.Type, e.From, e.To, e.Count, string(ids),
			)
			if err != nil {
				return fmt.Errorf("inserting history entry: %w", err)
			}
		}
		return nil
	})
}

// replace deletes all rows from table and runs insert inside one
// transaction.
func (s *SQLite) replace(table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}
