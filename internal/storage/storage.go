// Package storage persists the four service collections: foods, users,
// menu-level defaults, and status history. Every save rewrites the full
// collection, mirroring the in-memory-first data model of the service.
package storage

import "github.com/tranvh/menuboard/internal/model"

// Backend is the persistence interface the stores write through. The
// default implementation is the JSON-file directory; a SQLite backend
// exists behind the same interface.
type Backend interface {
	LoadFoods() ([]model.Food, error)
	SaveFoods([]model.Food) error

	LoadUsers() ([]model.User, error)
	SaveUsers([]model.User) error

	LoadLevels() (map[string][]string, error)
	SaveLevels(map[string][]string) error

	LoadHistory() ([]model.Entry, error)
	SaveHistory([]model.Entry) error
}
