// Package store holds the authoritative in-memory state of the service:
// the food collection, the per-category menu-level defaults, and the
// status-change history. All reads and writes funnel through it.
//
// Every mutation follows the same sequence: validate, mutate in memory,
// persist the full collection, then broadcast. Validation failures cause
// no mutation and no broadcast. A failed persist is returned to the
// caller with the in-memory state left as mutated; the write is a full
// overwrite, so the operator simply retries.
package store

import (
	"errors"
	"sync"

	"github.com/tranvh/menuboard/internal/model"
	"github.com/tranvh/menuboard/internal/storage"
)

// Domain failures, mapped to HTTP statuses at the API boundary.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrDuplicate     = errors.New("food already exists")
	ErrNotFound      = errors.New("food not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidInput  = errors.New("invalid input")
)

// Publisher broadcasts an event to connected clients. The bus satisfies
// it; tests substitute a recording fake.
type Publisher interface {
	Publish(name string, data any)
}

// ImageRemover deletes the stored image file behind an image URL.
// Removal is best-effort: failures are logged, never propagated.
type ImageRemover interface {
	Remove(imageURL string) error
}

// Store is the single shared mutable resource for foods, menu levels,
// and history. One mutex serializes mutations the way the original
// single-threaded runtime did.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	pub     Publisher
	images  ImageRemover

	foods   []model.Food
	levels  map[string][]string
	history []model.Entry
}

// Open loads all collections from the backend. The publisher and image
// remover may not be nil; use fakes in tests.
func Open(backend storage.Backend, pub Publisher, images ImageRemover) (*Store, error) {
	foods, err := backend.LoadFoods()
	if err != nil {
		return nil, err
	}
	levels, err := backend.LoadLevels()
	if err != nil {
		return nil, err
	}
	if levels == nil {
		levels = make(map[string][]string)
	}
	history, err := backend.LoadHistory()
	if err != nil {
		return nil, err
	}

	return &Store{
		backend: backend,
		pub:     pub,
		images:  images,
		foods:   foods,
		levels:  levels,
		history: history,
	}, nil
}
