package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tranvh/menuboard/internal/model"
	"github.com/tranvh/menuboard/internal/storage"
)

// ErrUserExists is returned when creating a user whose username is taken.
var ErrUserExists = errors.New("user already exists")

// Users holds the authentication accounts. It shares the storage backend
// with the main store but is otherwise independent: auth is opaque to
// the menu state and emits no broadcasts.
type Users struct {
	mu      sync.Mutex
	backend storage.Backend
	list    []model.User
}

// OpenUsers loads the user collection from the backend.
func OpenUsers(backend storage.Backend) (*Users, error) {
	list, err := backend.LoadUsers()
	if err != nil {
		return nil, err
	}
	return &Users{backend: backend, list: list}, nil
}

// Get returns the user with the given username, or nil.
func (u *Users) Get(username string) *model.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.list {
		if u.list[i].Username == username {
			user := u.list[i]
			return &user
		}
	}
	return nil
}

// List returns all accounts sorted by username.
func (u *Users) List() []model.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	list := make([]model.User, len(u.list))
	copy(list, u.list)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Username < list[j].Username
	})
	return list
}

// Count returns the number of accounts.
func (u *Users) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.list)
}

// Create adds a new account with an already-hashed password.
func (u *Users) Create(username, passwordHash, role string) error {
	if username == "" || passwordHash == "" {
		return ErrMissingField
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.list {
		if u.list[i].Username == username {
			return ErrUserExists
		}
	}

	u.list = append(u.list, model.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err := u.backend.SaveUsers(u.list); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// SetPassword replaces a user's password hash.
func (u *Users) SetPassword(username, passwordHash string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.list {
		if u.list[i].Username == username {
			u.list[i].PasswordHash = passwordHash
			if err := u.backend.SaveUsers(u.list); err != nil {
				return fmt.Errorf("saving users: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}
