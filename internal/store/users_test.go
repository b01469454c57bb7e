package store

import (
	"errors"
	"testing"

	"github.com/tranvh/menuboard/internal/model"
	"github.com/tranvh/menuboard/internal/storage"
)

func newTestUsers(t *testing.T) *Users {
	t.Helper()

	backend, err := storage.NewJSONDir(t.TempDir())
	if err != nil {
		t.Fatalf("creating backend: %v", err)
	}
	users, err := OpenUsers(backend)
	if err != nil {
		t.Fatalf("opening users: %v", err)
	}
	return users
}

func TestCreateAndGetUser(t *testing.T) {
	users := newTestUsers(t)

	if err := users.Create("admin", "hash", model.RoleAdmin); err != nil {
		t.Fatalf("Create: %v", err)
	}

	user := users.Get("admin")
	if user == nil {
		t.Fatal("expected user")
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", user.Role)
	}
	if users.Get("nobody") != nil {
		t.Error("expected nil for unknown user")
	}
	if users.Count() != 1 {
		t.Errorf("expected count 1, got %d", users.Count())
	}
}

func TestListUsersSorted(t *testing.T) {
	users := newTestUsers(t)

	users.Create("kitchen", "h1", model.RoleKitchen)
	users.Create("admin", "h2", model.RoleAdmin)

	list := users.List()
	if len(list) != 2 || list[0].Username != "admin" || list[1].Username != "kitchen" {
		t.Errorf("expected [admin kitchen], got %+v", list)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	users := newTestUsers(t)

	users.Create("admin", "hash", model.RoleAdmin)
	if err := users.Create("admin", "hash2", model.RoleKitchen); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	users := newTestUsers(t)

	if err := users.Create("x", "hash", "waiter"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	users := newTestUsers(t)

	users.Create("kitchen", "old", model.RoleKitchen)
	if err := users.SetPassword("kitchen", "new"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if users.Get("kitchen").PasswordHash != "new" {
		t.Error("password hash not updated")
	}

	if err := users.SetPassword("nobody", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
