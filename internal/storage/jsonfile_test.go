package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tranvh/menuboard/internal/model"
)

func TestJSONDirRoundTrip(t *testing.T) {
	backend, err := NewJSONDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONDir: %v", err)
	}

	foods := []model.Food{
		{ID: 1, ImageURL: "/images/A/a.jpg", Type: "A MENU", Status: model.StatusAvailable, Hash: "h1", LevelAccess: []string{"P"}, Order: 0},
		{ID: 2, ImageURL: "/images/B/b.jpg", Type: "B MENU", Status: model.StatusSoldOut, Hash: "h2", LevelAccess: []string{"V-One", "I-I+"}, Order: 1},
	}
	if err := backend.SaveFoods(foods); err != nil {
		t.Fatalf("SaveFoods: %v", err)
	}
	gotFoods, err := backend.LoadFoods()
	if err != nil {
		t.Fatalf("LoadFoods: %v", err)
	}
	if !reflect.DeepEqual(gotFoods, foods) {
		t.Errorf("foods round trip: got %+v", gotFoods)
	}

	users := []model.User{{Username: "admin", PasswordHash: "hash", Role: model.RoleAdmin}}
	if err := backend.SaveUsers(users); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	gotUsers, err := backend.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if !reflect.DeepEqual(gotUsers, users) {
		t.Errorf("users round trip: got %+v", gotUsers)
	}

	levels := map[string][]string{"SNACK MENU": {"P", "V-One"}}
	if err := backend.SaveLevels(levels); err != nil {
		t.Fatalf("SaveLevels: %v", err)
	}
	gotLevels, err := backend.LoadLevels()
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	if !reflect.DeepEqual(gotLevels, levels) {
		t.Errorf("levels round trip: got %+v", gotLevels)
	}

	history := []model.Entry{{
		ID: 1700000000000.5, At: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		By: "admin", Role: "admin", ImageName: "a.jpg", ImageURL: "/images/A/a.jpg",
		Type: "A MENU", From: "Available", To: "Sold Out", Count: 1, AffectedIDs: []int{1},
	}}
	if err := backend.SaveHistory(history); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	gotHistory, err := backend.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if !reflect.DeepEqual(gotHistory, history) {
		t.Errorf("history round trip: got %+v", gotHistory)
	}
}

func TestJSONDirMissingFilesLoadEmpty(t *testing.T) {
	backend, err := NewJSONDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONDir: %v", err)
	}

	foods, err := backend.LoadFoods()
	if err != nil {
		t.Fatalf("LoadFoods: %v", err)
	}
	if len(foods) != 0 {
		t.Errorf("expected empty foods, got %v", foods)
	}

	levels, err := backend.LoadLevels()
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	if len(levels) != 0 {
		t.Errorf("expected empty levels, got %v", levels)
	}
}

func TestJSONDirLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewJSONDir(dir)
	if err != nil {
		t.Fatalf("NewJSONDir: %v", err)
	}

	if err := backend.SaveFoods([]model.Food{{ID: 1}}); err != nil {
		t.Fatalf("SaveFoods: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "foods.json")); err != nil {
		t.Errorf("expected foods.json: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "foods.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should not survive a save")
	}
}

func TestJSONDirCorruptFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewJSONDir(dir)
	if err != nil {
		t.Fatalf("NewJSONDir: %v", err)
	}

	os.WriteFile(filepath.Join(dir, "foods.json"), []byte("{nope"), 0o644)
	if _, err := backend.LoadFoods(); err == nil {
		t.Error("expected error for corrupt foods.json")
	}
}
