package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tranvh/menuboard/internal/model"
)

// Collection file names inside the data directory.
const (
	foodsFile   = "foods.json"
	usersFile   = "users.json"
	levelsFile  = "menu-levels.json"
	historyFile = "status-history.json"
)

// JSONDir stores each collection as one JSON file in a directory.
// Saves write to <file>.tmp and atomically rename over the target so a
// crash mid-write never leaves a corrupt collection behind.
type JSONDir struct {
	dir string
}

// NewJSONDir creates the data directory if needed and returns a backend
// rooted at it.
func NewJSONDir(dir string) (*JSONDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &JSONDir{dir: dir}, nil
}

func (j *JSONDir) LoadFoods() ([]model.Food, error) {
	var foods []model.Food
	if err := j.readJSON(foodsFile, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (j *JSONDir) SaveFoods(foods []model.Food) error {
	return j.writeJSON(foodsFile, emptyNotNil(foods))
}

func (j *JSONDir) LoadUsers() ([]model.User, error) {
	var users []model.User
	if err := j.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (j *JSONDir) SaveUsers(users []model.User) error {
	return j.writeJSON(usersFile, emptyNotNil(users))
}

func (j *JSONDir) LoadLevels() (map[string][]string, error) {
	levels := make(map[string][]string)
	if err := j.readJSON(levelsFile, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (j *JSONDir) SaveLevels(levels map[string][]string) error {
	if levels == nil {
		levels = map[string][]string{}
	}
	return j.writeJSON(levelsFile, levels)
}

func (j *JSONDir) LoadHistory() ([]model.Entry, error) {
	var history []model.Entry
	if err := j.readJSON(historyFile, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (j *JSONDir) SaveHistory(history []model.Entry) error {
	return j.writeJSON(historyFile, emptyNotNil(history))
}

// readJSON decodes the named collection file into target. A missing file
// leaves target untouched (an empty collection).
func (j *JSONDir) readJSON(name string, target any) error {
	data, err := os.ReadFile(filepath.Join(j.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// writeJSON writes v to a temporary file and renames it over the target.
func (j *JSONDir) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(j.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// emptyNotNil keeps persisted collections as [] rather than null.
func emptyNotNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
