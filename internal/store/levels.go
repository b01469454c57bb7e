package store

import (
	"fmt"
	"strings"

	"github.com/tranvh/menuboard/internal/bus"
	"github.com/tranvh/menuboard/internal/model"
)

// MenuLevels returns a copy of the per-category default access levels.
func (s *Store) MenuLevels() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	levels := make(map[string][]string, len(s.levels))
	for foodType, access := range s.levels {
		levels[foodType] = append([]string(nil), access...)
	}
	return levels
}

// SetMenuLevels stores the default access levels for a category without
// touching existing foods. There is no delete: stale categories persist
// harmlessly until reused.
func (s *Store) SetMenuLevels(foodType string, levels []string) ([]string, error) {
	trimmed := strings.TrimSpace(foodType)
	if trimmed == "" {
		return nil, ErrMissingField
	}
	cleaned := model.FilterLevels(levels)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.levels[trimmed] = cleaned
	if err := s.backend.SaveLevels(s.levels); err != nil {
		return nil, fmt.Errorf("saving menu levels: %w", err)
	}

	s.pub.Publish(bus.EventMenuLevelsUpdated, map[string]any{
		"type": trimmed, "levelAccess": cleaned,
	})
	return cleaned, nil
}
