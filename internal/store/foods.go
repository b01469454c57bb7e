package store

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tranvh/menuboard/internal/bus"
	"github.com/tranvh/menuboard/internal/model"
)

// Foods returns all foods sorted by display order, ties broken by
// category name.
func (s *Store) Foods() []model.Food {
	s.mu.Lock()
	defer s.mu.Unlock()

	foods := make([]model.Food, len(s.foods))
	copy(foods, s.foods)
	sort.SliceStable(foods, func(i, j int) bool {
		if foods[i].Order != foods[j].Order {
			return foods[i].Order < foods[j].Order
		}
		return foods[i].Type < foods[j].Type
	})
	return foods
}

// CreateFood adds a new food after an image upload produced its URL and
// content hash. Effective access levels resolve by priority: requested
// levels filtered to the valid enumeration, then the registry default
// for the category, then the hard-coded category fallback.
func (s *Store) CreateFood(imageURL, foodType, hash string, requestedLevels []string) (*model.Food, error) {
	if imageURL == "" || strings.TrimSpace(foodType) == "" || hash == "" {
		return nil, ErrMissingField
	}
	foodType = strings.TrimSpace(foodType)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.foods {
		if f.Type != foodType {
			continue
		}
		if f.Hash == hash {
			return nil, fmt.Errorf("%w: duplicate hash", ErrDuplicate)
		}
		if f.ImageURL == imageURL {
			return nil, fmt.Errorf("%w: duplicate image URL", ErrDuplicate)
		}
	}

	levels := model.FilterLevels(requestedLevels)
	if len(levels) == 0 {
		levels = model.FilterLevels(s.levels[foodType])
	}
	if len(levels) == 0 {
		levels = model.DefaultLevels(foodType)
	}

	maxID, maxOrder := 0, -1
	for _, f := range s.foods {
		if f.ID > maxID {
			maxID = f.ID
		}
		if f.Order > maxOrder {
			maxOrder = f.Order
		}
	}

	food := model.Food{
		ID:          maxID + 1,
		ImageURL:    imageURL,
		Type:        foodType,
		Status:      model.StatusAvailable,
		Hash:        hash,
		LevelAccess: levels,
		Order:       maxOrder + 1,
	}
	s.foods = append(s.foods, food)

	if err := s.backend.SaveFoods(s.foods); err != nil {
		return nil, fmt.Errorf("saving foods: %w", err)
	}

	s.pub.Publish(bus.EventFoodAdded, food)
	return &food, nil
}

// UpdateStatus sets the status of the identified food and of every food
// sharing its image name, so the same dish appearing under multiple
// categories changes everywhere at once. One history entry summarizes
// the whole batch. Returns the affected foods.
func (s *Store) UpdateStatus(id int, newStatus, by, role string) ([]model.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.findLocked(id)
	if target == nil {
		return nil, ErrNotFound
	}
	if !model.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	prevStatus := target.Status
	imageName := target.ImageName()

	var updated []model.Food
	for i := range s.foods {
		if s.foods[i].ImageName() == imageName {
			s.foods[i].Status = newStatus
			updated = append(updated, s.foods[i])
		}
	}

	if err := s.backend.SaveFoods(s.foods); err != nil {
		return nil, fmt.Errorf("saving foods: %w", err)
	}

	ids := make([]int, len(updated))
	for i, f := range updated {
		ids[i] = f.ID
	}
	s.appendHistoryLocked(model.Entry{
		By:          by,
		Role:        role,
		ImageName:   imageName,
		ImageURL:    target.ImageURL,
		Type:        target.Type,
		From:        prevStatus,
		To:          newStatus,
		Count:       len(updated),
		AffectedIDs: ids,
	})

	s.pub.Publish(bus.EventFoodStatusUpdated, map[string]any{"updatedFoods": updated})
	return updated, nil
}

// DeleteFood removes a food. If no remaining food references the same
// image URL, the underlying image file is removed as well (best-effort).
// Surviving foods are re-sequenced to a dense 0..N-1 order.
func (s *Store) DeleteFood(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.foods {
		if s.foods[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	removed := s.foods[idx]
	s.foods = append(s.foods[:idx], s.foods[idx+1:]...)

	stillUsed := false
	for _, f := range s.foods {
		if f.ImageURL == removed.ImageURL {
			stillUsed = true
			break
		}
	}
	if !stillUsed && removed.ImageURL != "" {
		if err := s.images.Remove(removed.ImageURL); err != nil {
			slog.Warn("could not remove image file", "imageUrl", removed.ImageURL, "error", err)
		}
	}

	for i := range s.foods {
		s.foods[i].Order = i
	}

	if err := s.backend.SaveFoods(s.foods); err != nil {
		return fmt.Errorf("saving foods: %w", err)
	}

	s.pub.Publish(bus.EventFoodDeleted, map[string]any{"id": id})
	return nil
}

// Reorder assigns display positions by the position of each id in
// orderedIds. Foods not mentioned keep their relative order; the whole
// collection is then re-sequenced densely, which makes the operation
// idempotent.
func (s *Store) Reorder(orderedIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[int]bool, len(s.foods))
	for _, f := range s.foods {
		known[f.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return fmt.Errorf("%w: unknown food id %d", ErrInvalidInput, id)
		}
	}

	position := make(map[int]int, len(orderedIDs))
	for idx, id := range orderedIDs {
		position[id] = idx
	}
	for i := range s.foods {
		if idx, ok := position[s.foods[i].ID]; ok {
			s.foods[i].Order = idx
		}
	}

	sort.SliceStable(s.foods, func(i, j int) bool {
		return s.foods[i].Order < s.foods[j].Order
	})
	for i := range s.foods {
		s.foods[i].Order = i
	}

	if err := s.backend.SaveFoods(s.foods); err != nil {
		return fmt.Errorf("saving foods: %w", err)
	}

	s.pub.Publish(bus.EventFoodsReordered, map[string]any{"orderedIds": orderedIDs})
	return nil
}

// ApplyLevelsToType sets the access levels of every food in the category
// and stores the cleaned set as the registry default for it. An empty
// cleaned set is legal and applied. Returns the number of affected foods.
func (s *Store) ApplyLevelsToType(foodType string, levels []string) (int, []string, error) {
	foodType = strings.TrimSpace(foodType)
	if foodType == "" {
		return 0, nil, ErrMissingField
	}
	cleaned := model.FilterLevels(levels)

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.foods {
		if s.foods[i].Type == foodType {
			s.foods[i].LevelAccess = cleaned
			count++
		}
	}

	if err := s.backend.SaveFoods(s.foods); err != nil {
		return 0, nil, fmt.Errorf("saving foods: %w", err)
	}

	s.levels[foodType] = cleaned
	if err := s.backend.SaveLevels(s.levels); err != nil {
		return 0, nil, fmt.Errorf("saving menu levels: %w", err)
	}

	s.pub.Publish(bus.EventFoodLevelsUpdated, map[string]any{
		"type": foodType, "levelAccess": cleaned, "count": count,
	})
	s.pub.Publish(bus.EventMenuLevelsUpdated, map[string]any{
		"type": foodType, "levelAccess": cleaned,
	})
	return count, cleaned, nil
}

// findLocked returns the food with the given id. Caller holds s.mu.
func (s *Store) findLocked(id int) *model.Food {
	for i := range s.foods {
		if s.foods[i].ID == id {
			return &s.foods[i]
		}
	}
	return nil
}
