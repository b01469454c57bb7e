package model

import "strings"

// Access levels restricting which customer tier may view a food.
const (
	LevelP    = "P"
	LevelII   = "I-I+"
	LevelVOne = "V-One"
)

// ValidLevel reports whether lv is a known access level.
func ValidLevel(lv string) bool {
	return lv == LevelP || lv == LevelII || lv == LevelVOne
}

// FilterLevels returns levels restricted to the valid enumeration with
// duplicates removed, preserving first-seen order. The result may be empty.
func FilterLevels(levels []string) []string {
	seen := make(map[string]bool, len(levels))
	cleaned := make([]string, 0, len(levels))
	for _, lv := range levels {
		if !ValidLevel(lv) || seen[lv] {
			continue
		}
		seen[lv] = true
		cleaned = append(cleaned, lv)
	}
	return cleaned
}

// DefaultLevels returns the fallback access levels for a category when
// neither the caller nor the menu-level registry supplies any.
func DefaultLevels(foodType string) []string {
	switch strings.ToLower(strings.TrimSpace(foodType)) {
	case "snack menu", "snack travel", "club menu":
		return []string{LevelP, LevelII, LevelVOne}
	case "hotel menu":
		return []string{LevelII, LevelVOne}
	default:
		return []string{LevelVOne}
	}
}
