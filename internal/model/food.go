package model

import "strings"

// Food represents one dish image within one menu category.
// JSON field names match the persisted foods.json layout.
type Food struct {
	ID          int      `json:"id"`
	ImageURL    string   `json:"imageUrl"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	Hash        string   `json:"hash"`
	LevelAccess []string `json:"levelAccess"`
	Order       int      `json:"order"`
}

// Food statuses.
const (
	StatusAvailable = "Available"
	StatusSoldOut   = "Sold Out"
)

// ValidStatus reports whether s is a known food status.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusSoldOut
}

// ImageName derives the food's image identity: the lowercased final path
// segment of its image URL. Foods sharing an image name are treated as
// the same physical dish across categories for status purposes.
func (f *Food) ImageName() string {
	return ImageNameFromURL(f.ImageURL)
}

// ImageNameFromURL extracts the lowercased final path segment of url.
func ImageNameFromURL(url string) string {
	if url == "" {
		return ""
	}
	idx := strings.LastIndexByte(url, '/')
	return strings.ToLower(url[idx+1:])
}
