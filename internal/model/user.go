package model

// User represents an authentication user.
// JSON field names match the persisted users.json layout.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}

// Roles.
const (
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
)

// ValidRole reports whether role is a known role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleKitchen
}
