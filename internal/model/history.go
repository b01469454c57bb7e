package model

import "time"

// Entry is one status-transition record in the audit trail. It is a
// denormalized snapshot, never the source of truth for current state.
// The ID is unix milliseconds plus a random fraction, matching the
// persisted status-history.json layout.
type Entry struct {
	ID          float64   `json:"id"`
	At          time.Time `json:"at"`
	By          string    `json:"by"`
	Role        string    `json:"role"`
	ImageName   string    `json:"imageName"`
	ImageURL    string    `json:"imageUrl"`
	Type        string    `json:"type"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Count       int       `json:"count"`
	AffectedIDs []int     `json:"affectedIds"`
}
