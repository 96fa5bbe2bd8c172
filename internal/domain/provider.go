package domain

import "time"

// Provider holds the business details of a provider profile.
type Provider struct {
	ID           string
	ProfileID    string
	BusinessName string
	Description  string
	CategoryID   *string
	HourlyRate   *float64
	Services     []string
	Rating       float64
	ReviewCount  int
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Populated by joined reads.
	Profile *Profile
}
