package domain

import "time"

// Message is a direct message between two profiles, optionally about a project.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	ProjectID   *string
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}
