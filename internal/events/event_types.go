package events

import (
	"time"

	"github.com/serviceconnect/api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageSent          EventType = "message_sent"
	EventProjectCreated       EventType = "project_created"
	EventProjectStatusChanged EventType = "project_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string  `json:"message_id"`
	SenderID    string  `json:"sender_id"`
	SenderName  string  `json:"sender_name"`
	RecipientID string  `json:"recipient_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	Preview     string  `json:"preview"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	ProjectID  string  `json:"project_id"`
	ClientID   string  `json:"client_id"`
	CategoryID *string `json:"category_id,omitempty"`
	Title      string  `json:"title"`
}

// ProjectStatusChangedPayload payload.
type ProjectStatusChangedPayload struct {
	ProjectID string               `json:"project_id"`
	ClientID  string               `json:"client_id"`
	Title     string               `json:"title"`
	OldStatus domain.ProjectStatus `json:"old_status"`
	NewStatus domain.ProjectStatus `json:"new_status"`
}
