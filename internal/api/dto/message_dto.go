package dto

import (
	"time"

	"github.com/serviceconnect/api/internal/domain"
)

// SendMessageRequest payload for POST /api/messages.
type SendMessageRequest struct {
	RecipientID string  `json:"recipientId"`
	ProjectID   *string `json:"projectId"`
	Content     string  `json:"content"`
}

// MessageResponse describes a direct message.
type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	ProjectID   *string   `json:"projectId"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationResponse describes an in-app notification.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Link      *string                 `json:"link"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
