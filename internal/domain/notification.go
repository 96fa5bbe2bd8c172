package domain

import "time"

// NotificationType captures what triggered a notification.
type NotificationType string

const (
	NotificationMessage       NotificationType = "message"
	NotificationProjectStatus NotificationType = "project_status"
	NotificationProjectPosted NotificationType = "project_posted"
)

// Notification is an in-app alert addressed to one profile.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Body      string
	Link      *string
	IsRead    bool
	CreatedAt time.Time
}
