package domain

import "time"

// ProjectStatus enumerates lifecycle states for projects.
type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusCancelled
}

// CanTransitionTo reports whether a project in status s may move to next.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ProjectStatusOpen:
		return next == ProjectStatusInProgress || next == ProjectStatusCancelled
	case ProjectStatusInProgress:
		return next == ProjectStatusCompleted || next == ProjectStatusCancelled || next == ProjectStatusOpen
	}
	return false
}

// Project is a piece of work posted by a client.
type Project struct {
	ID          string
	ClientID    string
	CategoryID  *string
	Title       string
	Description string
	BudgetMin   *float64
	BudgetMax   *float64
	Location    *string
	Deadline    *time.Time
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
