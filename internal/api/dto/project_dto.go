package dto

import (
	"time"

	"github.com/serviceconnect/api/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	CategoryID  *string    `json:"categoryId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	BudgetMin   *float64   `json:"budgetMin"`
	BudgetMax   *float64   `json:"budgetMax"`
	Location    *string    `json:"location"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateProjectRequest is a partial update; omitted fields are unchanged.
type UpdateProjectRequest struct {
	CategoryID  *string               `json:"categoryId"`
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	BudgetMin   *float64              `json:"budgetMin"`
	BudgetMax   *float64              `json:"budgetMax"`
	Location    *string               `json:"location"`
	Deadline    *time.Time            `json:"deadline"`
	Status      *domain.ProjectStatus `json:"status"`
}

// ProjectResponse describes a project.
type ProjectResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"clientId"`
	CategoryID  *string              `json:"categoryId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	BudgetMin   *float64             `json:"budgetMin"`
	BudgetMax   *float64             `json:"budgetMax"`
	Location    *string              `json:"location"`
	Deadline    *time.Time           `json:"deadline"`
	Status      domain.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}
