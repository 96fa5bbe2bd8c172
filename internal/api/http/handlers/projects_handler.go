package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/service"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// ProjectsHandler manages project endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	filter := service.ProjectListFilter{
		ClientID:   optionalQuery(c, "clientId"),
		CategoryID: optionalQuery(c, "category"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}
	for _, s := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.ProjectStatus(s))
	}
	projects, err := h.projects.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(projects, projectResponse))
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "Project")
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, projectResponse(project))
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError(service.MsgProjectRequiredFields)
	}
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Create(c.UserContext(), caller, service.ProjectCreateInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Location:    req.Location,
		Deadline:    req.Deadline,
	})
	if err != nil {
		return err
	}
	return response.Created(c, projectResponse(project))
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Project")
	if err != nil {
		return err
	}
	var req dto.UpdateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Update(c.UserContext(), caller, id, service.ProjectUpdateInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Location:    req.Location,
		Deadline:    req.Deadline,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return response.Success(c, projectResponse(project))
}

// Delete handles DELETE /api/projects/:id by cancelling the project.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Project")
	if err != nil {
		return err
	}
	project, err := h.projects.Delete(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return response.Success(c, projectResponse(project))
}
