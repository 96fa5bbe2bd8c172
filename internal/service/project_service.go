package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// MsgProjectRequiredFields is returned when a project lacks a title or description.
const MsgProjectRequiredFields = "title and description are required"

// ProjectService coordinates project workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo  repository.ProjectRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projects:   deps.ProjectRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ProjectCreateInput describes a new project.
type ProjectCreateInput struct {
	CategoryID  *string
	Title       string
	Description string
	BudgetMin   *float64
	BudgetMax   *float64
	Location    *string
	Deadline    *time.Time
}

// ProjectUpdateInput is a partial update; nil fields are left unchanged.
type ProjectUpdateInput struct {
	CategoryID  *string
	Title       *string
	Description *string
	BudgetMin   *float64
	BudgetMax   *float64
	Location    *string
	Deadline    *time.Time
	Status      *domain.ProjectStatus
}

// ProjectListFilter describes public listing filters.
type ProjectListFilter struct {
	ClientID   *string
	CategoryID *string
	Statuses   []domain.ProjectStatus
	Search     string
	Limit      int
	Offset     int
}

// Create posts a project owned by the calling client.
func (s *ProjectService) Create(ctx context.Context, caller auth.Identity, in ProjectCreateInput) (*domain.Project, error) {
	if caller.Role != domain.RoleClient {
		return nil, apperrors.NewForbidden("Only clients can post projects")
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError(MsgProjectRequiredFields)
	}
	if err := validateBudget(in.BudgetMin, in.BudgetMax); err != nil {
		return nil, err
	}
	categoryID, err := s.ensureCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ClientID:    caller.SubjectID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		BudgetMin:   in.BudgetMin,
		BudgetMax:   in.BudgetMax,
		Location:    trimmedOrNil(in.Location),
		Deadline:    in.Deadline,
		Status:      domain.ProjectStatusOpen,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventProjectCreated,
		ActorID: caller.SubjectID,
		Payload: events.ProjectCreatedPayload{
			ProjectID:  project.ID,
			ClientID:   project.ClientID,
			CategoryID: project.CategoryID,
			Title:      project.Title,
		},
	})
	return project, nil
}

// Get returns a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Project")
		}
		return nil, err
	}
	return project, nil
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, filter ProjectListFilter) ([]domain.Project, error) {
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, apperrors.NewValidationError("unknown project status: " + string(st))
		}
	}
	clientID, err := optionalID(filter.ClientID, "clientId")
	if err != nil {
		return nil, err
	}
	categoryID, err := optionalID(filter.CategoryID, "category")
	if err != nil {
		return nil, err
	}
	return s.projects.List(ctx, repository.ProjectFilter{
		ClientID:   clientID,
		CategoryID: categoryID,
		Statuses:   filter.Statuses,
		Search:     strings.TrimSpace(filter.Search),
		Page:       repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Update applies a partial update. Only the owning client may update.
func (s *ProjectService) Update(ctx context.Context, caller auth.Identity, id string, in ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.ownedProject(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	oldStatus := project.Status

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.NewValidationError(MsgProjectRequiredFields)
		}
		project.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, apperrors.NewValidationError(MsgProjectRequiredFields)
		}
		project.Description = description
	}
	if in.CategoryID != nil {
		categoryID, err := s.ensureCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		project.CategoryID = categoryID
	}
	if in.BudgetMin != nil {
		project.BudgetMin = in.BudgetMin
	}
	if in.BudgetMax != nil {
		project.BudgetMax = in.BudgetMax
	}
	if err := validateBudget(project.BudgetMin, project.BudgetMax); err != nil {
		return nil, err
	}
	if in.Location != nil {
		project.Location = trimmedOrNil(in.Location)
	}
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}
	if in.Status != nil {
		next := *in.Status
		if !next.Valid() {
			return nil, apperrors.NewValidationError("unknown project status: " + string(next))
		}
		if !oldStatus.CanTransitionTo(next) {
			return nil, apperrors.NewValidationError(
				"cannot change project status from " + string(oldStatus) + " to " + string(next))
		}
		project.Status = next
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	if project.Status != oldStatus {
		s.publishStatusChange(ctx, caller, project, oldStatus)
	}
	return project, nil
}

// Delete cancels the project. Cancelling twice is a no-op.
func (s *ProjectService) Delete(ctx context.Context, caller auth.Identity, id string) (*domain.Project, error) {
	project, err := s.ownedProject(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	switch project.Status {
	case domain.ProjectStatusCancelled:
		return project, nil
	case domain.ProjectStatusCompleted:
		return nil, apperrors.NewConflict("Completed projects cannot be cancelled")
	}
	oldStatus := project.Status
	project.Status = domain.ProjectStatusCancelled
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, caller, project, oldStatus)
	return project, nil
}

func (s *ProjectService) ownedProject(ctx context.Context, caller auth.Identity, id string) (*domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.ClientID != caller.SubjectID {
		return nil, apperrors.NewForbidden("Only the project owner can modify this project")
	}
	return project, nil
}

// ensureCategory returns the trimmed category id once it is known to exist.
func (s *ProjectService) ensureCategory(ctx context.Context, raw *string) (*string, error) {
	categoryID, err := optionalID(raw, "categoryId")
	if err != nil || categoryID == nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidationError("Unknown category")
		}
		return nil, err
	}
	return categoryID, nil
}

func (s *ProjectService) publishStatusChange(ctx context.Context, caller auth.Identity, project *domain.Project, oldStatus domain.ProjectStatus) {
	s.logger.Info("project status changed",
		zap.String("project_id", project.ID),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(project.Status)))
	s.publish(ctx, events.Event{
		Type:    events.EventProjectStatusChanged,
		ActorID: caller.SubjectID,
		Payload: events.ProjectStatusChangedPayload{
			ProjectID: project.ID,
			ClientID:  project.ClientID,
			Title:     project.Title,
			OldStatus: oldStatus,
			NewStatus: project.Status,
		},
	})
}

func (s *ProjectService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, event)
}

func validateBudget(lo, hi *float64) error {
	if lo != nil && *lo < 0 || hi != nil && *hi < 0 {
		return apperrors.NewValidationError("budget must not be negative")
	}
	if lo != nil && hi != nil && *lo > *hi {
		return apperrors.NewValidationError("budgetMin must not exceed budgetMax")
	}
	return nil
}
