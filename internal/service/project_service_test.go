package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/repository/mocks"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

var (
	clientCaller   = auth.Identity{SubjectID: "client-1", Role: domain.RoleClient}
	otherClient    = auth.Identity{SubjectID: "client-2", Role: domain.RoleClient}
	providerCaller = auth.Identity{SubjectID: "provider-1", Role: domain.RoleProvider}
)

type projectFixture struct {
	svc        *ProjectService
	projects   *mocks.ProjectRepository
	categories *mocks.CategoryRepository
	published  []events.Event
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projects:   &mocks.ProjectRepository{},
		categories: &mocks.CategoryRepository{},
	}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	record := func(_ context.Context, e events.Event) error {
		f.published = append(f.published, e)
		return nil
	}
	dispatcher.Subscribe(events.EventProjectCreated, record)
	dispatcher.Subscribe(events.EventProjectStatusChanged, record)
	f.svc = NewProjectService(ProjectDependencies{
		ProjectRepo:  f.projects,
		CategoryRepo: f.categories,
		Dispatcher:   dispatcher,
	})
	return f
}

func TestCreateProjectRequiresTitleAndDescription(t *testing.T) {
	f := newProjectFixture()

	_, err := f.svc.Create(context.Background(), clientCaller, ProjectCreateInput{Description: "Fix the sink"})

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, MsgProjectRequiredFields, de.Message)
	f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProjectClientsOnly(t *testing.T) {
	f := newProjectFixture()

	_, err := f.svc.Create(context.Background(), providerCaller, ProjectCreateInput{Title: "t", Description: "d"})

	assert.Equal(t, 403, statusOf(t, err))
}

func TestCreateProjectBudgetAndCategory(t *testing.T) {
	f := newProjectFixture()
	lo, hi := 500.0, 100.0

	_, err := f.svc.Create(context.Background(), clientCaller, ProjectCreateInput{
		Title: "t", Description: "d", BudgetMin: &lo, BudgetMax: &hi,
	})
	assert.Equal(t, 400, statusOf(t, err))

	missing := "0b8e5d1a-4f2c-4e7b-9d63-a15c2f8e7b40"
	f.categories.On("GetByID", mock.Anything, missing).Return(nil, pgx.ErrNoRows)
	_, err = f.svc.Create(context.Background(), clientCaller, ProjectCreateInput{
		Title: "t", Description: "d", CategoryID: &missing,
	})
	assert.Equal(t, 400, statusOf(t, err))

	slug := "plumbing"
	_, err = f.svc.Create(context.Background(), clientCaller, ProjectCreateInput{
		Title: "t", Description: "d", CategoryID: &slug,
	})
	require.Error(t, err)
	assert.Equal(t, "categoryId must be a valid id", apperrors.ToDomainError(err).Message)
	f.categories.AssertNumberOfCalls(t, "GetByID", 1)
	f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListProjectsRejectsMalformedFilterIDs(t *testing.T) {
	f := newProjectFixture()
	slug := "plumbing"
	client := "client-1"

	_, err := f.svc.List(context.Background(), ProjectListFilter{CategoryID: &slug})
	assert.Equal(t, 400, statusOf(t, err))

	_, err = f.svc.List(context.Background(), ProjectListFilter{ClientID: &client})
	require.Error(t, err)
	assert.Equal(t, "clientId must be a valid id", apperrors.ToDomainError(err).Message)

	f.projects.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCreateProjectPublishesEvent(t *testing.T) {
	f := newProjectFixture()
	f.projects.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Project).ID = "p1" }).
		Return(nil)

	project, err := f.svc.Create(context.Background(), clientCaller, ProjectCreateInput{
		Title: " Paint fence ", Description: "Two coats",
	})
	require.NoError(t, err)

	assert.Equal(t, "Paint fence", project.Title)
	assert.Equal(t, domain.ProjectStatusOpen, project.Status)
	assert.Equal(t, "client-1", project.ClientID)
	require.Len(t, f.published, 1)
	assert.Equal(t, events.EventProjectCreated, f.published[0].Type)
}

func TestGetProjectNotFound(t *testing.T) {
	f := newProjectFixture()
	f.projects.On("GetByID", mock.Anything, "nope").Return(nil, pgx.ErrNoRows)

	_, err := f.svc.Get(context.Background(), "nope")

	require.Error(t, err)
	assert.Equal(t, "Project not found", apperrors.ToDomainError(err).Message)
}

func TestUpdateProjectOwnerAndTransitions(t *testing.T) {
	f := newProjectFixture()
	f.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{
		ID: "p1", ClientID: "client-1", Title: "t", Description: "d", Status: domain.ProjectStatusOpen,
	}, nil)

	completed := domain.ProjectStatusCompleted
	_, err := f.svc.Update(context.Background(), otherClient, "p1", ProjectUpdateInput{Status: &completed})
	assert.Equal(t, 403, statusOf(t, err))

	_, err = f.svc.Update(context.Background(), clientCaller, "p1", ProjectUpdateInput{Status: &completed})
	assert.Equal(t, 400, statusOf(t, err))
	f.projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	inProgress := domain.ProjectStatusInProgress
	f.projects.On("Update", mock.Anything, mock.Anything).Return(nil)
	project, err := f.svc.Update(context.Background(), clientCaller, "p1", ProjectUpdateInput{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, project.Status)
	require.Len(t, f.published, 1)
	payload := f.published[0].Payload.(events.ProjectStatusChangedPayload)
	assert.Equal(t, domain.ProjectStatusOpen, payload.OldStatus)
}

func TestDeleteProjectSoftCancels(t *testing.T) {
	f := newProjectFixture()
	f.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{
		ID: "p1", ClientID: "client-1", Status: domain.ProjectStatusOpen,
	}, nil).Once()
	f.projects.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.Status == domain.ProjectStatusCancelled
	})).Return(nil).Once()

	project, err := f.svc.Delete(context.Background(), clientCaller, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusCancelled, project.Status)

	f.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{
		ID: "p1", ClientID: "client-1", Status: domain.ProjectStatusCancelled,
	}, nil).Once()
	_, err = f.svc.Delete(context.Background(), clientCaller, "p1")
	require.NoError(t, err)
	f.projects.AssertNumberOfCalls(t, "Update", 1)
}

func TestDeleteCompletedProjectConflicts(t *testing.T) {
	f := newProjectFixture()
	f.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{
		ID: "p1", ClientID: "client-1", Status: domain.ProjectStatusCompleted,
	}, nil)

	_, err := f.svc.Delete(context.Background(), clientCaller, "p1")

	assert.Equal(t, 409, statusOf(t, err))
}
