package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/repository"
	"github.com/serviceconnect/api/internal/repository/mocks"
)

func TestMarkNotificationReadTwice(t *testing.T) {
	repo := &mocks.NotificationRepository{}
	svc := NewNotificationService(NotificationDependencies{NotificationRepo: repo})
	caller := auth.Identity{SubjectID: "u1", Role: domain.RoleClient}

	repo.On("GetByID", mock.Anything, "n1").Return(&domain.Notification{ID: "n1", UserID: "u1"}, nil).Once()
	repo.On("MarkRead", mock.Anything, "n1").Return(nil).Once()
	repo.On("GetByID", mock.Anything, "n1").Return(&domain.Notification{ID: "n1", UserID: "u1", IsRead: true}, nil).Once()

	first, err := svc.MarkRead(context.Background(), caller, "n1")
	require.NoError(t, err)
	second, err := svc.MarkRead(context.Background(), caller, "n1")
	require.NoError(t, err)

	assert.True(t, first.IsRead)
	assert.Equal(t, first.IsRead, second.IsRead)
	repo.AssertNumberOfCalls(t, "MarkRead", 1)
}

func TestNotificationOfAnotherUserIsNotFound(t *testing.T) {
	repo := &mocks.NotificationRepository{}
	svc := NewNotificationService(NotificationDependencies{NotificationRepo: repo})
	repo.On("GetByID", mock.Anything, "n1").Return(&domain.Notification{ID: "n1", UserID: "someone-else"}, nil)

	_, err := svc.MarkRead(context.Background(), auth.Identity{SubjectID: "u1"}, "n1")
	assert.Equal(t, 404, statusOf(t, err))

	err = svc.Delete(context.Background(), auth.Identity{SubjectID: "u1"}, "n1")
	assert.Equal(t, 404, statusOf(t, err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestNotificationHandlersPersistFromEvents(t *testing.T) {
	repo := &mocks.NotificationRepository{}
	providers := &mocks.ProviderRepository{}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewNotificationService(NotificationDependencies{
		NotificationRepo: repo,
		ProviderRepo:     providers,
		Dispatcher:       dispatcher,
	})
	svc.RegisterHandlers()

	var created []*domain.Notification
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*domain.Notification)) }).
		Return(nil)

	dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventMessageSent,
		Payload: events.MessageSentPayload{
			MessageID: "m1", SenderID: "u1", SenderName: "Ada", RecipientID: "u2", Preview: "hello",
		},
	})
	dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventProjectStatusChanged,
		Payload: events.ProjectStatusChangedPayload{
			ProjectID: "p1", ClientID: "u1", Title: "Paint", OldStatus: domain.ProjectStatusOpen, NewStatus: domain.ProjectStatusInProgress,
		},
	})

	category := "cat-1"
	providers.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProviderFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == category
	})).Return([]domain.Provider{{ID: "pr1", ProfileID: "u3"}}, nil)
	dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventProjectCreated,
		Payload: events.ProjectCreatedPayload{ProjectID: "p2", ClientID: "u1", CategoryID: &category, Title: "Tiles"},
	})

	require.Len(t, created, 3)
	assert.Equal(t, "u2", created[0].UserID)
	assert.Equal(t, domain.NotificationMessage, created[0].Type)
	assert.Equal(t, "New message from Ada", created[0].Title)
	assert.Equal(t, "u1", created[1].UserID)
	assert.Equal(t, "Paint is now in progress", created[1].Body)
	assert.Equal(t, "u3", created[2].UserID)
	assert.Equal(t, domain.NotificationProjectPosted, created[2].Type)
}
