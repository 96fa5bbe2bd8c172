package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/repository/mocks"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

const (
	recipientProfileID = "6f1c2a9e-3b7d-4c58-9a21-0d4e8b7f5c13"
	ghostProfileID     = "b2d7e0f4-8a63-41c9-b5e2-7c19d3a60f88"
)

type messageFixture struct {
	svc      *MessageService
	messages *mocks.MessageRepository
	profiles *mocks.ProfileRepository
	projects *mocks.ProjectRepository
	sent     []events.MessageSentPayload
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messages: &mocks.MessageRepository{},
		profiles: &mocks.ProfileRepository{},
		projects: &mocks.ProjectRepository{},
	}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	dispatcher.Subscribe(events.EventMessageSent, func(_ context.Context, e events.Event) error {
		f.sent = append(f.sent, e.Payload.(events.MessageSentPayload))
		return nil
	})
	f.svc = NewMessageService(MessageDependencies{
		MessageRepo: f.messages,
		ProfileRepo: f.profiles,
		ProjectRepo: f.projects,
		Dispatcher:  dispatcher,
	})
	return f
}

func TestSendMessageValidation(t *testing.T) {
	f := newMessageFixture()

	_, err := f.svc.Send(context.Background(), clientCaller, SendMessageInput{RecipientID: recipientProfileID, Content: "   "})
	assert.Equal(t, 400, statusOf(t, err))

	_, err = f.svc.Send(context.Background(), clientCaller, SendMessageInput{RecipientID: clientCaller.SubjectID, Content: "hi"})
	assert.Equal(t, 400, statusOf(t, err))

	f.profiles.On("GetByID", mock.Anything, ghostProfileID).Return(nil, pgx.ErrNoRows)
	_, err = f.svc.Send(context.Background(), clientCaller, SendMessageInput{RecipientID: ghostProfileID, Content: "hi"})
	require.Error(t, err)
	assert.Equal(t, "Recipient not found", apperrors.ToDomainError(err).Message)

	f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMessageRejectsMalformedIDs(t *testing.T) {
	f := newMessageFixture()

	_, err := f.svc.Send(context.Background(), clientCaller, SendMessageInput{RecipientID: "bob", Content: "hi"})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "recipientId must be a valid id", de.Message)

	project := "kitchen"
	_, err = f.svc.Send(context.Background(), clientCaller, SendMessageInput{
		RecipientID: recipientProfileID, ProjectID: &project, Content: "hi",
	})
	require.Error(t, err)
	assert.Equal(t, "projectId must be a valid id", apperrors.ToDomainError(err).Message)

	with := "someone"
	_, err = f.svc.List(context.Background(), clientCaller, MessageListFilter{WithID: &with})
	assert.Equal(t, 400, statusOf(t, err))

	f.profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.messages.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSendMessagePublishesEvent(t *testing.T) {
	f := newMessageFixture()
	f.profiles.On("GetByID", mock.Anything, recipientProfileID).Return(&domain.Profile{ID: recipientProfileID}, nil)
	f.profiles.On("GetByID", mock.Anything, "client-1").Return(&domain.Profile{ID: "client-1", FullName: "Ada"}, nil)
	f.messages.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Message).ID = "m1" }).
		Return(nil)

	msg, err := f.svc.Send(context.Background(), clientCaller, SendMessageInput{RecipientID: recipientProfileID, Content: " Are you free Monday? "})
	require.NoError(t, err)

	assert.Equal(t, "client-1", msg.SenderID)
	assert.Equal(t, "Are you free Monday?", msg.Content)
	require.Len(t, f.sent, 1)
	assert.Equal(t, "Ada", f.sent[0].SenderName)
	assert.Equal(t, recipientProfileID, f.sent[0].RecipientID)
}

func TestMarkMessageReadRecipientOnly(t *testing.T) {
	f := newMessageFixture()
	f.messages.On("GetByID", mock.Anything, "m1").
		Return(&domain.Message{ID: "m1", SenderID: "client-1", RecipientID: "provider-1"}, nil)

	_, err := f.svc.MarkRead(context.Background(), clientCaller, "m1")
	assert.Equal(t, 403, statusOf(t, err))

	f.messages.On("MarkRead", mock.Anything, "m1").Return(nil)
	msg, err := f.svc.MarkRead(context.Background(), providerCaller, "m1")
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
}
