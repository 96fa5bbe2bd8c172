package service

import (
	"context"
	"strings"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

const (
	maxMessageLength = 5000
	previewLength    = 80
)

// MessageService handles direct messages between profiles.
type MessageService struct {
	messages   repository.MessageRepository
	profiles   repository.ProfileRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// MessageDependencies bundles repositories for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	ProfileRepo repository.ProfileRepository
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	return &MessageService{
		messages:   deps.MessageRepo,
		profiles:   deps.ProfileRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
	}
}

// SendMessageInput describes an outgoing message.
type SendMessageInput struct {
	RecipientID string
	ProjectID   *string
	Content     string
}

// MessageListFilter narrows the caller's inbox.
type MessageListFilter struct {
	WithID    *string
	ProjectID *string
	Limit     int
	Offset    int
}

// Send stores a message from the caller and notifies the recipient.
func (s *MessageService) Send(ctx context.Context, caller auth.Identity, in SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	recipientID := strings.TrimSpace(in.RecipientID)
	if content == "" || recipientID == "" {
		return nil, apperrors.NewValidationError("recipientId and content are required")
	}
	if len([]rune(content)) > maxMessageLength {
		return nil, apperrors.NewValidationError("content is too long")
	}
	if recipientID == caller.SubjectID {
		return nil, apperrors.NewValidationError("You cannot message yourself")
	}
	if _, err := optionalID(&recipientID, "recipientId"); err != nil {
		return nil, err
	}
	projectID, err := optionalID(in.ProjectID, "projectId")
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.GetByID(ctx, recipientID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Recipient")
		}
		return nil, err
	}
	if projectID != nil {
		if _, err := s.projects.GetByID(ctx, *projectID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.NewNotFound("Project")
			}
			return nil, err
		}
	}

	msg := &domain.Message{
		SenderID:    caller.SubjectID,
		RecipientID: recipientID,
		ProjectID:   projectID,
		Content:     content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventMessageSent,
			ActorID: caller.SubjectID,
			Payload: events.MessageSentPayload{
				MessageID:   msg.ID,
				SenderID:    msg.SenderID,
				SenderName:  s.senderName(ctx, caller.SubjectID),
				RecipientID: msg.RecipientID,
				ProjectID:   msg.ProjectID,
				Preview:     preview(msg.Content, previewLength),
			},
		})
	}
	return msg, nil
}

// List returns messages the caller sent or received.
func (s *MessageService) List(ctx context.Context, caller auth.Identity, filter MessageListFilter) ([]domain.Message, error) {
	withID, err := optionalID(filter.WithID, "with")
	if err != nil {
		return nil, err
	}
	projectID, err := optionalID(filter.ProjectID, "projectId")
	if err != nil {
		return nil, err
	}
	return s.messages.List(ctx, repository.MessageFilter{
		ParticipantID: caller.SubjectID,
		WithID:        withID,
		ProjectID:     projectID,
		Page:          repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// MarkRead marks a received message as read. Repeating the call is a no-op.
func (s *MessageService) MarkRead(ctx context.Context, caller auth.Identity, id string) (*domain.Message, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Message")
		}
		return nil, err
	}
	if msg.RecipientID != caller.SubjectID {
		return nil, apperrors.NewForbidden("Only the recipient can mark a message as read")
	}
	if msg.IsRead {
		return msg, nil
	}
	if err := s.messages.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}

func (s *MessageService) senderName(ctx context.Context, id string) string {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return "Someone"
	}
	return profile.FullName
}
