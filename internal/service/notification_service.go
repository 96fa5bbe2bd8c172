package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/config"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/events"
	"github.com/serviceconnect/api/internal/observability"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// maxCategoryFanout caps how many providers hear about a new project.
const maxCategoryFanout = 100

// NotificationService turns domain events into in-app notifications and
// serves the caller's notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	providers     repository.ProviderRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	metrics       *observability.Metrics
	cfg           config.NotificationConfig
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	ProviderRepo     repository.ProviderRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	Metrics          *observability.Metrics
	Config           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: deps.NotificationRepo,
		providers:     deps.ProviderRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		metrics:       deps.Metrics,
		cfg:           deps.Config,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleProjectCreated)
	n.dispatcher.Subscribe(events.EventProjectStatusChanged, n.handleProjectStatusChanged)
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	link := "/messages?with=" + payload.SenderID
	return n.notify(ctx, &domain.Notification{
		UserID: payload.RecipientID,
		Type:   domain.NotificationMessage,
		Title:  "New message from " + payload.SenderName,
		Body:   payload.Preview,
		Link:   &link,
	})
}

func (n *NotificationService) handleProjectCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProjectCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	if payload.CategoryID == nil || n.providers == nil {
		return nil
	}
	providers, err := n.providers.List(ctx, repository.ProviderFilter{
		CategoryID: payload.CategoryID,
		Page:       repository.Page{Limit: maxCategoryFanout},
	})
	if err != nil {
		return err
	}
	link := "/projects/" + payload.ProjectID
	for _, p := range providers {
		if p.ProfileID == payload.ClientID {
			continue
		}
		if err := n.notify(ctx, &domain.Notification{
			UserID: p.ProfileID,
			Type:   domain.NotificationProjectPosted,
			Title:  "New project in your category",
			Body:   payload.Title,
			Link:   &link,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotificationService) handleProjectStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProjectStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	link := "/projects/" + payload.ProjectID
	return n.notify(ctx, &domain.Notification{
		UserID: payload.ClientID,
		Type:   domain.NotificationProjectStatus,
		Title:  "Project status updated",
		Body:   fmt.Sprintf("%s is now %s", payload.Title, humanStatus(payload.NewStatus)),
		Link:   &link,
	})
}

func (n *NotificationService) notify(ctx context.Context, notification *domain.Notification) error {
	if err := n.notifications.Create(ctx, notification); err != nil {
		return err
	}
	n.metrics.RecordNotification()
	n.sendEmailNotificationStub(notification)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(notification *domain.Notification) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", notification.UserID),
		zap.String("type", string(notification.Type)))
}

// List returns the caller's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, caller auth.Identity, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	return n.notifications.List(ctx, repository.NotificationFilter{
		UserID:     caller.SubjectID,
		UnreadOnly: unreadOnly,
		Page:       repository.Page{Limit: limit, Offset: offset},
	})
}

// MarkRead marks one notification read. Marking an already read
// notification returns it unchanged.
func (n *NotificationService) MarkRead(ctx context.Context, caller auth.Identity, id string) (*domain.Notification, error) {
	notification, err := n.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}
	if err := n.notifications.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	notification.IsRead = true
	return notification, nil
}

// MarkAllRead marks every unread notification of the caller and returns the count.
func (n *NotificationService) MarkAllRead(ctx context.Context, caller auth.Identity) (int64, error) {
	return n.notifications.MarkAllRead(ctx, caller.SubjectID)
}

// Delete removes one of the caller's notifications.
func (n *NotificationService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	if _, err := n.owned(ctx, caller, id); err != nil {
		return err
	}
	return n.notifications.Delete(ctx, id)
}

func (n *NotificationService) owned(ctx context.Context, caller auth.Identity, id string) (*domain.Notification, error) {
	notification, err := n.notifications.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Notification")
		}
		return nil, err
	}
	if notification.UserID != caller.SubjectID {
		// Other users' notifications are indistinguishable from missing ones.
		return nil, apperrors.NewNotFound("Notification")
	}
	return notification, nil
}

func humanStatus(s domain.ProjectStatus) string {
	return strings.ReplaceAll(string(s), "_", " ")
}
