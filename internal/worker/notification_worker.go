package worker

import (
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/service"
)

// StartNotificationWorker subscribes the notification service to domain events.
// Handlers run inline on the publishing goroutine.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker registered")
	}
}
