package worker

import (
	"github.com/spec-kit/helpdesk/internal/service"
)

// StartNotificationWorker registers the event fan-out and audit handlers. Either may be nil.
func StartNotificationWorker(notifications *service.NotificationService, history *service.HistoryRecorder) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if history != nil {
		history.RegisterHandlers()
	}
}
