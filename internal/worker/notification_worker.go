package worker

import "github.com/epwerk/field-service/internal/service"

// StartNotificationWorker subscribes the notification service to the event
// stream. Passing nil disables outbound notifications.
func StartNotificationWorker(notifications *service.NotificationService) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
}
