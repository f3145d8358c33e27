package notification

import "context"

// NotificationService delivers reminders to the professional's device.
type NotificationService interface {
	SendPushNotification(ctx context.Context, title, body string, data map[string]string) error
}
