package notification

import (
	"context"
	"errors"
	"fmt"

	"medsync/storage"
	"medsync/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService sends pushes through Firebase Cloud Messaging to
// the device token registered in the key-value store.
type FCMNotificationService struct {
	Store storage.KVStore
}

func NewFCMNotificationService(store storage.KVStore) *FCMNotificationService {
	return &FCMNotificationService{Store: store}
}

func (s *FCMNotificationService) SendPushNotification(ctx context.Context, title, body string, data map[string]string) error {
	token, err := s.Store.Get(ctx, utils.StoreKeyFCMToken)
	if errors.Is(err, storage.ErrNotFound) || token == "" {
		return fmt.Errorf("SendPushNotification: no device token registered")
	}
	if err != nil {
		return fmt.Errorf("SendPushNotification: %w", err)
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}

	utils.GetLogger().Debug("Sent push notification", zap.String("response", response), zap.String("title", title))
	return nil
}
