package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends push notifications to a user of either role.
type NotificationService interface {
	SendPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Sender is the subset of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService publishes to the per-user FCM topic
// "user_<uid>", which the mobile and web apps subscribe to at sign-in.
type DefaultNotificationService struct {
	FCM    Sender
	Logger *zap.Logger
}

func NewDefaultNotificationService(fcm Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if fcm == nil {
		return nil, fmt.Errorf("notification service initialization error: fcm client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{FCM: fcm, Logger: logger}, nil
}

// UserTopic is the FCM topic a user's devices listen on.
func UserTopic(userID string) string {
	return "user_" + userID
}

func (s *DefaultNotificationService) SendPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if userID == "" {
		return fmt.Errorf("SendPushNotification: empty user id")
	}

	msg := &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "appointments",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.FCM.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	s.Logger.Debug("push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}

// NopNotificationService drops every notification. Used when NOTIFICATIONS_ENABLED is false.
type NopNotificationService struct{}

func (NopNotificationService) SendPushNotification(context.Context, string, string, string, map[string]string) error {
	return nil
}
