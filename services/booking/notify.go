package booking

import (
	"context"

	"brokerbook/models"

	"go.uber.org/zap"
)

// notify is best effort: a failed push never fails the booking operation.
func (s *DefaultBookingService) notify(ctx context.Context, userID, title, body string, appt *models.Appointment, kind string) {
	data := map[string]string{
		"type":          kind,
		"appointmentId": appt.ID,
		"brokerId":      appt.BrokerID,
		"date":          appt.Date,
		"startTime":     appt.StartTime,
	}
	if err := s.Notifier.SendPushNotification(ctx, userID, title, body, data); err != nil {
		s.Logger.Warn("push notification failed",
			zap.String("userID", userID),
			zap.String("type", kind),
			zap.Error(err),
		)
	}
}
