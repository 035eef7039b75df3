package booking

import (
	"context"
	"time"

	"brokerbook/models"
)

const defaultListWindowDays = 30

// ListForBroker returns the acting broker's appointments in [fromDate, toDate],
// defaulting to today through the next 30 days.
func (s *DefaultBookingService) ListForBroker(ctx context.Context, actingUserID, fromDate, toDate string) ([]models.Appointment, error) {
	if actingUserID == "" {
		return nil, newError(CodeForbidden, "sign in to list appointments")
	}

	now := s.Slots.Now()
	if fromDate == "" {
		fromDate = now.Format(models.DateLayout)
	}
	if toDate == "" {
		from, err := time.Parse(models.DateLayout, fromDate)
		if err != nil {
			return nil, newError(CodeInvalidRequest, "from must be YYYY-MM-DD")
		}
		toDate = from.AddDate(0, 0, defaultListWindowDays).Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, fromDate); err != nil {
		return nil, newError(CodeInvalidRequest, "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse(models.DateLayout, toDate); err != nil {
		return nil, newError(CodeInvalidRequest, "to must be YYYY-MM-DD")
	}
	if toDate < fromDate {
		return nil, newError(CodeInvalidRequest, "to must not be before from")
	}

	out, err := s.Appointments.ListByBrokerInRange(ctx, actingUserID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Appointment{}
	}
	return out, nil
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, actingUserID string) ([]models.Appointment, error) {
	if actingUserID == "" {
		return nil, newError(CodeForbidden, "sign in to list appointments")
	}
	out, err := s.Appointments.ListByClient(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Appointment{}
	}
	return out, nil
}
