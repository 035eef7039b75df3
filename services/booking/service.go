package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brokerbook/database"
	"brokerbook/models"
	"brokerbook/services/scheduling"

	"go.uber.org/zap"
)

// Book reserves a slot for the acting client. The slot must be one the
// generator currently offers; a per-slot lock and the store's uniqueness
// check keep two concurrent requests from both succeeding.
func (s *DefaultBookingService) Book(ctx context.Context, actingUserID string, req models.BookingRequest) (*models.Appointment, error) {
	if actingUserID == "" {
		return nil, newError(CodeForbidden, "sign in to book an appointment")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.BrokerID == actingUserID {
		return nil, newError(CodeInvalidRequest, "brokers cannot book their own calendar")
	}

	start, _ := scheduling.ParseClock(req.StartTime)
	end := start + int(models.SlotLength/time.Minute)
	log := s.Logger.With(
		zap.String("brokerID", req.BrokerID),
		zap.String("clientID", actingUserID),
		zap.String("date", req.Date),
		zap.String("startTime", req.StartTime),
	)

	now := s.Slots.Now()
	days, err := daysUntil(now, req.Date)
	if err != nil {
		return nil, newError(CodeInvalidRequest, "invalid date %q", req.Date)
	}
	if days < 0 {
		return nil, newError(CodeSlotUnavailable, "%s is in the past", req.Date)
	}

	lockKey := fmt.Sprintf("%s:%s:%s", req.BrokerID, req.Date, req.StartTime)
	release, ok, err := s.Locker.Acquire(ctx, lockKey, s.LockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info("slot lock busy")
		return nil, newError(CodeSlotTaken, "this slot is being booked by someone else")
	}
	defer release()

	slots, err := s.Slots.Slots(ctx, req.BrokerID, days+1)
	if err != nil {
		return nil, fmt.Errorf("compute slots: %w", err)
	}
	if !offered(slots, req.Date, req.StartTime) {
		return nil, newError(CodeSlotUnavailable, "%s %s is not available", req.Date, req.StartTime)
	}

	ts := now.UTC()
	appt := &models.Appointment{
		BrokerID:    req.BrokerID,
		ClientID:    actingUserID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     scheduling.FormatClock(end),
		Status:      models.StatusPending,
		Title:       title(req),
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, newError(CodeSlotTaken, "%s %s was just booked", req.Date, req.StartTime)
		}
		return nil, err
	}
	log.Info("appointment booked", zap.String("appointmentID", appt.ID))

	if err := s.Reminders.Schedule(ctx, *appt); err != nil {
		log.Warn("failed to schedule reminder", zap.Error(err))
	}
	s.notify(ctx, appt.BrokerID, "New appointment request",
		fmt.Sprintf("%s booked %s at %s", appt.ClientName, appt.Date, appt.StartTime),
		appt, "appointment_booked")

	return appt, nil
}

func offered(slots []models.AvailableSlot, date, start string) bool {
	for _, s := range slots {
		if !s.IsEmpty && s.Date == date && s.StartTime == start {
			return true
		}
	}
	return false
}

// daysUntil counts calendar days from now's date to date, both in now's location.
func daysUntil(now time.Time, date string) (int, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(today).Hours() / 24), nil
}

func title(req models.BookingRequest) string {
	if t := strings.TrimSpace(req.Title); t != "" {
		return t
	}
	return "Consultation with " + strings.TrimSpace(req.ClientName)
}
