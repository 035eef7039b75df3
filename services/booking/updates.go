package booking

import (
	"context"
	"errors"
	"fmt"

	"brokerbook/database"
	appointmentRepo "brokerbook/database/repository/appointment"
	"brokerbook/models"

	"go.uber.org/zap"
)

// Confirm lets the broker accept a pending appointment.
func (s *DefaultBookingService) Confirm(ctx context.Context, actingUserID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if actingUserID == "" || appt.BrokerID != actingUserID {
		return nil, newError(CodeForbidden, "only the broker can confirm this appointment")
	}

	updated, err := s.transition(ctx, appt, models.StatusConfirmed, actingUserID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated.ClientID, "Appointment confirmed",
		fmt.Sprintf("Your appointment on %s at %s is confirmed", updated.Date, updated.StartTime),
		updated, "appointment_confirmed")
	return updated, nil
}

// Cancel lets either party cancel. The slot becomes bookable again.
func (s *DefaultBookingService) Cancel(ctx context.Context, actingUserID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if actingUserID == "" || (actingUserID != appt.BrokerID && actingUserID != appt.ClientID) {
		return nil, newError(CodeForbidden, "you are not a party to this appointment")
	}

	updated, err := s.transition(ctx, appt, models.StatusCancelled, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.Reminders.Cancel(ctx, updated.ID); err != nil {
		s.Logger.Warn("failed to withdraw reminder", zap.String("appointmentID", updated.ID), zap.Error(err))
	}
	other := updated.ClientID
	if actingUserID == updated.ClientID {
		other = updated.BrokerID
	}
	s.notify(ctx, other, "Appointment cancelled",
		fmt.Sprintf("The appointment on %s at %s was cancelled", updated.Date, updated.StartTime),
		updated, "appointment_cancelled")
	return updated, nil
}

func (s *DefaultBookingService) transition(ctx context.Context, appt *models.Appointment, to models.AppointmentStatus, actor string) (*models.Appointment, error) {
	if !canTransition(appt.Status, to) {
		return nil, newError(CodeInvalidTransition, "cannot move a %s appointment to %s", appt.Status, to)
	}

	updated, err := s.Appointments.UpdateStatus(ctx, appt.ID, appointmentRepo.StatusChange{
		From: sourcesOf(to),
		To:   to,
		By:   actor,
		At:   s.Slots.Now().UTC(),
	})
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, newError(CodeNotFound, "appointment %s not found", appt.ID)
	case errors.Is(err, database.ErrConflict):
		return nil, newError(CodeInvalidTransition, "appointment %s changed, reload and retry", appt.ID)
	case err != nil:
		return nil, err
	}

	s.Logger.Info("appointment status changed",
		zap.String("appointmentID", appt.ID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(to)),
		zap.String("by", actor),
	)
	return updated, nil
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(CodeNotFound, "appointment %s not found", id)
	}
	return appt, err
}
