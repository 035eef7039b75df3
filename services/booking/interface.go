package booking

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "brokerbook/database/repository/appointment"
	"brokerbook/models"
	"brokerbook/services/notification"
	"brokerbook/services/scheduling"

	"go.uber.org/zap"
)

// BookingService creates appointments and moves them through their lifecycle.
// Every method takes the acting user's id explicitly.
type BookingService interface {
	Book(ctx context.Context, actingUserID string, req models.BookingRequest) (*models.Appointment, error)
	Confirm(ctx context.Context, actingUserID, appointmentID string) (*models.Appointment, error)
	Cancel(ctx context.Context, actingUserID, appointmentID string) (*models.Appointment, error)
	ListForBroker(ctx context.Context, actingUserID, fromDate, toDate string) ([]models.Appointment, error)
	ListForClient(ctx context.Context, actingUserID string) ([]models.Appointment, error)
}

// ReminderScheduler schedules and withdraws appointment reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, appt models.Appointment) error
	Cancel(ctx context.Context, appointmentID string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Slots        scheduling.SlotGenerator
	Locker       SlotLocker
	Reminders    ReminderScheduler
	Notifier     notification.NotificationService
	Logger       *zap.Logger

	LockTTL time.Duration
}

func NewDefaultBookingService(
	appointments appointmentRepo.AppointmentRepository,
	slots scheduling.SlotGenerator,
	locker SlotLocker,
	reminders ReminderScheduler,
	notifier notification.NotificationService,
	logger *zap.Logger,
) (*DefaultBookingService, error) {
	if appointments == nil || slots == nil || locker == nil {
		return nil, fmt.Errorf("booking service initialization error: one or more dependencies are nil")
	}
	if reminders == nil {
		reminders = NopReminders{}
	}
	if notifier == nil {
		notifier = notification.NopNotificationService{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Appointments: appointments,
		Slots:        slots,
		Locker:       locker,
		Reminders:    reminders,
		Notifier:     notifier,
		Logger:       logger,
		LockTTL:      10 * time.Second,
	}, nil
}

// NopReminders schedules nothing.
type NopReminders struct{}

func (NopReminders) Schedule(context.Context, models.Appointment) error { return nil }
func (NopReminders) Cancel(context.Context, string) error               { return nil }
