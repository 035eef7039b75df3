package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brokerbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeAppointmentReminder = "appointment:reminder"
	reminderQueue           = "default"
)

// ReminderTaskID is the asynq task id of an appointment's reminder.
func ReminderTaskID(appointmentID string) string {
	return "reminder:" + appointmentID
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.AppointmentID)),
		asynq.Queue(reminderQueue),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// FireTime is when the reminder for appt should go out: lead before its
// start, read as wall-clock time in loc.
func FireTime(appt models.Appointment, loc *time.Location, lead time.Duration) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(models.DateLayout+" "+models.ClockLayout, appt.Date+" "+appt.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %s start: %w", appt.ID, err)
	}
	return start.Add(-lead), nil
}

// AsynqReminders schedules client reminders on an asynq queue.
type AsynqReminders struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	Lead      time.Duration
	Location  *time.Location
	Now       func() time.Time
	Logger    *zap.Logger
}

func (r *AsynqReminders) Schedule(ctx context.Context, appt models.Appointment) error {
	fireAt, err := FireTime(appt, r.Location, r.Lead)
	if err != nil {
		return err
	}
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	if !fireAt.After(now) {
		r.logger().Debug("reminder time already passed", zap.String("appointmentID", appt.ID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		Target:        models.RoleClient,
		RecipientID:   appt.ClientID,
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("%s on %s at %s", appt.Title, appt.Date, appt.StartTime),
		FireDate:      fireAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return err
	}

	info, err := r.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", appt.ID, err)
	}
	r.logger().Info("reminder scheduled",
		zap.String("appointmentID", appt.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}

func (r *AsynqReminders) Cancel(_ context.Context, appointmentID string) error {
	if r.Inspector == nil {
		return nil
	}
	err := r.Inspector.DeleteTask(reminderQueue, ReminderTaskID(appointmentID))
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

func (r *AsynqReminders) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
