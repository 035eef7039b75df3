package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brokerbook/database"
	"brokerbook/models"
	"brokerbook/services/notification"
	"brokerbook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentLoader reloads an appointment when its reminder fires.
type AppointmentLoader interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

// ReminderWorker consumes appointment reminders from the queue.
type ReminderWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewReminderWorker(redisOpt asynq.RedisClientOpt, appts AppointmentLoader, notifier notification.NotificationService, logger *zap.Logger) *ReminderWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, HandleReminderTask(appts, notifier, logger))

	return &ReminderWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying start-up with backoff.
func (w *ReminderWorker) Start() {
	go func() {
		w.logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Warn("reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("reminder worker gave up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleReminderTask pushes the reminder unless the appointment has since
// been cancelled or removed.
func HandleReminderTask(appts AppointmentLoader, notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		log := logger.With(zap.String("appointmentID", p.AppointmentID), zap.String("recipientID", p.RecipientID))

		appt, err := appts.GetByID(ctx, p.AppointmentID)
		if errors.Is(err, database.ErrNotFound) {
			log.Info("appointment gone, dropping reminder")
			return nil
		}
		if err != nil {
			return err
		}
		if !appt.Active() {
			log.Info("appointment cancelled, dropping reminder")
			return nil
		}

		data := map[string]string{
			"type":          "appointment_reminder",
			"appointmentId": p.AppointmentID,
			"fireDate":      p.FireDate,
		}
		if err := notifier.SendPushNotification(ctx, p.RecipientID, p.Title, p.Body, data); err != nil {
			log.Warn("failed to send reminder", zap.Error(err))
			return err
		}
		log.Info("reminder sent")
		return nil
	}
}
