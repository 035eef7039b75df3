package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"brokerbook/database"
	"brokerbook/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type loader map[string]models.Appointment

func (l loader) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	a, ok := l[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &a, nil
}

type pushes struct{ to []string }

func (p *pushes) SendPushNotification(_ context.Context, userID, _, _ string, _ map[string]string) error {
	p.to = append(p.to, userID)
	return nil
}

func reminderTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.ReminderPayload{AppointmentID: id, RecipientID: "c1", Title: "Upcoming appointment"})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask("appointment:reminder", b)
}

func TestHandleReminderTask(t *testing.T) {
	appts := loader{
		"live":      {ID: "live", ClientID: "c1", Status: models.StatusConfirmed},
		"cancelled": {ID: "cancelled", ClientID: "c1", Status: models.StatusCancelled},
	}
	sent := &pushes{}
	h := HandleReminderTask(appts, sent, zap.NewNop())
	ctx := context.Background()

	for _, id := range []string{"live", "cancelled", "missing"} {
		if err := h.ProcessTask(ctx, reminderTask(t, id)); err != nil {
			t.Fatalf("%s: %v", id, err)
		}
	}
	if len(sent.to) != 1 || sent.to[0] != "c1" {
		t.Fatalf("pushes = %v, want exactly one to c1", sent.to)
	}
}

func TestHandleReminderTaskBadPayload(t *testing.T) {
	h := HandleReminderTask(loader{}, &pushes{}, zap.NewNop())
	err := h.ProcessTask(context.Background(), asynq.NewTask("appointment:reminder", []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
