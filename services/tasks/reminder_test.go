package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"brokerbook/models"
)

func TestFireTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	appt := models.Appointment{ID: "a1", Date: "2025-03-10", StartTime: "09:30"}

	got, err := FireTime(appt, loc, 24*time.Hour)
	if err != nil {
		t.Fatalf("FireTime: %v", err)
	}
	// 2025-03-10 09:30 EDT is 13:30 UTC.
	want := time.Date(2025, time.March, 9, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("fire time = %v, want %v", got.UTC(), want)
	}
}

func TestFireTimeRejectsBadClock(t *testing.T) {
	_, err := FireTime(models.Appointment{ID: "a1", Date: "2025-03-10", StartTime: "9am"}, nil, time.Hour)
	if err == nil {
		t.Fatal("expected an error for a malformed start time")
	}
}

func TestNewReminderTask(t *testing.T) {
	payload := models.ReminderPayload{AppointmentID: "a1", Target: models.RoleClient, RecipientID: "c1"}
	task, opts, err := NewReminderTask(payload, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("NewReminderTask: %v", err)
	}
	if task.Type() != TypeAppointmentReminder {
		t.Fatalf("type = %q", task.Type())
	}
	if len(opts) == 0 {
		t.Fatal("no options")
	}
	var got models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &got); err != nil || got != payload {
		t.Fatalf("payload = %+v, %v", got, err)
	}
	if ReminderTaskID("a1") != "reminder:a1" {
		t.Fatalf("task id = %q", ReminderTaskID("a1"))
	}
}

func TestScheduleSkipsPastReminders(t *testing.T) {
	r := &AsynqReminders{
		Lead: time.Hour,
		Now:  func() time.Time { return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) },
	}
	// Client is nil: reaching the enqueue would panic.
	appt := models.Appointment{ID: "a1", Date: "2025-03-10", StartTime: "09:30"}
	if err := r.Schedule(context.Background(), appt); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
}
