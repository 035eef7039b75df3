package booking

import (
	"context"
	"testing"

	"brokerbook/models"
)

func book(t *testing.T, h *harness, client, start string) *models.Appointment {
	t.Helper()
	appt, err := h.svc.Book(context.Background(), client, request("2025-01-06", start))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	h.notifier.sent = nil
	return appt
}

func TestConfirmByBroker(t *testing.T) {
	h := newHarness(t)
	appt := book(t, h, "c1", "09:00")

	got, err := h.svc.Confirm(context.Background(), "b1", appt.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Fatalf("status = %s", got.Status)
	}
	if len(h.notifier.sent) != 1 || h.notifier.sent[0] != "c1:appointment_confirmed" {
		t.Fatalf("notifications = %v", h.notifier.sent)
	}

	_, err = h.svc.Confirm(context.Background(), "b1", appt.ID)
	wantCode(t, err, CodeInvalidTransition)
}

func TestConfirmByClientIsForbidden(t *testing.T) {
	h := newHarness(t)
	appt := book(t, h, "c1", "09:00")

	_, err := h.svc.Confirm(context.Background(), "c1", appt.ID)
	wantCode(t, err, CodeForbidden)
}

func TestCancelFreesTheSlot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	appt := book(t, h, "c1", "09:00")

	got, err := h.svc.Cancel(ctx, "c1", appt.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != models.StatusCancelled || got.CancelledBy != "c1" || got.CancelledAt == nil {
		t.Fatalf("cancelled = %+v", got)
	}
	if len(h.reminders.cancelled) != 1 || h.reminders.cancelled[0] != appt.ID {
		t.Fatalf("withdrawn reminders = %v", h.reminders.cancelled)
	}
	if len(h.notifier.sent) != 1 || h.notifier.sent[0] != "b1:appointment_cancelled" {
		t.Fatalf("notifications = %v", h.notifier.sent)
	}

	if _, err := h.svc.Book(ctx, "c2", request("2025-01-06", "09:00")); err != nil {
		t.Fatalf("rebooking a cancelled slot: %v", err)
	}
}

func TestCancelByBrokerNotifiesClient(t *testing.T) {
	h := newHarness(t)
	appt := book(t, h, "c1", "09:30")

	if _, err := h.svc.Cancel(context.Background(), "b1", appt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(h.notifier.sent) != 1 || h.notifier.sent[0] != "c1:appointment_cancelled" {
		t.Fatalf("notifications = %v", h.notifier.sent)
	}
}

func TestCancelGuards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	appt := book(t, h, "c1", "09:00")

	_, err := h.svc.Cancel(ctx, "stranger", appt.ID)
	wantCode(t, err, CodeForbidden)

	_, err = h.svc.Cancel(ctx, "c1", "missing")
	wantCode(t, err, CodeNotFound)

	if _, err := h.svc.Cancel(ctx, "c1", appt.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	_, err = h.svc.Cancel(ctx, "c1", appt.ID)
	wantCode(t, err, CodeInvalidTransition)
}

func TestListForBroker(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	book(t, h, "c1", "09:00")

	got, err := h.svc.ListForBroker(ctx, "b1", "", "")
	if err != nil {
		t.Fatalf("ListForBroker: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("appointments = %d, want 1", len(got))
	}

	empty, err := h.svc.ListForBroker(ctx, "b2", "", "")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("other broker = %v, %v", empty, err)
	}

	_, err = h.svc.ListForBroker(ctx, "b1", "2025-02-01", "2025-01-01")
	wantCode(t, err, CodeInvalidRequest)
	_, err = h.svc.ListForBroker(ctx, "b1", "tomorrow", "")
	wantCode(t, err, CodeInvalidRequest)
}

func TestListForClient(t *testing.T) {
	h := newHarness(t)
	book(t, h, "c1", "09:00")

	got, err := h.svc.ListForClient(context.Background(), "c1")
	if err != nil || len(got) != 1 {
		t.Fatalf("ListForClient = %v, %v", got, err)
	}
}
