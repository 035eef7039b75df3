package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"brokerbook/database"
	appointmentRepo "brokerbook/database/repository/appointment"
	"brokerbook/models"
	"brokerbook/services/scheduling"
)

type memAppointments struct {
	mu        sync.Mutex
	items     map[string]models.Appointment
	seq       int
	createErr error
}

func newMemAppointments() *memAppointments {
	return &memAppointments{items: map[string]models.Appointment{}}
}

func (m *memAppointments) Create(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, e := range m.items {
		if e.Active() && e.BrokerID == a.BrokerID && e.Date == a.Date && e.StartTime == a.StartTime {
			return database.ErrDuplicate
		}
	}
	if a.ID == "" {
		m.seq++
		a.ID = fmt.Sprintf("appt-%d", m.seq)
	}
	m.items[a.ID] = *a
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &a, nil
}

func (m *memAppointments) ListByBrokerInRange(_ context.Context, brokerID, from, to string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.items {
		if a.BrokerID == brokerID && a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].StartTime < out[j].Date+out[j].StartTime })
	return out, nil
}

func (m *memAppointments) ListByClient(_ context.Context, clientID string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.items {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppointments) UpdateStatus(_ context.Context, id string, c appointmentRepo.StatusChange) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	allowed := false
	for _, s := range c.From {
		if s == a.Status {
			allowed = true
		}
	}
	if !allowed {
		return nil, database.ErrConflict
	}
	a.Status = c.To
	a.UpdatedAt = c.At
	if c.To == models.StatusCancelled {
		at := c.At
		a.CancelledAt = &at
		a.CancelledBy = c.By
	}
	m.items[id] = a
	return &a, nil
}

type staticAvailability map[string]*models.WeeklyAvailability

func (s staticAvailability) GetByBrokerID(_ context.Context, id string) (*models.WeeklyAvailability, error) {
	wa, ok := s[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return wa, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string // "userID:type"
}

func (r *recordingNotifier) SendPushNotification(_ context.Context, userID, _, _ string, data map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, userID+":"+data["type"])
	return nil
}

type recordingReminders struct {
	mu        sync.Mutex
	scheduled []string
	cancelled []string
}

func (r *recordingReminders) Schedule(_ context.Context, a models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, a.ID)
	return nil
}

func (r *recordingReminders) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, id)
	return nil
}

type harness struct {
	svc       *DefaultBookingService
	repo      *memAppointments
	locker    *LocalSlotLocker
	notifier  *recordingNotifier
	reminders *recordingReminders
}

// newHarness: broker b1 works Mondays 09:00-10:00; "now" is Wednesday 2025-01-01 08:00 UTC.
func newHarness(t *testing.T) *harness {
	t.Helper()
	wa := &models.WeeklyAvailability{BrokerID: "b1"}
	wa.Monday = models.DayAvailability{Enabled: true, TimeSlots: []models.TimeSlot{{Start: "09:00", End: "10:00"}}}

	repo := newMemAppointments()
	clock := scheduling.FixedClock{T: time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)}
	gen, err := scheduling.NewDefaultSlotGenerator(staticAvailability{"b1": wa}, repo, clock, nil)
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	gen.MaxHorizon = 60

	h := &harness{
		repo:      repo,
		locker:    NewLocalSlotLocker(),
		notifier:  &recordingNotifier{},
		reminders: &recordingReminders{},
	}
	h.svc, err = NewDefaultBookingService(repo, gen, h.locker, h.reminders, h.notifier, nil)
	if err != nil {
		t.Fatalf("booking service: %v", err)
	}
	return h
}

func request(date, start string) models.BookingRequest {
	return models.BookingRequest{
		BrokerID:    "b1",
		Date:        date,
		StartTime:   start,
		ClientName:  "Ana Client",
		ClientEmail: "ana@example.com",
	}
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := CodeOf(err); got != code {
		t.Fatalf("err = %v (code %q), want code %q", err, got, code)
	}
}
