package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"brokerbook/database"
	"brokerbook/models"
)

type fakeAvailability struct {
	docs map[string]*models.WeeklyAvailability
	err  error
}

func (f *fakeAvailability) GetByBrokerID(_ context.Context, brokerID string) (*models.WeeklyAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	wa, ok := f.docs[brokerID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return wa, nil
}

type rangeCall struct{ brokerID, from, to string }

type fakeAppointments struct {
	mu    sync.Mutex
	items []models.Appointment
	err   error
	calls []rangeCall
}

func (f *fakeAppointments) ListByBrokerInRange(_ context.Context, brokerID, from, to string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rangeCall{brokerID, from, to})
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, a := range f.items {
		if a.BrokerID == brokerID && a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	return out, nil
}

func mustTime(t *testing.T, y int, m time.Month, d, h, min int) time.Time {
	t.Helper()
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func newGenerator(t *testing.T, av *fakeAvailability, ap *fakeAppointments, now time.Time) *DefaultSlotGenerator {
	t.Helper()
	g, err := NewDefaultSlotGenerator(av, ap, FixedClock{T: now}, nil)
	if err != nil {
		t.Fatalf("NewDefaultSlotGenerator: %v", err)
	}
	return g
}

// week builds a template with only the given days enabled.
func week(brokerID string, days map[time.Weekday][]models.TimeSlot) *models.WeeklyAvailability {
	wa := &models.WeeklyAvailability{BrokerID: brokerID}
	for wd, slots := range days {
		wa.SetDay(wd, models.DayAvailability{Enabled: true, TimeSlots: slots})
	}
	return wa
}

func slotsOn(slots []models.AvailableSlot, date string) []string {
	var out []string
	for _, s := range slots {
		if s.Date == date && !s.IsEmpty {
			out = append(out, s.StartTime+"-"+s.EndTime)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
