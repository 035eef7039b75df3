package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"brokerbook/database"
	"brokerbook/models"
	"brokerbook/services/scheduling"
)

type memRepo struct {
	docs map[string]*models.WeeklyAvailability
}

func (m *memRepo) GetByBrokerID(_ context.Context, id string) (*models.WeeklyAvailability, error) {
	wa, ok := m.docs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *wa
	return &cp, nil
}

func (m *memRepo) Upsert(_ context.Context, wa *models.WeeklyAvailability) error {
	cp := *wa
	m.docs[wa.BrokerID] = &cp
	return nil
}

func newService(t *testing.T) (*DefaultAvailabilityService, *memRepo) {
	t.Helper()
	repo := &memRepo{docs: map[string]*models.WeeklyAvailability{}}
	clock := scheduling.FixedClock{T: time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)}
	svc, err := NewDefaultAvailabilityService(repo, clock, nil)
	if err != nil {
		t.Fatalf("NewDefaultAvailabilityService: %v", err)
	}
	return svc, repo
}

func TestGetUnknownBrokerReturnsDisabledWeek(t *testing.T) {
	svc, _ := newService(t)

	wa, err := svc.Get(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, wd := range models.Weekdays {
		day := wa.Day(wd)
		if day.Enabled || day.TimeSlots == nil || len(day.TimeSlots) != 0 {
			t.Fatalf("%s = %+v, want disabled with empty slots", wd, day)
		}
	}
}

func TestSaveSortsAndStamps(t *testing.T) {
	svc, repo := newService(t)
	in := models.WeeklyAvailability{}
	in.Monday = models.DayAvailability{Enabled: true, TimeSlots: []models.TimeSlot{
		{Start: "14:00", End: "16:00"},
		{Start: "09:00", End: "12:00"},
	}}

	out, err := svc.Save(context.Background(), "b1", "b1", in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if out.BrokerID != "b1" || out.UpdatedAt.IsZero() {
		t.Fatalf("saved = %+v", out)
	}
	if got := repo.docs["b1"].Monday.TimeSlots[0].Start; got != "09:00" {
		t.Fatalf("first monday slot = %s, want 09:00", got)
	}
}

func TestSaveRejectsOtherBroker(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Save(context.Background(), "b2", "b1", models.WeeklyAvailability{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestSaveValidation(t *testing.T) {
	svc, repo := newService(t)
	in := models.WeeklyAvailability{}
	in.Tuesday = models.DayAvailability{Enabled: true, TimeSlots: []models.TimeSlot{
		{Start: "9am", End: "10:00"},
		{Start: "11:00", End: "10:00"},
		{Start: "12:00", End: "12:20"},
		{Start: "13:00", End: "14:00"},
	}}

	_, err := svc.Save(context.Background(), "b1", "b1", in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(verr.Problems) != 3 {
		t.Fatalf("problems = %v, want 3", verr.Problems)
	}
	if _, ok := repo.docs["b1"]; ok {
		t.Fatal("invalid template was persisted")
	}
}
