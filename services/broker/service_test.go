package broker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"brokerbook/database"
	"brokerbook/models"
	"brokerbook/services/scheduling"
)

type memBrokers struct {
	mu    sync.Mutex
	items map[string]models.Broker
}

func (m *memBrokers) GetByID(_ context.Context, id string) (*models.Broker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (m *memBrokers) Upsert(_ context.Context, b *models.Broker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[b.ID] = *b
	return nil
}

func (m *memBrokers) Search(_ context.Context, c models.BrokerSearch) ([]models.Broker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Broker
	for _, b := range m.items {
		if c.City != "" && b.City != c.City {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// stubSlots answers NextAvailable from a fixed table; ids missing from it fail.
type stubSlots struct {
	next map[string]*models.AvailableSlot
	now  time.Time
}

func (s stubSlots) ComputeAvailableSlots(context.Context, string, int) []models.AvailableSlot {
	return nil
}

func (s stubSlots) Slots(context.Context, string, int) ([]models.AvailableSlot, error) {
	return nil, nil
}

func (s stubSlots) NextAvailable(_ context.Context, id string) (*models.AvailableSlot, error) {
	slot, ok := s.next[id]
	if !ok {
		return nil, errors.New("store down")
	}
	return slot, nil
}

func (s stubSlots) Now() time.Time { return s.now }

var _ scheduling.SlotGenerator = stubSlots{}

func TestSearchAttachesNextAvailable(t *testing.T) {
	repo := &memBrokers{items: map[string]models.Broker{
		"b1": {ID: "b1", Name: "Alice", City: "Lisbon"},
		"b2": {ID: "b2", Name: "Bruno", City: "Lisbon"},
		"b3": {ID: "b3", Name: "Carla", City: "Porto"},
		"b4": {ID: "b4", Name: "Duarte", City: "Lisbon"},
	}}
	slot := &models.AvailableSlot{Date: "2025-01-06", StartTime: "09:00", EndTime: "09:30"}
	slots := stubSlots{next: map[string]*models.AvailableSlot{"b1": slot, "b2": nil}}

	svc, err := NewDefaultBrokerService(repo, slots, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.Search(context.Background(), models.BrokerSearch{City: " Lisbon "})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("results = %d, want 3", len(got))
	}
	if got[0].Broker.ID != "b1" || got[0].NextAvailable != slot {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].NextAvailable != nil || got[2].NextAvailable != nil {
		t.Fatalf("expected no slot for b2 (fully booked) and b4 (lookup failed): %+v", got)
	}
}

func TestUpsertOwnProfileOnly(t *testing.T) {
	repo := &memBrokers{items: map[string]models.Broker{}}
	first := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := NewDefaultBrokerService(repo, stubSlots{now: first}, 0, nil)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "b1", models.Broker{ID: "b2", Name: "X"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign upsert: err = %v", err)
	}
	if _, err := svc.Upsert(ctx, "b1", models.Broker{Name: "  "}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("blank name: err = %v", err)
	}

	saved, err := svc.Upsert(ctx, "b1", models.Broker{Name: "Alice", City: "Lisbon"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.ID != "b1" || !saved.CreatedAt.Equal(first) {
		t.Fatalf("saved = %+v", saved)
	}

	later := first.Add(time.Hour)
	svc.Slots = stubSlots{now: later}
	again, err := svc.Upsert(ctx, "b1", models.Broker{Name: "Alice M."})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if !again.CreatedAt.Equal(first) || !again.UpdatedAt.Equal(later) {
		t.Fatalf("timestamps = %v / %v", again.CreatedAt, again.UpdatedAt)
	}
}

func TestGetMissingBroker(t *testing.T) {
	svc, _ := NewDefaultBrokerService(&memBrokers{items: map[string]models.Broker{}}, stubSlots{}, 0, nil)
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
