// File: database/repository/appointment/firestore.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreAppointmentRepo keeps documents at appointments/{id}.
type firestoreAppointmentRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreAppointmentRepo constructs a Firestore-backed AppointmentRepository.
func NewFirestoreAppointmentRepo(client *firestore.Client) AppointmentRepository {
	return &firestoreAppointmentRepo{client: client, coll: client.Collection("appointments")}
}

// Create checks for an active appointment on the same slot inside a
// transaction, which stands in for mongo's partial unique index.
func (r *firestoreAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	ref := r.coll.Doc(a.ID)
	q := r.coll.
		Where("brokerId", "==", a.BrokerID).
		Where("date", "==", a.Date).
		Where("startTime", "==", a.StartTime)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(q).GetAll()
		if err != nil {
			return err
		}
		for _, s := range snaps {
			var existing models.Appointment
			if err := s.DataTo(&existing); err != nil {
				return err
			}
			if existing.Active() {
				return database.ErrDuplicate
			}
		}
		return tx.Create(ref, a)
	})
	if errors.Is(err, database.ErrDuplicate) || status.Code(err) == codes.AlreadyExists {
		return database.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *firestoreAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	var a models.Appointment
	if err := snap.DataTo(&a); err != nil {
		return nil, fmt.Errorf("error decoding appointment %s: %w", id, err)
	}
	return &a, nil
}

func (r *firestoreAppointmentRepo) ListByBrokerInRange(ctx context.Context, brokerID, fromDate, toDate string) ([]models.Appointment, error) {
	ctx, span := tracer.Start(ctx, "firestore.appointments.range")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := r.coll.
		Where("brokerId", "==", brokerID).
		Where("date", ">=", fromDate).
		Where("date", "<=", toDate)
	out, err := collect(q.Documents(ctx))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *firestoreAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := collect(r.coll.Where("clientId", "==", clientID).Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client appointments: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out, nil
}

func (r *firestoreAppointmentRepo) UpdateStatus(ctx context.Context, id string, change StatusChange) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ref := r.coll.Doc(id)
	var updated models.Appointment
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return database.ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := snap.DataTo(&updated); err != nil {
			return err
		}
		if !statusIn(updated.Status, change.From) {
			return database.ErrConflict
		}

		updates := []firestore.Update{
			{Path: "status", Value: change.To},
			{Path: "updatedAt", Value: change.At},
		}
		if change.To == models.StatusCancelled {
			updates = append(updates,
				firestore.Update{Path: "cancelledAt", Value: change.At},
				firestore.Update{Path: "cancelledBy", Value: change.By},
			)
		}
		return tx.Update(ref, updates)
	})
	if errors.Is(err, database.ErrNotFound) || errors.Is(err, database.ErrConflict) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}

	at := change.At
	updated.Status = change.To
	updated.UpdatedAt = at
	if change.To == models.StatusCancelled {
		updated.CancelledAt = &at
		updated.CancelledBy = change.By
	}
	return &updated, nil
}

func collect(it *firestore.DocumentIterator) ([]models.Appointment, error) {
	defer it.Stop()
	var out []models.Appointment
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var a models.Appointment
		if err := snap.DataTo(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
}

func statusIn(s models.AppointmentStatus, set []models.AppointmentStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
