// File: database/repository/availability/firestore.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreAvailabilityRepo keeps documents at availability/{brokerId}.
type firestoreAvailabilityRepo struct {
	coll *firestore.CollectionRef
}

// NewFirestoreAvailabilityRepo constructs a Firestore-backed AvailabilityRepository.
func NewFirestoreAvailabilityRepo(client *firestore.Client) AvailabilityRepository {
	return &firestoreAvailabilityRepo{coll: client.Collection("availability")}
}

func (r *firestoreAvailabilityRepo) GetByBrokerID(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error) {
	ctx, span := tracer.Start(ctx, "firestore.availability.get")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll.Doc(brokerID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, database.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch availability for broker %s: %w", brokerID, err)
	}

	var wa models.WeeklyAvailability
	if err := snap.DataTo(&wa); err != nil {
		return nil, fmt.Errorf("error decoding availability for broker %s: %w", brokerID, err)
	}
	wa.BrokerID = brokerID
	return &wa, nil
}

func (r *firestoreAvailabilityRepo) Upsert(ctx context.Context, wa *models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if wa.UpdatedAt.IsZero() {
		wa.UpdatedAt = time.Now()
	}
	if _, err := r.coll.Doc(wa.BrokerID).Set(ctx, wa); err != nil {
		return fmt.Errorf("failed to save availability for broker %s: %w", wa.BrokerID, err)
	}
	return nil
}
