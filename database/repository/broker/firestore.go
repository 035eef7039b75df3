// File: database/repository/broker/firestore.go
package brokerRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreBrokerRepo keeps documents at brokers/{id}.
type firestoreBrokerRepo struct {
	coll *firestore.CollectionRef
}

// NewFirestoreBrokerRepo constructs a Firestore-backed BrokerRepository.
func NewFirestoreBrokerRepo(client *firestore.Client) BrokerRepository {
	return &firestoreBrokerRepo{coll: client.Collection("brokers")}
}

func (r *firestoreBrokerRepo) GetByID(ctx context.Context, id string) (*models.Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch broker %s: %w", id, err)
	}
	var b models.Broker
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("error decoding broker %s: %w", id, err)
	}
	return &b, nil
}

func (r *firestoreBrokerRepo) Upsert(ctx context.Context, b *models.Broker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.Doc(b.ID).Set(ctx, b); err != nil {
		return fmt.Errorf("failed to save broker %s: %w", b.ID, err)
	}
	return nil
}

// Search sorts client-side so the equality filters need no composite index with name.
func (r *firestoreBrokerRepo) Search(ctx context.Context, criteria models.BrokerSearch) ([]models.Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := r.coll.Where("active", "==", true)
	if criteria.City != "" {
		q = q.Where("city", "==", criteria.City)
	}
	if criteria.Specialty != "" {
		q = q.Where("specialties", "array-contains", criteria.Specialty)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []models.Broker
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to search brokers: %w", err)
		}
		var b models.Broker
		if err := snap.DataTo(&b); err != nil {
			return nil, fmt.Errorf("error decoding broker: %w", err)
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit := searchLimit(criteria.Limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
