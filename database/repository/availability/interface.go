// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"brokerbook/database"
	"brokerbook/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

// AvailabilityRepository stores one weekly availability document per broker.
type AvailabilityRepository interface {
	// GetByBrokerID returns database.ErrNotFound when the broker never saved a template.
	GetByBrokerID(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error)
	Upsert(ctx context.Context, availability *models.WeeklyAvailability) error
}

var tracer = otel.Tracer("brokerbook/database/availability")

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.MongoDatabase().Collection("availability"),
	}
}

