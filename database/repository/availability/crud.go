// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brokerbook/database"
	"brokerbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func (r *mongoAvailabilityRepo) GetByBrokerID(ctx context.Context, brokerID string) (*models.WeeklyAvailability, error) {
	ctx, span := tracer.Start(ctx, "mongo.availability.get")
	defer span.End()
	span.SetAttributes(attribute.String("broker.id", brokerID))

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wa models.WeeklyAvailability
	err := r.coll.FindOne(ctx, bson.M{"brokerId": brokerID}).Decode(&wa)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find availability")
		return nil, fmt.Errorf("failed to fetch availability for broker %s: %w", brokerID, err)
	}
	return &wa, nil
}

func (r *mongoAvailabilityRepo) Upsert(ctx context.Context, wa *models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if wa.UpdatedAt.IsZero() {
		wa.UpdatedAt = time.Now()
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"brokerId": wa.BrokerID}, wa, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save availability for broker %s: %w", wa.BrokerID, err)
	}
	return nil
}
