// File: database/repository/broker/queries.go
package brokerRepo

import (
	"context"
	"fmt"
	"time"

	"brokerbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBrokerRepo) Search(ctx context.Context, criteria models.BrokerSearch) ([]models.Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if criteria.City != "" {
		filter["city"] = criteria.City
	}
	if criteria.Specialty != "" {
		// Equality on an array field matches any element.
		filter["specialties"] = criteria.Specialty
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(searchLimit(criteria.Limit)))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search brokers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Broker
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding brokers: %w", err)
	}
	return out, nil
}
