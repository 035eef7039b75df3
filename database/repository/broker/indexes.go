// FILE: database/repository/broker/indexes.go
package brokerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the brokers collection.
func (r *mongoBrokerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "active", Value: 1}, {Key: "city", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("active_city_name_idx"),
		},
		{
			Keys:    bson.D{{Key: "specialties", Value: 1}},
			Options: options.Index().SetName("specialties_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create broker indexes: %w", err)
	}
	return nil
}
