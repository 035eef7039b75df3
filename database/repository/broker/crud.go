// File: database/repository/broker/crud.go
package brokerRepo

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
)

func (r *mongoBrokerRepo) GetByID(ctx context.Context, id string) (*models.Broker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Broker
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch broker %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBrokerRepo) Upsert(ctx context.Context, b *models.Broker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save broker %s: %w", b.ID, err)
	}
	return nil
}
