// File: database/repository/broker/interface.go
package brokerRepo

import (
	"context"

	"brokerbook/database"
	"brokerbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BrokerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Broker, error)
	Upsert(ctx context.Context, b *models.Broker) error
	// Search returns active brokers matching every non-empty filter, ordered by name.
	Search(ctx context.Context, criteria models.BrokerSearch) ([]models.Broker, error)
}

// DefaultSearchLimit caps a search when the caller does not ask for a size.
const DefaultSearchLimit = 20

type mongoBrokerRepo struct {
	coll *mongo.Collection
}

// NewMongoBrokerRepo constructs a new MongoDB BrokerRepository.
func NewMongoBrokerRepo() BrokerRepository {
	return &mongoBrokerRepo{
		coll: database.MongoDatabase().Collection("brokers"),
	}
}

func searchLimit(n int) int {
	if n <= 0 || n > 100 {
		return DefaultSearchLimit
	}
	return n
}
