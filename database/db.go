package database

import (
	"context"
	"time"

	"brokerbook/config"
	"brokerbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client, set by InitDB.
var MongoClient *mongo.Client

// InitDB connects to DATABASE_URL and verifies the primary is reachable.
// Failure is fatal: the service cannot compute slots without its store.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetAppName("brokerbook").
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		utils.GetLogger().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		utils.GetLogger().Fatal("failed to ping MongoDB", zap.Error(err))
	}
	MongoClient = client
	utils.GetLogger().Info("connected to MongoDB", zap.String("database", databaseName()))
}

func databaseName() string {
	if name := config.AppConfig.DatabaseName; name != "" {
		return name
	}
	return "brokerbook"
}

// MongoDatabase returns the configured database handle.
func MongoDatabase() *mongo.Database {
	return MongoClient.Database(databaseName())
}

// PingMongo is the health probe for the mongo backend.
func PingMongo(ctx context.Context) error {
	return MongoClient.Ping(ctx, readpref.Primary())
}

// CloseDB disconnects the mongo client if one was opened.
func CloseDB(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
