package database

import (
	"context"
	"time"

	"brokerbook/utils"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// FirestoreClient is the global firestore client, set when STORE_BACKEND=firestore.
var FirestoreClient *firestore.Client

// InitFirestore opens firestore through the shared firebase app.
func InitFirestore() {
	if utils.FirebaseApp == nil {
		utils.FirebaseInit()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := utils.FirebaseApp.Firestore(ctx)
	if err != nil {
		utils.GetLogger().Fatal("failed to open Firestore", zap.Error(err))
	}
	FirestoreClient = client
	utils.GetLogger().Info("connected to Firestore")
}

// PingFirestore lists at most one collection as a reachability probe.
func PingFirestore(ctx context.Context) error {
	it := FirestoreClient.Collections(ctx)
	_, err := it.Next()
	if err == iterator.Done {
		return nil
	}
	return err
}

// CloseFirestore releases the firestore client if one was opened.
func CloseFirestore() error {
	if FirestoreClient == nil {
		return nil
	}
	return FirestoreClient.Close()
}
