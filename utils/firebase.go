// utils/firebase.go
package utils

import (
	"context"

	"brokerbook/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var (
	FirebaseApp *firebase.App
	FCMClient   *messaging.Client
	AuthClient  *auth.Client
)

// FirebaseInit initializes the Firebase App. With no credentials file it
// falls back to application default credentials.
func FirebaseInit() {
	ctx := context.Background()

	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	var fbConfig *firebase.Config
	if pid := config.AppConfig.FirebaseProjectID; pid != "" {
		fbConfig = &firebase.Config{ProjectID: pid}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		GetLogger().Fatal("firebase: error initializing app", zap.Error(err))
	}
	FirebaseApp = app
}

// GetFCMClient returns the messaging client, creating it on first use.
func GetFCMClient(ctx context.Context) *messaging.Client {
	if FCMClient != nil {
		return FCMClient
	}
	if FirebaseApp == nil {
		FirebaseInit()
	}
	client, err := FirebaseApp.Messaging(ctx)
	if err != nil {
		GetLogger().Fatal("firebase: error getting Messaging client", zap.Error(err))
	}
	FCMClient = client
	return FCMClient
}

// GetAuthClient returns the firebase auth client, creating it on first use.
func GetAuthClient(ctx context.Context) *auth.Client {
	if AuthClient != nil {
		return AuthClient
	}
	if FirebaseApp == nil {
		FirebaseInit()
	}
	client, err := FirebaseApp.Auth(ctx)
	if err != nil {
		GetLogger().Fatal("firebase: error getting Auth client", zap.Error(err))
	}
	AuthClient = client
	return AuthClient
}
