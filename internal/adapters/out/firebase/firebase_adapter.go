package firebase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

// Коллекции Firestore
const (
	doctorsCollection      = "doctors"
	availabilityCollection = "availability"
	appointmentsCollection = "appointments"
)

// FirebaseAdapter реализует GatewayPort поверх Firebase:
// аутентификация через Firebase Auth, данные через Firestore
type FirebaseAdapter struct {
	authClient      *auth.Client
	firestoreClient *firestore.Client
	httpClient      *http.Client
	webAPIKey       string
	logger          out.LoggerPort
}

func NewFirebaseAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*FirebaseAdapter, error) {
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.init: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase.auth.init: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase.firestore.init: %w", err)
	}

	return &FirebaseAdapter{
		authClient:      authClient,
		firestoreClient: firestoreClient,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		webAPIKey:       cfg.Firebase.WebAPIKey,
		logger:          logger.WithModule("FirebaseAdapter"),
	}, nil
}

func (a *FirebaseAdapter) Close() error {
	return a.firestoreClient.Close()
}
