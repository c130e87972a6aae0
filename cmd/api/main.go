package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"parley/internal/adapter/api"
	"parley/internal/adapter/api/handler"
	apimiddleware "parley/internal/adapter/api/middleware"
	"parley/internal/adapter/api/router"
	"parley/internal/adapter/repository"
	"parley/internal/infrastructure/catalog"
	"parley/internal/infrastructure/firebase"
	"parley/internal/usecase"
	"parley/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	conversationStore := repository.NewFirestoreConversationRepository(firestoreClient)
	participantDirectory := repository.NewFirestoreParticipantRepository(firestoreClient)
	messageCatalog := catalog.New()

	messageFactory := usecase.NewMessageFactory()
	localizer := usecase.NewSystemMessageLocalizer(messageCatalog)
	conversationUseCase := usecase.NewConversationUseCase(conversationStore, participantDirectory, messageFactory)
	queryUseCase := usecase.NewConversationQueryUseCase(conversationStore, participantDirectory, localizer)
	readTracker := usecase.NewReadTracker(conversationStore)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebase.NewAuthClient(authClient))
	conversationHandler := handler.NewConversationHandler(conversationUseCase, queryUseCase, readTracker)
	healthHandler := handler.NewHealthHandler()

	router.Setup(e, conversationHandler, healthHandler, authMiddleware)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
