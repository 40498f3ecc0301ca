package main

import (
	"context"
	"os"
	"time"

	"healthbridge-backend/auth"
	"healthbridge-backend/config"
	"healthbridge-backend/handlers"
	"healthbridge-backend/inference"
	"healthbridge-backend/repository"
	"healthbridge-backend/service"
	"healthbridge-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env from the working directory or the project root
	// (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		godotenv.Load("../../.env")
	}

	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Postgres")
	}
	defer db.Close()

	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	logger.Info().Msg("storage initialized")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	conditionRepo := repository.NewConditionRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	memoryRepo := repository.NewMemoryRepository(db)

	// Inference client (chat + vision OCR over one endpoint)
	inferenceClient := inference.New(cfg.InferenceBaseURL, cfg.ChatModel, cfg.VisionModel, cfg.InferenceTimeout)

	// Services
	businessService := service.NewBusinessService(
		service.BusinessWithStore(businessRepo),
	)
	documentService := service.NewDocumentService(
		service.DocumentWithStore(documentRepo),
		service.DocumentWithObjectStorage(fileStorage),
		service.DocumentWithOCRClient(inferenceClient),
		service.DocumentWithMaxUploadBytes(cfg.MaxUploadBytes),
		service.DocumentWithLogger(logger),
	)
	assistantService := service.NewAssistantService(
		service.AssistantWithConversationStore(conversationRepo),
		service.AssistantWithMemoryStore(memoryRepo),
		service.AssistantWithChatClient(inferenceClient),
		service.AssistantWithLogger(logger),
	)
	healthcareService := service.NewHealthcareService(
		service.HealthcareWithConditionStore(conditionRepo),
		service.HealthcareWithMedicationStore(medicationRepo),
	)

	// Session validation and billing token minting
	sessionValidator := auth.NewSessionValidator(cfg.AuthJWTSecret)
	billingSecret := cfg.BillingAPISecret
	if billingSecret == "" {
		billingSecret = cfg.AuthJWTSecret
	}
	tokenMinter := auth.NewTokenMinter(billingSecret)

	// Handlers
	businessHandler := handlers.NewBusinessHandler(businessService)
	healthcareHandler := handlers.NewHealthcareHandler(documentService, healthcareService)
	chatHandler := handlers.NewChatHandler(assistantService)
	billingHandler := handlers.NewBillingHandler(businessRepo, tokenMinter, cfg.BillingTokenTTL)
	authHandler := handlers.NewAuthHandler(cfg.SessionCookie, !cfg.IsDev())

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(handlers.RequireSession(sessionValidator, userRepo, cfg.SessionCookie, logger))
	{
		// KYB onboarding
		api.POST("/business/kyb", businessHandler.SaveKYB)
		api.GET("/business", businessHandler.GetBusiness)
		api.GET("/onboarding/route", businessHandler.OnboardingRoute)

		// Document pipeline
		api.POST("/documents", healthcareHandler.UploadDocument)
		api.POST("/documents/ocr", healthcareHandler.OCRDocument)
		api.GET("/documents", healthcareHandler.ListDocuments)
		api.GET("/documents/:id", healthcareHandler.GetDocument)

		// Conditions and medications
		api.POST("/conditions", healthcareHandler.AddCondition)
		api.GET("/conditions", healthcareHandler.ListConditions)
		api.POST("/medications", healthcareHandler.AddMedication)
		api.GET("/medications", healthcareHandler.ListMedications)
		api.PUT("/medications/:id", healthcareHandler.UpdateMedication)

		// Assistant
		api.POST("/conversations", chatHandler.CreateConversation)
		api.GET("/conversations", chatHandler.ListConversations)
		api.DELETE("/conversations/:id", chatHandler.DeleteConversation)
		api.GET("/conversations/:id/messages", chatHandler.ListMessages)
		api.POST("/conversations/:id/messages", chatHandler.SendMessage)
		api.GET("/chat/history", chatHandler.ChatHistory)
		api.POST("/memories", chatHandler.AddMemory)
		api.GET("/memories", chatHandler.ListMemories)
		api.DELETE("/memories/:id", chatHandler.DeleteMemory)

		// Session teardown
		api.POST("/auth/signout", authHandler.SignOut)

		// Billing widget, gated on a completed KYB submission
		billing := api.Group("/billing")
		billing.Use(handlers.RequireOnboarded(businessRepo))
		billing.GET("/token", billingHandler.Token)
	}

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
