package main

import (
	"context"
	"log"
	"time"

	api "sathee-backend/cmd/api"
	authRepo "sathee-backend/internal/auth/repository"
	authUsecase "sathee-backend/internal/auth/usecase"
	chatUsecase "sathee-backend/internal/chat/usecase"
	userUsecase "sathee-backend/internal/user/usecase"
	"sathee-backend/pkg/config"
	"sathee-backend/pkg/database"
	"sathee-backend/pkg/llm"
	"sathee-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewMongoConnection(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)

	// Initialize mail delivery
	var mail mailer.EmailSender
	if cfg.PostmarkServerToken != "" {
		mail, err = mailer.NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.SenderEmail)
		if err != nil {
			log.Fatal("Failed to initialize mailer:", err)
		}
	} else {
		log.Printf("[WARN] POSTMARK_SERVER_TOKEN not set, writing mail to %s", cfg.MailOutputDir)
		mail = mailer.NewDevSender(cfg.MailOutputDir)
	}

	// Initialize the inference service client
	llmClient := llm.NewClient(cfg.LLMServiceURL)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, mail, cfg)
	userUsecaseInstance := userUsecase.NewUserUsecase(userRepository)
	chatUsecaseInstance := chatUsecase.NewChatUsecase(llmClient)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, userUsecaseInstance, chatUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
