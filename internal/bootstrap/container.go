package bootstrap

import (
	"log"
	"time"

	"clinical-chat-be/internal/chat"
	"clinical-chat-be/internal/config"
	"clinical-chat-be/internal/controller"
	"clinical-chat-be/internal/handler"
	"clinical-chat-be/internal/pkg/logger"
	"clinical-chat-be/internal/repository/implementation"
	"clinical-chat-be/internal/service"
	"clinical-chat-be/pkg/embedding"
	"clinical-chat-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const auditTopic = "chat.audit"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	PatientController controller.IPatientController

	// WebSocket
	ChatHandler *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	AuditConsumer service.IAuditConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	chatLogger := logger.NewIsolatedLogger(cfg.Chat.LogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	patientRepo := implementation.NewPatientRepository(db)
	chunkRepo := implementation.NewRecordChunkRepository(db)
	userRepo := implementation.NewUserRepository(db)
	systemLogRepo := implementation.NewSystemLogRepository(db)

	// 5. Services
	tokenService := service.NewTokenService(cfg.App.JWTSecret)
	authService := service.NewAuthService(userRepo, tokenService)
	clinicalService := service.NewClinicalService(patientRepo)
	searchService := service.NewVectorSearchService(chunkRepo, embeddingProvider)

	auditPublisher := service.NewAuditPublisherService(auditTopic, pubSub)
	auditConsumer := service.NewAuditConsumerService(pubSub, auditTopic, systemLogRepo, sysLogger)

	// 6. Chat Domain
	registry := chat.NewRegistry(chatLogger)
	generator := chat.NewGenerator(llmProvider, chatLogger)

	chatHandler := handler.NewChatHandler(
		registry,
		tokenService,
		chat.Deps{
			Clinical:  clinicalService,
			Search:    searchService,
			Generator: generator,
			Audit:     auditPublisher,
		},
		chat.Timeouts{
			VectorSearch: time.Duration(cfg.Chat.VectorSearchTimeoutSec) * time.Second,
			Generation:   time.Duration(cfg.Chat.LLMTimeoutSec) * time.Second,
			Inactivity:   time.Duration(cfg.Chat.InactivityTimeoutSec) * time.Second,
		},
		chatLogger,
	)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		PatientController: controller.NewPatientController(clinicalService),
		ChatHandler:       chatHandler,
		AuditConsumer:     auditConsumer,
	}
}
