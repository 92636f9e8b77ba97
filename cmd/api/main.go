package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/voxology/assistant-backend/internal/adapters/database"
	"github.com/voxology/assistant-backend/internal/adapters/events"
	"github.com/voxology/assistant-backend/internal/adapters/search"
	"github.com/voxology/assistant-backend/internal/api/handlers"
	"github.com/voxology/assistant-backend/internal/api/routes"
	"github.com/voxology/assistant-backend/internal/application/services"
	"github.com/voxology/assistant-backend/internal/domain/providers"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/openai"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/postgres"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/redis"
	"github.com/voxology/assistant-backend/internal/infrastructure/clients/typesense"
	"github.com/voxology/assistant-backend/internal/infrastructure/notifications"
	"github.com/voxology/assistant-backend/internal/infrastructure/observability"
	"github.com/voxology/assistant-backend/pkg/config"
)

func main() {
	// Local development convenience; a missing .env is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Identity store
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Redis backs the display push; the assistant works without it
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Vector index
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatalf("Failed to initialize Typesense client: %v", err)
	}
	log.Println("Typesense client initialized successfully")

	// Embedding provider
	if cfg.OpenAI.APIKey == "" {
		log.Fatalf("OPENAI_API_KEY is required for query embedding")
	}
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	// Adapters
	userAdapter := database.NewUserAdapter(pgClient)

	indexAdapter := search.NewTypesenseAdapter(typesenseClient)
	if err := indexAdapter.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to init Typesense schema: %v", err)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Notification channels, each optional
	var emailSender providers.EmailSender
	if cfg.SendGrid.APIKey != "" {
		sender, err := notifications.NewSendGridSender(&cfg.SendGrid)
		if err != nil {
			log.Printf("Warning: Failed to initialize SendGrid sender: %v", err)
		} else {
			emailSender = sender
			log.Println("Email channel initialized successfully")
		}
	} else {
		log.Println("Email channel disabled (SENDGRID_API_KEY not set)")
	}

	var smsSender providers.SMSSender
	if cfg.Twilio.AccountSID != "" {
		sender, err := notifications.NewTwilioSender(&cfg.Twilio)
		if err != nil {
			log.Printf("Warning: Failed to initialize Twilio sender: %v", err)
		} else {
			smsSender = sender
			log.Println("SMS channel initialized successfully")
		}
	} else {
		log.Println("SMS channel disabled (TWILIO_ACCOUNT_SID not set)")
	}

	// Services
	searchService := services.NewSearchService(openaiClient, indexAdapter, eventBus, metrics)
	verificationService := services.NewVerificationService(userAdapter)
	bookingService := services.NewBookingService(emailSender, smsSender)

	// Handlers
	searchHandler := handlers.NewSearchHandler(searchService)
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	timeHandler := handlers.NewTimeHandler()

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	router := routes.NewRouter(
		searchHandler,
		verifyHandler,
		bookingHandler,
		timeHandler,
		sseHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
