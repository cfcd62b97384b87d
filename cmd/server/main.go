package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainRepo "irregops-service/internal/domain/repository"
	"irregops-service/internal/infrastructure/config"
	"irregops-service/internal/infrastructure/oauth"
	"irregops-service/internal/infrastructure/persistence"
	"irregops-service/internal/infrastructure/router"
	"irregops-service/internal/interface/repository"
	"irregops-service/internal/interface/rest"
	"irregops-service/internal/usecase"
	"irregops-service/pkg/logger"
	"irregops-service/pkg/metrics"
	"irregops-service/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting IrregOps Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("irregops")

	// Set up the record audit store when configured
	var recordRepo domainRepo.DisruptionRecordRepository
	var disconnectMongo func()
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		mongoClient, db, err := persistence.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		recordRepo = repository.NewMongoDisruptionRecordRepository(db)
		disconnectMongo = func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}
	}

	// Set up airport and airline reference repositories when configured
	var airportRepo domainRepo.AirportRepository
	var airlineRepo domainRepo.AirlineRepository
	if cfg.PostgresURI != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepo = repository.NewGormAirportRepository(gormDB)
		airlineRepo = repository.NewGormAirlineRepository(gormDB)
	}

	// OAuth token source is the fallback credential when no API key is set
	var tokenSource oauth2.TokenSource
	if cfg.GeminiAPIKey == "" && cfg.GoogleRefreshToken != "" {
		googleOAuth := oauth.NewGoogleOAuth(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRefreshToken,
			log,
		)
		tokenSource = googleOAuth.GetTokenSource(ctx)
	}

	// Set up the completion pipeline
	geminiRepo := repository.NewGeminiRepository(cfg.GeminiBaseURL, cfg.CompletionTimeout, tokenSource, log)
	orchestrator := usecase.NewCompletionOrchestrator(geminiRepo, log, m)
	processor := usecase.NewDisruptionProcessor(
		orchestrator,
		airportRepo,
		airlineRepo,
		recordRepo,
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		log,
		m,
	)

	// Register mode handlers
	modeRouter := router.NewModeRouter(log)
	modeRouter.Register(templates.NewExtractionHandler(processor, log))
	modeRouter.Register(templates.NewTranslationHandler(processor, log))

	// Set up HTTP server
	mux := http.NewServeMux()
	restHandler := rest.NewDisruptionHandler(modeRouter, recordRepo, log)
	restHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if disconnectMongo != nil {
		disconnectMongo()
	}

	log.Info("IrregOps Service stopped")
}
