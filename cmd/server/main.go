package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/handler"
	"folio/internal/kinds"
	"folio/internal/middleware"
	"folio/internal/notify"
	"folio/internal/repository/postgres"
	"folio/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOut := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)

	// Version cache: Redis when configured, in-process otherwise
	var versionCache cache.VersionCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, versionRepo)
		if err != nil {
			log.Fatalf("Failed to connect version cache: %v", err)
		}
		defer redisCache.Close()
		versionCache = redisCache
		logger.Info("version cache connected", "backend", "redis")
	} else {
		versionCache = cache.NewMemoryCache(versionRepo)
		logger.Info("version cache initialized", "backend", "memory")
	}

	// Document kind registry
	kindRegistry, err := kinds.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load kind registry: %v", err)
	}

	// Restore notification bus
	bus := notify.NewBus(logger)

	// Services
	docService := service.NewDocumentService(docRepo, versionRepo, versionCache, kindRegistry, logger)
	versionService := service.NewVersionService(versionRepo, versionCache, bus, logger)

	// Handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	versionHandler := handler.NewVersionHandler(versionService, logger)
	kindsHandler := handler.NewKindsHandler(kindRegistry)
	eventsHandler := handler.NewEventsHandler(bus, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Version history routes
	mux.HandleFunc("GET /api/documents/{id}/versions", versionHandler.ListVersions)
	mux.HandleFunc("GET /api/documents/{id}/versions/verify", versionHandler.VerifyChain)
	mux.HandleFunc("GET /api/documents/{id}/versions/{versionId}", versionHandler.GetVersion)
	mux.HandleFunc("POST /api/documents/{id}/restore", versionHandler.RestoreVersion)

	// Kind registry
	mux.HandleFunc("GET /api/kinds", kindsHandler.ListKinds)

	// Restore event stream (live preview)
	mux.HandleFunc("GET /api/events/restores", eventsHandler.StreamRestores)

	// Build middleware chain: CORS -> Recovery -> Identity -> Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Identity()(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-User-ID", "Last-Event-ID"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
