package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jonesrussell/stash/internal/auth"
	"github.com/jonesrussell/stash/internal/config"
	"github.com/jonesrussell/stash/internal/handler"
	"github.com/jonesrussell/stash/internal/history"
	"github.com/jonesrussell/stash/internal/middleware"
	"github.com/jonesrussell/stash/internal/repository/postgres"
	postgresCapture "github.com/jonesrussell/stash/internal/repository/postgres/capture"
	serviceCapture "github.com/jonesrussell/stash/internal/service/capture"
	"github.com/jonesrussell/stash/internal/suggest"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	contentRepo := postgresCapture.NewContentRepository(repoConfig)
	versionRepo := postgresCapture.NewVersionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	versionService := serviceCapture.NewVersionService(contentRepo, versionRepo, txManager, logger)
	contentService := serviceCapture.NewContentService(contentRepo, versionService, logger)
	revertWorkflow := serviceCapture.NewRevertWorkflow(versionService, logger)
	historySessions := history.NewSessionRegistry(30 * time.Minute)

	// AI suggestions are optional; the endpoint answers 503 when disabled
	var suggester captureSvc.Suggester
	if cfg.SuggestEnabled {
		registry, err := suggest.NewRegistry()
		if err != nil {
			log.Fatalf("Failed to load suggestion registry: %v", err)
		}
		suggestService, err := suggest.NewService(cfg.AnthropicAPIKey, cfg.SuggestModel, registry, logger)
		if err != nil {
			log.Fatalf("Failed to create suggestion service: %v", err)
		}
		suggester = suggestService
		logger.Info("suggestions enabled", "model", cfg.SuggestModel)
	} else {
		logger.Info("suggestions disabled")
	}

	// Create handlers
	contentHandler := handler.NewContentHandler(contentService, logger)
	versionHandler := handler.NewVersionHandler(versionService, revertWorkflow, logger)
	historyHandler := handler.NewHistoryHandler(historySessions, contentService, logger)
	suggestHandler := handler.NewSuggestHandler(suggester, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", contentHandler.HealthCheck)

	// Content routes
	mux.HandleFunc("POST /api/contents", contentHandler.CreateContent)
	mux.HandleFunc("GET /api/contents", contentHandler.ListContents)
	mux.HandleFunc("GET /api/contents/search", contentHandler.SearchContents) // Must come before {id} route
	mux.HandleFunc("GET /api/contents/{id}", contentHandler.GetContent)
	mux.HandleFunc("PATCH /api/contents/{id}", contentHandler.UpdateContent)
	mux.HandleFunc("POST /api/contents/{id}/archive", contentHandler.ArchiveContent)
	mux.HandleFunc("DELETE /api/contents/{id}", contentHandler.DeleteContent)

	// Version routes
	mux.HandleFunc("GET /api/contents/{id}/versions", versionHandler.ListVersions)
	mux.HandleFunc("POST /api/contents/{id}/versions", versionHandler.CreateVersion)
	mux.HandleFunc("GET /api/contents/{id}/versions/compare", versionHandler.CompareVersions)
	mux.HandleFunc("POST /api/contents/{id}/revert", versionHandler.Revert)

	// Session history routes (in-memory undo/redo)
	mux.HandleFunc("GET /api/contents/{id}/history", historyHandler.GetHistory)
	mux.HandleFunc("POST /api/contents/{id}/history/push", historyHandler.Push)
	mux.HandleFunc("POST /api/contents/{id}/history/undo", historyHandler.Undo)
	mux.HandleFunc("POST /api/contents/{id}/history/redo", historyHandler.Redo)
	mux.HandleFunc("DELETE /api/contents/{id}/history", historyHandler.EndSession)

	// Suggestion routes
	mux.HandleFunc("POST /api/suggest", suggestHandler.Suggest)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
