package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jonesrussell/stash/internal/config"
	"github.com/jonesrussell/stash/internal/repository/postgres"
	postgresCapture "github.com/jonesrussell/stash/internal/repository/postgres/capture"
	serviceCapture "github.com/jonesrussell/stash/internal/service/capture"

	captureSvc "github.com/jonesrussell/stash/internal/domain/services/capture"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "User ID to seed contents for (default: random UUID)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: never seed demo data into production
	if cfg.Environment == "prod" {
		log.Fatal("BLOCKED: cannot seed demo data in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	contentRepo := postgresCapture.NewContentRepository(repoConfig)
	versionRepo := postgresCapture.NewVersionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	versionService := serviceCapture.NewVersionService(contentRepo, versionRepo, txManager, logger)
	contentService := serviceCapture.NewContentService(contentRepo, versionService, logger)

	owner := *userID
	if owner == "" {
		owner = uuid.NewString()
	}

	log.Printf("Seeding demo contents for user %s (prefix: %q)", owner, cfg.TablePrefix)

	seeds := []captureSvc.CreateContentRequest{
		{
			UserID:  owner,
			Title:   "Reading list",
			Content: "The Go Programming Language\nDesigning Data-Intensive Applications\n",
			Tags:    []string{"books", "reading"},
		},
		{
			UserID:  owner,
			Title:   "Meeting notes",
			Content: "Discussed the versioning rollout.\nNext step: enable suggestions by default.\n",
			Tags:    []string{"work", "meetings"},
		},
		{
			UserID:  owner,
			Title:   "",
			Content: "pasted snippet: curl -s localhost:8080/health | jq .\n",
			Tags:    []string{"snippets"},
		},
	}

	for _, req := range seeds {
		content, err := contentService.CreateContent(ctx, &req)
		if err != nil {
			log.Fatalf("Failed to seed content %q: %v", req.Title, err)
		}

		// Give the first content a second version so the compare and
		// revert flows have something to work with out of the box
		if req.Title == "Reading list" {
			update := "The Go Programming Language\nDesigning Data-Intensive Applications\nThe Mythical Man-Month\n"
			if _, err := contentService.UpdateContent(ctx, owner, content.ID, &captureSvc.UpdateContentRequest{
				Content: &update,
			}); err != nil {
				log.Fatalf("Failed to update seeded content: %v", err)
			}
			if _, err := versionService.CreateVersion(ctx, owner, content.ID, "added a classic"); err != nil {
				log.Fatalf("Failed to version seeded content: %v", err)
			}
		}
	}

	log.Printf("Seeded %d contents", len(seeds))
}
