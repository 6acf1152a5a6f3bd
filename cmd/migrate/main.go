package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/jonesrussell/stash/internal/config"
	"github.com/jonesrussell/stash/internal/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.SupabaseDBURL == "" {
		log.Fatal("SUPABASE_DB_URL is required")
	}

	db, err := sql.Open("pgx", cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}

	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	log.Println("migrations applied")
}
