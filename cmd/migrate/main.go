package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/tradewire/bookfeed/pkg/config"
	"github.com/tradewire/bookfeed/pkg/postgresql"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer client.Close()

	if err := runMigrations(ctx, client); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func runMigrations(ctx context.Context, client postgresql.PostgreSQLClient) error {
	migrationDir := "migrations"

	files, err := filepath.Glob(filepath.Join(migrationDir, "*.sql"))
	if err != nil {
		return err
	}

	sort.Strings(files)

	for _, file := range files {
		log.Printf("Running migration: %s", file)

		content, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		if err := client.Exec(ctx, string(content)); err != nil {
			return err
		}

		log.Printf("Migration completed: %s", file)
	}

	return nil
}
