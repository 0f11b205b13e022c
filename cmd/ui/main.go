// Command ui serves the read-only run browser against the durable run
// history. It shares the database with the main server but never starts
// enrichment runs of its own.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"genoscope/adapters/postgres"
	"genoscope/app"
	"genoscope/internal"
	"genoscope/internal/config"
	"genoscope/internal/session"
	"genoscope/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !appConfig.Database.Enabled {
		log.Fatal("DATABASE_URL must be set; the run browser reads from durable history")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	logger := internal.NewDefaultLogger()
	runs := app.NewRunService(session.NewCache(16), postgres.NewRunRepository(db), logger)

	port := os.Getenv("BROWSER_PORT")
	if port == "" {
		port = "8081"
	}

	browser := ui.NewApp(runs)
	if err := browser.Start(port); err != nil {
		log.Fatalf("Browser failed: %v", err)
	}
}
