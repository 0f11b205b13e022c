package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"genoscope/adapters/gprofiler"
	"genoscope/adapters/mygene"
	"genoscope/adapters/postgres"
	"genoscope/app"
	"genoscope/internal"
	"genoscope/internal/config"
	"genoscope/internal/session"
	"genoscope/ports"
	"genoscope/ui"
)

// initDatabase connects the optional run-history store.
func initDatabase(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var repo ports.RunRepository
	if appConfig.Database.Enabled {
		db, err := initDatabase(appConfig.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewRunRepository(db)
		logger.Info("[Main] Run history enabled")
	} else {
		logger.Info("[Main] DATABASE_URL not set, running cache-only")
	}

	resolver := mygene.NewClient(appConfig.Services.MyGeneURL, appConfig.Services.Timeout, appConfig.Services.BatchSize)
	enricher := gprofiler.NewClient(appConfig.Services.GProfilerURL, appConfig.Services.Timeout)
	cache := session.NewCache(16)

	enrichment := app.NewEnrichmentService(resolver, enricher, cache, repo, appConfig.Enrichment, logger)
	runs := app.NewRunService(cache, repo, logger)

	server := ui.NewServer(appConfig.Server, enrichment, runs, resolver, logger)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
