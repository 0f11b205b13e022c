// Command cli runs one enrichment analysis from a token file and writes
// the results to disk, without starting the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"genoscope/adapters/excel"
	"genoscope/adapters/gprofiler"
	"genoscope/adapters/mygene"
	"genoscope/app"
	"genoscope/domain/enrich"
	"genoscope/internal"
	"genoscope/internal/config"
	"genoscope/internal/session"
	"genoscope/ui"
)

func main() {
	var (
		inputPath = flag.String("input", "", "file with one gene identifier per line (required)")
		species   = flag.String("species", "human", "species key: human, mouse, rat")
		tau       = flag.Float64("tau", 0, "similarity threshold for redundancy reduction, 0 disables")
		xlsxPath  = flag.String("xlsx", "enrichment_results.xlsx", "output spreadsheet path")
		chartPath = flag.String("chart", "", "optional output path for the interactive HTML chart")
		chartKind = flag.String("chart-type", "dot", "chart type: dot or bar")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	logger := internal.NewDefaultLogger()
	resolver := mygene.NewClient(appConfig.Services.MyGeneURL, appConfig.Services.Timeout, appConfig.Services.BatchSize)
	enricher := gprofiler.NewClient(appConfig.Services.GProfilerURL, appConfig.Services.Timeout)
	cache := session.NewCache(1)

	enrichment := app.NewEnrichmentService(resolver, enricher, cache, nil, appConfig.Enrichment, logger)
	runs := app.NewRunService(cache, nil, logger)

	ctx := context.Background()
	run, err := enrichment.Run(ctx, app.RunRequest{RawText: string(raw), SpeciesKey: *species})
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("Resolved %d of %d token(s); %d result row(s)\n",
		run.Diagnostics.Resolved, run.Diagnostics.Attempted, len(run.Raw))

	var table enrich.Table
	if *tau > 0 {
		table, err = runs.SetSimplify(ctx, run.ID, *tau)
		if err != nil {
			log.Fatalf("Simplify failed: %v", err)
		}
		fmt.Printf("Kept %d row(s) after redundancy reduction at tau=%v\n", len(table), *tau)
	} else {
		table, err = run.View()
		if err != nil {
			log.Fatalf("Assembly failed: %v", err)
		}
	}

	if err := excel.NewWriter().WriteFile(table, *xlsxPath); err != nil {
		log.Fatalf("Excel export failed: %v", err)
	}
	fmt.Printf("Wrote %s\n", *xlsxPath)

	if *chartPath != "" {
		chart, err := runs.Chart(ctx, run.ID, app.ChartOptions{})
		if err != nil {
			log.Fatalf("Chart payload failed: %v", err)
		}
		html, err := ui.RenderChartHTML(chart, *chartKind)
		if err != nil {
			log.Fatalf("Chart rendering failed: %v", err)
		}
		if err := os.WriteFile(*chartPath, html, 0o644); err != nil {
			log.Fatalf("Chart write failed: %v", err)
		}
		fmt.Printf("Wrote %s\n", *chartPath)
	}
}
