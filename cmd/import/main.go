package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/illineats/backend/config"
	"github.com/illineats/backend/internal/database"
	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

func main() {
	path := flag.String("file", "", "Scraped menu JSON file (reads stdin when empty or \"-\")")
	prune := flag.Bool("prune", false, "Delete meal entries dated before today after importing")
	pruneOnly := flag.Bool("prune-only", false, "Only delete past meal entries")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}
	sched, err := schedule.Load(cfg.ScheduleFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dining schedule")
	}

	importer := service.NewImportService(db, sched)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if !*pruneOnly {
		foods, err := readFoods(*path)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to read import document")
		}
		summary, err := importer.Import(ctx, foods)
		if err != nil {
			logging.Fatal().Err(err).Msg("Import failed")
		}
		fmt.Printf("foods created: %d, matched: %d, entries created: %d, skipped: %d\n",
			summary.FoodsCreated, summary.FoodsMatched, summary.EntriesCreated, summary.EntriesSkipped)
	}

	if *prune || *pruneOnly {
		summary, err := importer.PrunePast(ctx)
		if err != nil {
			logging.Fatal().Err(err).Msg("Prune failed")
		}
		fmt.Printf("entries deleted: %d (before %s)\n", summary.EntriesDeleted, summary.Before)
	}
}

// readFoods decodes and validates a JSON array of scraped foods
func readFoods(path string) ([]types.ImportFood, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var foods []types.ImportFood
	if err := json.NewDecoder(r).Decode(&foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}

	validate := validator.New()
	validate.SetTagName("binding")
	for i := range foods {
		if err := validate.Struct(&foods[i]); err != nil {
			return nil, fmt.Errorf("food %d (%q): %w", i, foods[i].Name, err)
		}
	}
	return foods, nil
}
