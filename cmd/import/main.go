// Command import loads a scraper export (JSON array of practice records)
// into the database: upsert by URL, lead bootstrap per practice.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"blocarch_backend/internal/adapters"
	leadsrepo "blocarch_backend/internal/leads/repository"
	"blocarch_backend/internal/practices"
	"blocarch_backend/internal/practices/service"
	"blocarch_backend/platform/config"
	"blocarch_backend/platform/db"
	"blocarch_backend/platform/logger"
)

func main() {
	var (
		file   = flag.String("file", "architects.json", "path to the scraper JSON export")
		source = flag.String("source", "", "override source label for all records")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting practice import", "file", *file)

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	records, err := readRecords(*file)
	if err != nil {
		log.Error("failed to read import file", "file", *file, "error", err)
		panic("failed to read import file: " + err.Error())
	}
	if *source != "" {
		for i := range records {
			records[i].Source = *source
		}
	}

	leadPort := adapters.NewPracticeLeadPort(leadsrepo.New(pool))
	svc := practices.NewModule(pool, leadPort, log).Service()

	stats, err := svc.Import(ctx, records)
	if err != nil {
		log.Error("import aborted", "upserted", stats.Upserted, "skipped", stats.Skipped, "error", err)
		panic("import aborted: " + err.Error())
	}

	log.Info("import complete", "upserted", stats.Upserted, "skipped", stats.Skipped)
}

func readRecords(path string) ([]service.ImportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []service.ImportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
