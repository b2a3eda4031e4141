// Command scraper crawls the architect directory and exports the practice
// records to JSON and CSV for the import command.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"blocarch_backend/internal/scraper"
	"blocarch_backend/platform/logger"
)

func main() {
	var (
		rps          = flag.Float64("rps", 1.0, "outbound requests per second")
		maxPages     = flag.Int("max-pages", 0, "cap on listing pages per section (0 = no cap)")
		maxPractices = flag.Int("max-practices", 0, "cap on practice pages scraped (0 = all)")
		landscape    = flag.Bool("landscape", true, "include the landscape architects section")
		jsonOut      = flag.String("json", "architects.json", "JSON output path")
		csvOut       = flag.String("csv", "architects.csv", "CSV output path")
	)
	flag.Parse()

	// The scraper has no database dependency; the logger only needs the env.
	log := logger.New(os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(scraper.Config{
		RequestsPerSecond: *rps,
		MaxPages:          *maxPages,
		MaxPractices:      *maxPractices,
	}, log)

	records, err := s.Run(ctx, *landscape)
	if err != nil {
		log.Error("scrape failed", "error", err)
		os.Exit(1)
	}

	if err := scraper.WriteJSON(records, *jsonOut); err != nil {
		log.Error("failed to write JSON export", "path", *jsonOut, "error", err)
		os.Exit(1)
	}
	if err := scraper.WriteCSV(records, *csvOut); err != nil {
		log.Error("failed to write CSV export", "path", *csvOut, "error", err)
		os.Exit(1)
	}

	log.Info("scrape complete", "practices", len(records), "json", *jsonOut, "csv", *csvOut)
}
