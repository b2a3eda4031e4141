package service

import (
	"context"
	"strings"

	"blocarch_backend/internal/practices/repository"
)

// ImportRecord is one scraped practice as exported by the directory scraper.
type ImportRecord struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	Socials     []string `json:"socials"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Contact     string   `json:"contact"`
	Description string   `json:"description"`
	YearsActive string   `json:"years_active"`
	Staff       string   `json:"staff"`
	Awards      []string `json:"awards"`
	Source      string   `json:"source"`
}

type ImportStats struct {
	Upserted int
	Skipped  int
}

// Import upserts scraped records keyed by URL and bootstraps a lead for each.
// A record without a URL cannot be keyed and is skipped with a warning; one
// bad record never aborts the batch.
func (s *Service) Import(ctx context.Context, records []ImportRecord) (ImportStats, error) {
	var stats ImportStats
	for _, rec := range records {
		url := strings.TrimSpace(rec.URL)
		if url == "" {
			s.log.Warn("skipping import record without url", "name", rec.Name)
			stats.Skipped++
			continue
		}

		practice, err := s.repo.Upsert(ctx, repository.UpsertParams{
			URL:         url,
			Name:        rec.Name,
			Website:     nilIfEmpty(rec.Website),
			Socials:     rec.Socials,
			Email:       nilIfEmpty(rec.Email),
			Address:     nilIfEmpty(rec.Address),
			Contact:     nilIfEmpty(rec.Contact),
			Description: nilIfEmpty(rec.Description),
			YearsActive: nilIfEmpty(rec.YearsActive),
			Staff:       nilIfEmpty(rec.Staff),
			Awards:      rec.Awards,
			Source:      rec.Source,
		})
		if err != nil {
			return stats, err
		}
		if _, err := s.leads.EnsureForPractice(ctx, practice.ID); err != nil {
			return stats, err
		}
		stats.Upserted++
	}
	return stats, nil
}

func nilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
