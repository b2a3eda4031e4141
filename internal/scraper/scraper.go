// Package scraper crawls the architect directory: paginated listing pages
// feed practice URLs, each practice page is parsed into a Record ready for
// the importer.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"blocarch_backend/platform/logger"
)

const (
	BaseURL                = "https://architectdirectory.co.uk"
	ArchitectsListing      = BaseURL + "/architects"
	LandscapeListing       = BaseURL + "/landscape-architects"
	itemsPerPage           = 50
	maxEmptyPagesInARow    = 2
	maxListingPages        = 400
	practicePageGoroutines = 4
	userAgent              = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

type Config struct {
	// RequestsPerSecond paces every outbound request across all workers.
	RequestsPerSecond float64
	// MaxPages caps listing pagination (0 = the hard safety cap only).
	MaxPages int
	// MaxPractices caps how many practice pages get scraped (0 = all).
	MaxPractices int
}

type Scraper struct {
	client  *http.Client
	limiter *rate.Limiter
	cfg     Config
	log     *logger.Logger
}

func New(cfg Config, log *logger.Logger) *Scraper {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Scraper{
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cfg:     cfg,
		log:     log,
	}
}

func (s *Scraper) fetch(ctx context.Context, url string) (*html.Node, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	return html.Parse(resp.Body)
}

// CollectPracticeURLs walks a listing's pages until two consecutive pages
// yield nothing new, the configured page cap is hit, or the safety cap of
// 400 pages is reached. The result is sorted for a stable crawl order.
func (s *Scraper) CollectPracticeURLs(ctx context.Context, listingURL string) ([]string, error) {
	seen := map[string]struct{}{}
	var urls []string
	emptyPages := 0

	maxPages := maxListingPages
	if s.cfg.MaxPages > 0 && s.cfg.MaxPages < maxPages {
		maxPages = s.cfg.MaxPages
	}

	for page := 1; page <= maxPages; page++ {
		pageURL := fmt.Sprintf("%s/?ipp=%d", listingURL, itemsPerPage)
		if page > 1 {
			pageURL = fmt.Sprintf("%s/?p=%d&ipp=%d", listingURL, page, itemsPerPage)
		}

		doc, err := s.fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("listing page fetch failed", "page", page, "url", pageURL, "error", err)
			break
		}

		fresh := 0
		for _, u := range extractPracticeLinks(doc, BaseURL) {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
			fresh++
		}
		s.log.Info("listing page scraped", "page", page, "new", fresh, "total", len(urls))

		if fresh == 0 {
			emptyPages++
			if emptyPages >= maxEmptyPagesInARow {
				break
			}
		} else {
			emptyPages = 0
		}
	}

	sort.Strings(urls)
	return urls, nil
}

// ScrapePractices fetches and parses every practice page, a few at a time.
// Failed pages are logged and skipped; the output keeps the input order.
func (s *Scraper) ScrapePractices(ctx context.Context, urls []string) ([]Record, error) {
	if s.cfg.MaxPractices > 0 && len(urls) > s.cfg.MaxPractices {
		urls = urls[:s.cfg.MaxPractices]
	}

	results := make([]*Record, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(practicePageGoroutines)
	for i, u := range urls {
		g.Go(func() error {
			doc, err := s.fetch(gctx, u)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Warn("practice page fetch failed", "url", u, "error", err)
				return nil
			}
			rec := parsePractice(u, doc)
			mu.Lock()
			results[i] = &rec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records, nil
}

// Run crawls both listings, dedupes the combined URL set, and scrapes every
// practice page.
func (s *Scraper) Run(ctx context.Context, includeLandscape bool) ([]Record, error) {
	urls, err := s.CollectPracticeURLs(ctx, ArchitectsListing)
	if err != nil {
		return nil, err
	}
	s.log.Info("architect listing crawled", "practices", len(urls))

	if includeLandscape {
		landscape, err := s.CollectPracticeURLs(ctx, LandscapeListing)
		if err != nil {
			return nil, err
		}
		s.log.Info("landscape listing crawled", "practices", len(landscape))

		seen := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			seen[u] = struct{}{}
		}
		for _, u := range landscape {
			if _, ok := seen[u]; !ok {
				seen[u] = struct{}{}
				urls = append(urls, u)
			}
		}
	}

	s.log.Info("scraping practice pages", "count", len(urls))
	return s.ScrapePractices(ctx, urls)
}
