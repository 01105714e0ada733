package dexscreener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/songzhibin97/pairscout/internal/configs"
	"github.com/songzhibin97/pairscout/internal/models"
)

// DexScreenerSource scrapes the new pairs table of dexscreener.com
type DexScreenerSource struct {
	pageURL string
	baseURL string
	opts    BrowserOptions
	logger  *slog.Logger

	render func(ctx context.Context, url string, opts BrowserOptions) (string, error)
}

func NewDexScreenerSource(cfg configs.ScraperConfig, logger *slog.Logger) *DexScreenerSource {
	return &DexScreenerSource{
		pageURL: cfg.PageURL,
		baseURL: cfg.BaseURL,
		opts: BrowserOptions{
			Bin:            cfg.BrowserBin,
			Headless:       cfg.Headless,
			Width:          cfg.ViewportWidth,
			Height:         cfg.ViewportHeight,
			UserAgent:      cfg.UserAgent,
			Locale:         cfg.Locale,
			Timezone:       cfg.Timezone,
			NavTimeout:     configs.ParseDuration(cfg.NavTimeout, 30*time.Second),
			RowWaitTimeout: configs.ParseDuration(cfg.RowWaitTimeout, 30*time.Second),
			ScrollPause:    configs.ParseDuration(cfg.ScrollPause, 2*time.Second),
		},
		logger: logger,
		render: renderPage,
	}
}

func (s *DexScreenerSource) Name() string {
	return "dexscreener"
}

// Extract renders the page and parses every row. Rows that fail are logged and skipped.
// The render is bounded by the configured timings even when ctx never expires.
func (s *DexScreenerSource) Extract(ctx context.Context) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.budget())
	defer cancel()

	html, err := s.render(ctx, s.pageURL, s.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", s.pageURL, err)
	}

	listings, err := ParseRows(html, s.baseURL, func(index int, err error) {
		s.logger.Warn("skipping row", "source", s.Name(), "row", index, "err", err)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("parsed rows", "source", s.Name(), "count", len(listings))
	return listings, nil
}
