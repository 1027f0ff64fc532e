// Package fetcher retrieves feed documents using a Colly collector.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/metrics"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

const defaultTimeout = 15 * time.Second

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// FeedFetcher downloads feed documents. Shopify serves both feed formats as
// plain documents, so one GET per cycle is all it takes.
type FeedFetcher struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
}

// New builds a FeedFetcher.
func New(cfg Config, logger *zap.Logger) *FeedFetcher {
	base := colly.NewCollector(
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	return &FeedFetcher{
		cfg:    cfg,
		base:   base,
		logger: logger.Named("fetcher"),
	}
}

// Fetch executes a single HTTP GET of the feed link and returns the raw
// body. Failures are reported as feed fetch errors; they abort the cycle.
func (f *FeedFetcher) Fetch(ctx context.Context, feedLink string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", scrape.ErrFeedFetch, err)
	}

	collector := f.base.Clone()
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	collector.SetRequestTimeout(timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	start := time.Now()
	if err := collector.Visit(feedLink); err != nil && fetchErr == nil {
		fetchErr = err
	}
	collector.Wait()

	if fetchErr != nil {
		metrics.FeedFetches.WithLabelValues("error").Inc()
		f.logger.Warn("feed fetch failed",
			zap.String("feed", feedLink),
			zap.Error(fetchErr),
		)
		return nil, fmt.Errorf("%w: %s: %w", scrape.ErrFeedFetch, feedLink, fetchErr)
	}

	metrics.FeedFetches.WithLabelValues("ok").Inc()
	f.logger.Debug("feed fetched",
		zap.String("feed", feedLink),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}
