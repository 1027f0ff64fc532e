// Package pipeline orchestrates one scrape cycle: fetch the feed, match
// products against the configured searches, resolve offers, attempt
// checkouts, and notify.
package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/metrics"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// FeedFetcher downloads the raw feed document.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedLink string) ([]byte, error)
}

// OfferResolver returns a product's purchasable offers.
type OfferResolver interface {
	Resolve(ctx context.Context, product scrape.Product) ([]scrape.Offer, error)
}

// CheckoutAgent reserves the eligible offers of a matched product.
type CheckoutAgent interface {
	ReserveAll(ctx context.Context, match scrape.Match, offers []scrape.Offer, feedLink string) []scrape.ReservedOffer
}

// Notifier delivers the reservation message for one product.
type Notifier interface {
	Notify(ctx context.Context, match scrape.Match, feedLink string, reserved []scrape.ReservedOffer) error
}

// Site identifies one feed to scrape.
type Site struct {
	FeedLink string
	Format   scrape.FeedFormat
}

// CycleStats summarizes one cycle. The cycle itself never fails; callers
// observe failures through logs and these counters.
type CycleStats struct {
	ProductsSeen    int
	ProductsMatched int
	OffersReserved  int
	Notifications   int
	ProductErrors   int
}

// Runner executes scrape cycles against a fixed set of collaborators.
type Runner struct {
	fetcher  FeedFetcher
	offers   OfferResolver
	agent    CheckoutAgent
	notifier Notifier
	logger   *zap.Logger
}

// NewRunner wires a Runner.
func NewRunner(fetcher FeedFetcher, offers OfferResolver, agent CheckoutAgent, notifier Notifier, logger *zap.Logger) *Runner {
	return &Runner{
		fetcher:  fetcher,
		offers:   offers,
		agent:    agent,
		notifier: notifier,
		logger:   logger.Named("pipeline"),
	}
}

// RunCycle performs one best-effort pass over a site. Feed-level failures
// abort the cycle since there is nothing to process; every later failure is
// confined to its own product branch.
func (r *Runner) RunCycle(ctx context.Context, site Site, searches []scrape.Search) CycleStats {
	logger := r.logger.With(
		zap.String("cycle", uuid.NewString()),
		zap.String("feed", site.FeedLink),
	)

	var stats CycleStats

	raw, err := r.fetcher.Fetch(ctx, site.FeedLink)
	if err != nil {
		logger.Error("cycle aborted, feed unavailable", zap.Error(err))
		return stats
	}

	products, err := scrape.ParseFeed(raw, site.Format, site.FeedLink)
	if err != nil {
		logger.Error("cycle aborted, feed unparseable", zap.Error(err))
		return stats
	}
	stats.ProductsSeen = len(products)
	metrics.ProductsSeen.Add(float64(len(products)))

	matches := scrape.MatchProducts(products, searches)
	stats.ProductsMatched = len(matches)
	metrics.ProductsMatched.Add(float64(len(matches)))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, match := range matches {
		wg.Add(1)
		go func(match scrape.Match) {
			defer wg.Done()
			reserved, notified, failed := r.processProduct(ctx, match, site.FeedLink, logger)
			mu.Lock()
			stats.OffersReserved += reserved
			if notified {
				stats.Notifications++
			}
			if failed {
				stats.ProductErrors++
			}
			mu.Unlock()
		}(match)
	}
	wg.Wait()

	logger.Info("cycle finished",
		zap.Int("products_seen", stats.ProductsSeen),
		zap.Int("products_matched", stats.ProductsMatched),
		zap.Int("offers_reserved", stats.OffersReserved),
		zap.Int("notifications", stats.Notifications),
		zap.Int("product_errors", stats.ProductErrors),
	)
	return stats
}

// processProduct runs the offer-resolve, checkout, notify sequence for one
// matched product. Errors are logged and reported in the return values only;
// nothing here may affect a sibling product's branch.
func (r *Runner) processProduct(ctx context.Context, match scrape.Match, feedLink string, logger *zap.Logger) (reserved int, notified, failed bool) {
	offers, err := r.offers.Resolve(ctx, match.Product)
	if err != nil {
		logger.Warn("product skipped, offers unavailable",
			zap.String("product", match.Product.ID),
			zap.Error(err),
		)
		return 0, false, true
	}

	reservedOffers := r.agent.ReserveAll(ctx, match, offers, feedLink)

	if err := r.notifier.Notify(ctx, match, feedLink, reservedOffers); err != nil {
		logger.Warn("notification failed",
			zap.String("product", match.Product.ID),
			zap.Error(err),
		)
		return len(reservedOffers), false, true
	}
	return len(reservedOffers), len(reservedOffers) > 0, false
}
