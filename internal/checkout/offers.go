package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// OfferClient resolves the purchasable offers of a product. oEmbed feeds
// embed them; Atom products need a per-product lookup.
type OfferClient struct {
	client *resty.Client
	logger *zap.Logger
}

// NewOfferClient builds an OfferClient.
func NewOfferClient(timeout time.Duration, userAgent string, logger *zap.Logger) *OfferClient {
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &OfferClient{
		client: client,
		logger: logger.Named("offers"),
	}
}

// Resolve returns the product's offers, fetching {productLink}.oembed when
// the feed did not embed them. Failures are offer fetch errors, isolated to
// this product by the caller.
func (c *OfferClient) Resolve(ctx context.Context, product scrape.Product) ([]scrape.Offer, error) {
	if product.Offers != nil {
		return product.Offers, nil
	}

	lookupURL := product.ProductLink + ".oembed"
	var payload struct {
		Offers []scrape.Offer `json:"offers"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(lookupURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", scrape.ErrOfferFetch, lookupURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s: status %d", scrape.ErrOfferFetch, lookupURL, resp.StatusCode())
	}
	if payload.Offers == nil {
		return nil, fmt.Errorf("%w: %s: response has no offers field", scrape.ErrOfferFetch, lookupURL)
	}

	c.logger.Debug("offers resolved",
		zap.String("product", product.ID),
		zap.Int("offers", len(payload.Offers)),
	)
	return payload.Offers, nil
}
