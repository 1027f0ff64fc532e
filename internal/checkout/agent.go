// Package checkout resolves purchasable offers and attempts reservations
// against the shop backend.
//
// The backend reports the result of a cart submission only through where it
// redirects the client, so the agent lets the HTTP client follow redirects
// and classifies the final URL.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/metrics"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// Agent attempts checkouts for matching in-stock offers.
type Agent struct {
	client *resty.Client
	logger *zap.Logger
}

// NewAgent builds an Agent with its own redirect-following client.
func NewAgent(timeout time.Duration, userAgent string, logger *zap.Logger) *Agent {
	client := resty.New().SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &Agent{
		client: client,
		logger: logger.Named("checkout"),
	}
}

// Attempt submits one cart reservation for the offer and returns the
// checkout link, or "" when the attempt produced nothing usable. Errors are
// folded into the outcome classification and logged; one ambiguous result
// must never abort the other offers.
func (a *Agent) Attempt(ctx context.Context, offer scrape.Offer, feedLink string) string {
	cartLink, err := scrape.CartLink(feedLink)
	if err != nil {
		a.logger.Error("cart link unresolvable", zap.String("feed", feedLink), zap.Error(err))
		return ""
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			fmt.Sprintf("updates[%s]", offer.OfferID): "1",
			"address[country]":                        "United States",
			"address[province]":                       "Alabama",
			"address[zip]":                            "",
			"note":                                    "",
			"goto_pp":                                 "paypal_express",
		}).
		Post(cartLink)

	// The URL of the request that produced the final response is the
	// redirect target, even when the transport call itself errored.
	finalURL := ""
	if resp != nil && resp.RawResponse != nil &&
		resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}

	outcome, link := scrape.ClassifyCheckout(finalURL, err)
	metrics.CheckoutAttempts.WithLabelValues(outcome.String()).Inc()

	fields := []zap.Field{
		zap.String("offer", offer.OfferID),
		zap.String("offer_title", offer.Title),
		zap.String("final_url", finalURL),
	}
	switch outcome {
	case scrape.OutcomeSuccess:
		a.logger.Info("checkout reserved", fields...)
	case scrape.OutcomeAlternatePayment:
		a.logger.Info("checkout redirected to alternate payment", fields...)
	case scrape.OutcomeOutOfStock:
		a.logger.Info("offer out of stock", fields...)
	case scrape.OutcomeUnexpected:
		a.logger.Error("unexpected checkout redirect", fields...)
	case scrape.OutcomeTransportError:
		a.logger.Warn("checkout transport error", append(fields, zap.Error(err))...)
	}
	return link
}

// ReserveAll filters the offers down to the ones eligible for the match and
// attempts them all concurrently. The returned slice contains the subset
// that yielded a checkout link; its order is not significant.
func (a *Agent) ReserveAll(ctx context.Context, match scrape.Match, offers []scrape.Offer, feedLink string) []scrape.ReservedOffer {
	matching := scrape.MatchingOffers(match.Search, offers)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		reserved []scrape.ReservedOffer
	)
	for _, offer := range matching {
		wg.Add(1)
		go func(offer scrape.Offer) {
			defer wg.Done()
			link := a.Attempt(ctx, offer, feedLink)
			if link == "" {
				return
			}
			mu.Lock()
			reserved = append(reserved, scrape.ReservedOffer{Offer: offer, CheckoutLink: link})
			mu.Unlock()
		}(offer)
	}
	wg.Wait()
	return reserved
}
