// Package notify formats reservation messages and delivers them to a
// Slack-compatible webhook.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/metrics"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// SlackNotifier delivers one message per product with reserved offers.
type SlackNotifier struct {
	client     *resty.Client
	webhookURL string
	logger     *zap.Logger
}

// NewSlack builds a SlackNotifier for the given webhook URL.
func NewSlack(webhookURL string, timeout time.Duration, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:     resty.New().SetTimeout(timeout),
		webhookURL: webhookURL,
		logger:     logger.Named("notify"),
	}
}

type message struct {
	Text string `json:"text"`
}

// Notify posts a message covering the product's reserved offers. With zero
// reservations it sends nothing; a "no matching sizes in stock" message
// would fire on every cycle the product stays sold out.
func (n *SlackNotifier) Notify(ctx context.Context, match scrape.Match, feedLink string, reserved []scrape.ReservedOffer) error {
	if len(reserved) == 0 {
		return nil
	}

	text := BuildMessage(match, feedLink, reserved)
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(message{Text: text}).
		Post(n.webhookURL)
	if err != nil {
		metrics.NotificationErrors.Inc()
		return fmt.Errorf("%w: %w", scrape.ErrNotify, err)
	}
	if resp.IsError() {
		metrics.NotificationErrors.Inc()
		return fmt.Errorf("%w: webhook returned status %d", scrape.ErrNotify, resp.StatusCode())
	}

	metrics.NotificationsSent.Inc()
	n.logger.Info("notification sent",
		zap.String("product", match.Product.ID),
		zap.String("title", match.Product.Title),
		zap.Int("reserved_offers", len(reserved)),
	)
	return nil
}

// BuildMessage renders the notification text: a product header followed by
// one line per reserved offer with its price, checkout link, and a one-click
// add-to-cart link.
func BuildMessage(match scrape.Match, feedLink string, reserved []scrape.ReservedOffer) string {
	lines := []string{
		fmt.Sprintf("*%s*", match.Product.Title),
		fmt.Sprintf("*Feed:* %s", feedLink),
		fmt.Sprintf("*Link:* %s", match.Product.ProductLink),
		fmt.Sprintf("*Keywords:* %s", strings.Join(match.Search.Keywords, " ")),
	}
	for _, offer := range reserved {
		addToCart, err := scrape.AddToCartLink(feedLink, offer.OfferID)
		if err != nil {
			addToCart = ""
		}
		lines = append(lines, fmt.Sprintf("%s - $%s - %s - %s", offer.Title, offer.Price, offer.CheckoutLink, addToCart))
	}
	return EscapeMarkup(strings.Join(lines, "\n"))
}

// EscapeMarkup escapes the characters Slack treats as markup. Ampersands go
// first so the other replacements are not double-escaped. Every occurrence
// is replaced; see the tests for the history of this choice.
func EscapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
