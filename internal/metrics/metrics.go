// Package metrics registers the Prometheus counters for the scrape pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedFetches counts feed downloads, by result.
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sniper_feed_fetches_total",
		Help: "The total number of feed fetch attempts, labeled by result.",
	}, []string{"result"})

	// ProductsSeen counts products parsed out of feeds.
	ProductsSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_products_seen_total",
		Help: "The total number of products parsed from feeds.",
	})

	// ProductsMatched counts products accepted by a search.
	ProductsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_products_matched_total",
		Help: "The total number of products that matched a configured search.",
	})

	// CheckoutAttempts counts checkout attempts, by classified outcome.
	CheckoutAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sniper_checkout_attempts_total",
		Help: "The total number of checkout attempts, labeled by outcome.",
	}, []string{"outcome"})

	// NotificationsSent counts webhook messages delivered.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_notifications_sent_total",
		Help: "The total number of notifications delivered to the sink.",
	})

	// NotificationErrors counts webhook deliveries that failed.
	NotificationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_notification_errors_total",
		Help: "The total number of notification deliveries that failed.",
	})
)
