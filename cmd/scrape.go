package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape cycle over every configured site and exit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, searches, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush

			runner := buildRunner(cfg, logger)
			for _, site := range sitesFromConfig(cfg) {
				stats := runner.RunCycle(cmd.Context(), site, searches)
				logger.Info("site scraped",
					zap.String("feed", site.FeedLink),
					zap.Int("products_matched", stats.ProductsMatched),
					zap.Int("offers_reserved", stats.OffersReserved),
					zap.Int("notifications", stats.Notifications),
				)
			}
			return nil
		},
	}
}
