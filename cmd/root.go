// Package cmd wires the Cobra CLI around the scrape pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/checkout"
	"github.com/luqmaan/oihclamirt/internal/config"
	"github.com/luqmaan/oihclamirt/internal/fetcher"
	"github.com/luqmaan/oihclamirt/internal/logging"
	"github.com/luqmaan/oihclamirt/internal/notify"
	"github.com/luqmaan/oihclamirt/internal/pipeline"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oihclamirt",
		Short: "Watches Shopify product feeds and reserves matching drops.",
		Long: `oihclamirt polls Shopify oEmbed and Atom product feeds, matches listings
against configured keyword searches, reserves matching in-stock sizes through
the cart endpoint, and posts the checkout links to a Slack webhook.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the config file")
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, the search list, and the logger shared by both
// commands.
func setup() (config.Config, []scrape.Search, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}

	searches, err := config.LoadSearches(cfg.SearchesFile)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load searches: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	return cfg, searches, logger, nil
}

// buildRunner assembles the pipeline collaborators from configuration.
func buildRunner(cfg config.Config, logger *zap.Logger) *pipeline.Runner {
	feedFetcher := fetcher.New(fetcher.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout(),
	}, logger)
	offerClient := checkout.NewOfferClient(cfg.HTTP.Timeout(), cfg.HTTP.UserAgent, logger)
	agent := checkout.NewAgent(cfg.HTTP.Timeout(), cfg.HTTP.UserAgent, logger)
	notifier := notify.NewSlack(cfg.Slack.WebhookURL, cfg.HTTP.Timeout(), logger)
	return pipeline.NewRunner(feedFetcher, offerClient, agent, notifier, logger)
}

func sitesFromConfig(cfg config.Config) []pipeline.Site {
	sites := make([]pipeline.Site, 0, len(cfg.Sites))
	for _, site := range cfg.Sites {
		sites = append(sites, pipeline.Site{
			FeedLink: site.FeedLink(),
			Format:   site.Format(),
		})
	}
	return sites
}
