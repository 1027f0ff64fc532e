// Package config loads and validates scraper configuration via Viper.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Sites        []SiteConfig  `mapstructure:"sites"`
	SearchesFile string        `mapstructure:"searches_file"`
	Slack        SlackConfig   `mapstructure:"slack"`
	HTTP         HTTPConfig    `mapstructure:"http"`
	Watch        WatchConfig   `mapstructure:"watch"`
	Server       ServerConfig  `mapstructure:"server"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

// SiteConfig names the feed(s) of one shop. When both links are present the
// oEmbed feed takes precedence; it embeds offers and saves a lookup per
// product.
type SiteConfig struct {
	OEmbed string `mapstructure:"oembed"`
	Atom   string `mapstructure:"atom"`
}

// FeedLink returns the feed URL to scrape, oEmbed first.
func (s SiteConfig) FeedLink() string {
	if s.OEmbed != "" {
		return s.OEmbed
	}
	return s.Atom
}

// Format returns the wire format matching FeedLink.
func (s SiteConfig) Format() scrape.FeedFormat {
	if s.OEmbed != "" {
		return scrape.FormatOEmbed
	}
	return scrape.FormatAtom
}

// SlackConfig holds the notification sink webhook.
type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// HTTPConfig configures outbound HTTP behavior.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// Timeout converts the configured timeout into a duration.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WatchConfig governs the continuous polling supervisor.
type WatchConfig struct {
	MinDelaySeconds int     `mapstructure:"min_delay_seconds"`
	MaxDelaySeconds int     `mapstructure:"max_delay_seconds"`
	CyclesPerSecond float64 `mapstructure:"cycles_per_second"`
}

// ServerConfig controls the ops HTTP endpoint exposed while watching.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SNIPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("searches_file", "searches.json")
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("http.user_agent", "oihclamirt/0.1")
	v.SetDefault("watch.min_delay_seconds", 3)
	v.SetDefault("watch.max_delay_seconds", 15)
	v.SetDefault("watch.cycles_per_second", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Sites) == 0 {
		return fmt.Errorf("at least one site must be configured")
	}
	for i, site := range c.Sites {
		if site.OEmbed == "" && site.Atom == "" {
			return fmt.Errorf("sites[%d] needs an oembed or atom feed link", i)
		}
	}
	if c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack.webhook_url must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Watch.MinDelaySeconds < 0 || c.Watch.MaxDelaySeconds < c.Watch.MinDelaySeconds {
		return fmt.Errorf("watch delay bounds must satisfy 0 <= min <= max")
	}
	if c.Watch.CyclesPerSecond <= 0 {
		return fmt.Errorf("watch.cycles_per_second must be > 0")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return nil
}

// LoadSearches reads the search definitions from a JSON file. The file is
// an array of {keywords, exclude, sizes} objects.
func LoadSearches(path string) ([]scrape.Search, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read searches file: %w", err)
	}
	var searches []scrape.Search
	if err := json.Unmarshal(raw, &searches); err != nil {
		return nil, fmt.Errorf("decode searches file: %w", err)
	}
	if len(searches) == 0 {
		return nil, fmt.Errorf("searches file %s contains no searches", path)
	}
	return searches, nil
}
