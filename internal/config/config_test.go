package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luqmaan/oihclamirt/internal/scrape"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
sites:
  - oembed: https://shop.example.com/collections/all.oembed
  - atom: https://other.example.com/collections/all.atom
searches_file: /tmp/searches.json
slack:
  webhook_url: https://hooks.slack.com/services/T0/B0/XYZ
http:
  timeout_seconds: 30
  user_agent: test-agent
watch:
  min_delay_seconds: 5
  max_delay_seconds: 20
  cycles_per_second: 0.5
server:
  port: 9090
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(cfg.Sites))
	}
	if got := cfg.Sites[0].FeedLink(); got != "https://shop.example.com/collections/all.oembed" {
		t.Errorf("Sites[0].FeedLink() = %q", got)
	}
	if got := cfg.Sites[0].Format(); got != scrape.FormatOEmbed {
		t.Errorf("Sites[0].Format() = %q, want oembed", got)
	}
	if got := cfg.Sites[1].Format(); got != scrape.FormatAtom {
		t.Errorf("Sites[1].Format() = %q, want atom", got)
	}
	if cfg.Slack.WebhookURL != "https://hooks.slack.com/services/T0/B0/XYZ" {
		t.Errorf("unexpected webhook url %q", cfg.Slack.WebhookURL)
	}
	if got := cfg.HTTP.Timeout(); got != 30*time.Second {
		t.Errorf("HTTP.Timeout() = %v, want 30s", got)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Development {
		t.Error("expected logging.development to be overridden to false")
	}
}

func TestOEmbedTakesPrecedence(t *testing.T) {
	t.Parallel()

	site := SiteConfig{
		OEmbed: "https://shop.example.com/collections/all.oembed",
		Atom:   "https://shop.example.com/collections/all.atom",
	}
	if got := site.FeedLink(); got != site.OEmbed {
		t.Errorf("FeedLink() = %q, want the oembed link", got)
	}
	if got := site.Format(); got != scrape.FormatOEmbed {
		t.Errorf("Format() = %q, want oembed", got)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	valid := Config{
		Sites: []SiteConfig{{OEmbed: "https://shop.example.com/collections/all.oembed"}},
		Slack: SlackConfig{WebhookURL: "https://hooks.slack.com/services/T0/B0/XYZ"},
		HTTP:  HTTPConfig{TimeoutSeconds: 15},
		Watch: WatchConfig{MinDelaySeconds: 3, MaxDelaySeconds: 15, CyclesPerSecond: 1},
		Server: ServerConfig{
			Port: 8080,
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sites", func(c *Config) { c.Sites = nil }},
		{"site without feed", func(c *Config) { c.Sites = []SiteConfig{{}} }},
		{"no webhook", func(c *Config) { c.Slack.WebhookURL = "" }},
		{"zero timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }},
		{"inverted delay bounds", func(c *Config) { c.Watch.MinDelaySeconds = 20; c.Watch.MaxDelaySeconds = 5 }},
		{"zero rate", func(c *Config) { c.Watch.CyclesPerSecond = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadSearches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "searches.json")
	searchesJSON := `[
		{"keywords": ["melange"], "exclude": ["hoodie"], "sizes": ["*"]},
		{"keywords": ["crewneck"], "exclude": [], "sizes": ["M", "L"]}
	]`
	if err := os.WriteFile(path, []byte(searchesJSON), 0o600); err != nil {
		t.Fatalf("failed to write searches: %v", err)
	}

	searches, err := LoadSearches(path)
	if err != nil {
		t.Fatalf("LoadSearches() error = %v", err)
	}
	if len(searches) != 2 {
		t.Fatalf("expected 2 searches, got %d", len(searches))
	}
	if searches[0].Keywords[0] != "melange" || searches[0].Sizes[0] != "*" {
		t.Errorf("unexpected first search: %+v", searches[0])
	}
}

func TestLoadSearchesRejectsEmptyAndMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0o600); err != nil {
		t.Fatalf("failed to write searches: %v", err)
	}
	if _, err := LoadSearches(empty); err == nil {
		t.Error("expected an error for an empty searches file")
	}
	if _, err := LoadSearches(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing searches file")
	}
}
