// Package watch polls a set of sites continuously, one cycle at a time.
//
// The supervisor owns the loop, pacing, and shutdown; the pipeline stays a
// pure "run one cycle" operation.
package watch

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/luqmaan/oihclamirt/internal/pipeline"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

// CycleRunner runs one scrape cycle for a site.
type CycleRunner interface {
	RunCycle(ctx context.Context, site pipeline.Site, searches []scrape.Search) pipeline.CycleStats
}

// Config controls cycle pacing. The random delay between a site's cycles
// keeps the polling pattern from looking mechanical; the limiter caps the
// aggregate rate across all sites.
type Config struct {
	MinDelay        time.Duration
	MaxDelay        time.Duration
	CyclesPerSecond float64
}

// Supervisor drives continuous scraping of the configured sites.
type Supervisor struct {
	runner   CycleRunner
	sites    []pipeline.Site
	searches []scrape.Search
	limiter  *rate.Limiter
	cfg      Config
	logger   *zap.Logger
}

// New builds a Supervisor.
func New(runner CycleRunner, sites []pipeline.Site, searches []scrape.Search, cfg Config, logger *zap.Logger) *Supervisor {
	limit := rate.Limit(cfg.CyclesPerSecond)
	if cfg.CyclesPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Supervisor{
		runner:   runner,
		sites:    sites,
		searches: searches,
		limiter:  rate.NewLimiter(limit, 1),
		cfg:      cfg,
		logger:   logger.Named("watch"),
	}
}

// Run watches every site until the context finishes, one goroutine per
// site. It blocks until all site loops have stopped.
func (s *Supervisor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, site := range s.sites {
		wg.Add(1)
		go func(site pipeline.Site) {
			defer wg.Done()
			s.watchSite(ctx, site)
		}(site)
	}
	wg.Wait()
}

func (s *Supervisor) watchSite(ctx context.Context, site pipeline.Site) {
	logger := s.logger.With(zap.String("feed", site.FeedLink))
	logger.Info("watching site")
	defer logger.Info("stopped watching site")

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		s.runner.RunCycle(ctx, site, s.searches)

		delay := s.nextDelay()
		logger.Debug("sleeping between cycles", zap.Duration("delay", delay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

func (s *Supervisor) nextDelay() time.Duration {
	if s.cfg.MaxDelay <= s.cfg.MinDelay {
		return s.cfg.MinDelay
	}
	return s.cfg.MinDelay + time.Duration(rand.Int63n(int64(s.cfg.MaxDelay-s.cfg.MinDelay)))
}
