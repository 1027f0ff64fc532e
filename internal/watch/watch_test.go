package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/luqmaan/oihclamirt/internal/pipeline"
	"github.com/luqmaan/oihclamirt/internal/scrape"
)

type countingRunner struct {
	mu     sync.Mutex
	cycles map[string]int
}

func (r *countingRunner) RunCycle(_ context.Context, site pipeline.Site, _ []scrape.Search) pipeline.CycleStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cycles == nil {
		r.cycles = make(map[string]int)
	}
	r.cycles[site.FeedLink]++
	return pipeline.CycleStats{}
}

func (r *countingRunner) count(feedLink string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles[feedLink]
}

func TestSupervisorPollsEverySite(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	sites := []pipeline.Site{
		{FeedLink: "https://a.example.com/collections/all.oembed", Format: scrape.FormatOEmbed},
		{FeedLink: "https://b.example.com/collections/all.atom", Format: scrape.FormatAtom},
	}
	sup := New(runner, sites, nil, Config{
		MinDelay:        time.Millisecond,
		MaxDelay:        2 * time.Millisecond,
		CyclesPerSecond: 1000,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runner.count(sites[0].FeedLink) >= 2 && runner.count(sites[1].FeedLink) >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
}

func TestSupervisorStopsWhenRateLimited(t *testing.T) {
	t.Parallel()

	runner := &countingRunner{}
	sup := New(runner, []pipeline.Site{{FeedLink: "https://a.example.com"}}, nil, Config{
		// A tiny rate forces the loop to park inside limiter.Wait, where
		// cancellation must still be honored promptly.
		CyclesPerSecond: 0.001,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop while waiting on the limiter")
	}
}

func TestNextDelayStaysWithinBounds(t *testing.T) {
	t.Parallel()

	sup := New(&countingRunner{}, nil, nil, Config{
		MinDelay:        3 * time.Second,
		MaxDelay:        15 * time.Second,
		CyclesPerSecond: 1,
	}, zap.NewNop())

	for i := 0; i < 100; i++ {
		d := sup.nextDelay()
		assert.GreaterOrEqual(t, d, 3*time.Second)
		assert.Less(t, d, 15*time.Second)
	}
}

func TestNextDelayDegenerateBounds(t *testing.T) {
	t.Parallel()

	sup := New(&countingRunner{}, nil, nil, Config{
		MinDelay: 5 * time.Second,
		MaxDelay: 5 * time.Second,
	}, zap.NewNop())
	assert.Equal(t, 5*time.Second, sup.nextDelay())
}
