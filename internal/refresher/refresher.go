package refresher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/holdings"
	"github.com/fortune-cookies-ai/fc-backend/internal/leaderboard"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
)

// Config holds the refresher settings
type Config struct {
	Interval time.Duration
	PoolSize int
}

// Refresher periodically re-warms the holder snapshot and every known
// holdings record so interactive requests mostly hit warm caches.
type Refresher struct {
	resolver  holdings.Resolver
	builder   leaderboard.Builder
	publisher events.Publisher
	clock     adapter.Clock
	cfg       Config

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// New creates a cache refresher
func New(resolver holdings.Resolver, builder leaderboard.Builder, publisher events.Publisher, clock adapter.Clock, cfg Config) *Refresher {
	return &Refresher{
		resolver:  resolver,
		builder:   builder,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the refresher's name for logging and identification
func (r *Refresher) Name() string {
	return "cache-refresher"
}

// Start begins the refresh loop. This is a blocking call that runs until the
// context is canceled or Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("refresher already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting cache refresher",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("pool_size", r.cfg.PoolSize))

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Cache refresher stopping due to context cancellation")
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Cache refresher stop requested")
			return nil
		case <-r.clock.After(r.cfg.Interval):
			r.runCycle(ctx)
		}
	}
}

// Stop gracefully stops the refresher
func (r *Refresher) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping cache refresher")
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runCycle rebuilds the board once and re-resolves every known holdings key
func (r *Refresher) runCycle(ctx context.Context) {
	start := r.clock.Now()

	if _, err := r.builder.Build(ctx, nil, true); err != nil {
		logger.WarnCtx(ctx, "board refresh failed", zap.Error(err))
	} else if err := r.publisher.PublishEvent(ctx, &events.Event{
		Type: events.EventLeaderboardRefreshed,
	}); err != nil {
		logger.WarnCtx(ctx, "failed to publish refresh event", zap.Error(err))
	}

	keys := r.resolver.RecentKeys()
	if len(keys) > 0 {
		pool := pond.NewPool(r.cfg.PoolSize, pond.WithContext(ctx))
		for _, key := range keys {
			pool.Submit(func() {
				r.resolver.Resolve(ctx, key.Owner, key.Collection, true)
			})
		}
		pool.StopAndWait()
	}

	logger.DebugCtx(ctx, "refresh cycle finished",
		zap.Int("holdings_keys", len(keys)),
		zap.Duration("took", r.clock.Since(start)))
}
