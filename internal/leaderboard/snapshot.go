package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
)

// holderSearchMaxPages bounds the per-wallet scan of the holder listing
// (up to 1000 holders at 50 per page)
const (
	holderSearchMaxPages = 21
	holderSearchLimit    = 50
)

// AggregatorConfig holds the holder snapshot settings
type AggregatorConfig struct {
	SnapshotTTL   time.Duration
	PageLimit     int
	MaxPages      int
	EarlyStopSize int
}

// HolderCount is the holder listing answer for one wallet
type HolderCount struct {
	Amount       uint64
	UniqueTokens uint64
}

// Aggregator maintains a short-lived collection-wide holder snapshot.
// Pages can repeat rows, so per-address amounts are merged by maximum.
type Aggregator struct {
	client blockvision.Client
	clock  adapter.Clock
	cfg    AggregatorConfig

	flight singleflight.Group

	mu       sync.RWMutex
	rows     []domain.HolderRow
	cachedAt time.Time
	haveRows bool
}

// NewAggregator creates a holder snapshot aggregator
func NewAggregator(client blockvision.Client, clock adapter.Clock, cfg AggregatorConfig) *Aggregator {
	return &Aggregator{
		client: client,
		clock:  clock,
		cfg:    cfg,
	}
}

// Holders returns the current holder snapshot for the collection, sorted by
// amount descending. fresh bypasses the snapshot cache. Concurrent callers
// share one upstream fetch.
func (a *Aggregator) Holders(ctx context.Context, collection domain.Address, fresh bool) ([]domain.HolderRow, error) {
	if !fresh {
		a.mu.RLock()
		if a.haveRows && a.clock.Since(a.cachedAt) < a.cfg.SnapshotTTL {
			rows := a.rows
			a.mu.RUnlock()
			return rows, nil
		}
		a.mu.RUnlock()
	}

	v, err, _ := a.flight.Do(collection.String(), func() (interface{}, error) {
		return a.fetch(context.WithoutCancel(ctx), collection)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.HolderRow), nil
}

// Previous returns the most recent successful snapshot regardless of age
func (a *Aggregator) Previous() ([]domain.HolderRow, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rows, a.haveRows
}

func (a *Aggregator) fetch(ctx context.Context, collection domain.Address) ([]domain.HolderRow, error) {
	byAddr := make(map[domain.Address]uint64)
	cursor := ""

	for page := 0; page < a.cfg.MaxPages; page++ {
		resp, err := a.client.CollectionHolders(ctx, collection, a.cfg.PageLimit, cursor)
		if err != nil {
			return nil, err
		}

		for _, h := range resp.Holders {
			if h.Amount > byAddr[h.Address] {
				byAddr[h.Address] = h.Amount
			}
		}

		cursor = resp.NextCursor
		if cursor == "" {
			break
		}
		// once enough unique holders are seen the top of the board is stable
		if len(byAddr) >= a.cfg.EarlyStopSize {
			break
		}
	}

	rows := make([]domain.HolderRow, 0, len(byAddr))
	for addr, mints := range byAddr {
		if mints == 0 {
			continue
		}
		rows = append(rows, domain.HolderRow{Address: addr, Mints: mints})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Mints != rows[j].Mints {
			return rows[i].Mints > rows[j].Mints
		}
		return rows[i].Address < rows[j].Address
	})

	a.mu.Lock()
	a.rows = rows
	a.cachedAt = a.clock.Now()
	a.haveRows = true
	a.mu.Unlock()

	return rows, nil
}

// HolderOf scans the holder listing for one wallet. It pages until the
// wallet is found or the scan budget runs out; ok=false means the wallet
// holds nothing (or was beyond the budget).
func (a *Aggregator) HolderOf(ctx context.Context, collection, wallet domain.Address) (HolderCount, bool, error) {
	cursor := ""
	for page := 0; page < holderSearchMaxPages; page++ {
		resp, err := a.client.CollectionHolders(ctx, collection, holderSearchLimit, cursor)
		if err != nil {
			return HolderCount{}, false, err
		}

		for _, h := range resp.Holders {
			if h.Address != wallet {
				continue
			}
			count := HolderCount{Amount: h.Amount, UniqueTokens: h.Amount}
			if h.UniqueTokens != nil {
				count.UniqueTokens = *h.UniqueTokens
			}
			return count, true, nil
		}

		cursor = resp.NextCursor
		if cursor == "" {
			break
		}
	}
	return HolderCount{}, false, nil
}
