package holdings

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

const sourceAccountNFTs = "blockvision/account-nfts"

// Pacing between consecutive page fetches
const (
	pageJitterMin = 70 * time.Millisecond
	pageJitterMax = 180 * time.Millisecond
)

// Result is the resolved holdings envelope for one owner and collection.
// OK=false with no token IDs is a soft empty: the owner may well hold
// tokens, but no trustworthy data is available yet.
type Result struct {
	OK                     bool    `json:"ok"`
	Source                 string  `json:"source,omitempty"`
	Stale                  bool    `json:"stale,omitempty"`
	TokenIDs               []int64 `json:"tokenIds,omitempty"`
	TokenIDsFlat           []int64 `json:"tokenIdsFlat,omitempty"`
	LastGoodAt             int64   `json:"lastGoodAt,omitempty"`
	CollectionCountScanned int     `json:"collectionCountScanned,omitempty"`
	PagesFetched           int     `json:"pagesFetched,omitempty"`
	Error                  string  `json:"error,omitempty"`
}

// Config holds the resolver cache and pagination settings
type Config struct {
	CacheTTL  time.Duration
	CacheSize int
	MaxPages  int
	PageDelay time.Duration
}

// Resolver defines the interface for holdings resolution to enable mocking
//
//go:generate mockgen -source=resolver.go -destination=../mocks/holdings_resolver.go -package=mocks -mock_names=Resolver=MockHoldingsResolver
type Resolver interface {
	// Resolve returns the current holdings envelope for one owner and
	// collection. fresh bypasses the ephemeral cache.
	Resolve(ctx context.Context, owner, collection domain.Address, fresh bool) *Result

	// RecentKeys lists every owner/collection pair with known holdings
	RecentKeys() []domain.HoldingKey
}

type resolver struct {
	client   blockvision.Client
	lastGood *store.LastGoodStore
	clock    adapter.Clock
	cfg      Config

	cache  *expirable.LRU[domain.HoldingKey, *Result]
	flight singleflight.Group
}

// NewResolver creates a holdings resolver
func NewResolver(client blockvision.Client, lastGood *store.LastGoodStore, clock adapter.Clock, cfg Config) Resolver {
	return &resolver{
		client:   client,
		lastGood: lastGood,
		clock:    clock,
		cfg:      cfg,
		cache:    expirable.NewLRU[domain.HoldingKey, *Result](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// Resolve returns the current holdings envelope for one owner and collection
func (r *resolver) Resolve(ctx context.Context, owner, collection domain.Address, fresh bool) *Result {
	key := domain.HoldingKey{Owner: owner, Collection: collection}

	if !fresh {
		if cached, ok := r.cache.Get(key); ok {
			return cached
		}
	}

	// Coalesce concurrent fetches for the same key. The shared fetch runs on
	// a detached context so one caller hanging up does not fail the rest.
	v, _, _ := r.flight.Do(key.String(), func() (interface{}, error) {
		return r.fetch(context.WithoutCancel(ctx), key), nil
	})
	return v.(*Result)
}

// RecentKeys lists every owner/collection pair with known holdings
func (r *resolver) RecentKeys() []domain.HoldingKey {
	return r.lastGood.Keys()
}

// fetch walks the paginated account NFT listing and applies the sticky
// last-good rules: a successful non-empty read updates the durable record
// and the cache, while failures and empty reads fall back to the last-good
// state without ever erasing it.
func (r *resolver) fetch(ctx context.Context, key domain.HoldingKey) *Result {
	var collections []blockvision.ContractHoldings
	pagesFetched := 0
	pageIndex := 1

	for pageIndex <= r.cfg.MaxPages {
		page, err := r.client.AccountNFTs(ctx, key.Owner, pageIndex)
		if err != nil {
			logger.WarnCtx(ctx, "holdings fetch failed",
				zap.String("key", key.String()),
				zap.Int("page", pageIndex),
				zap.Error(err))
			if stale := r.staleResult(key); stale != nil {
				return stale
			}
			return &Result{OK: false, Error: fmt.Sprintf("indexer error: %v", err)}
		}

		if len(page.Collections) > 0 {
			collections = append(collections, page.Collections...)
			pagesFetched++
		} else {
			break
		}

		if !page.HasNext {
			break
		}
		pageIndex = page.NextPageIndex

		select {
		case <-ctx.Done():
			if stale := r.staleResult(key); stale != nil {
				return stale
			}
			return &Result{OK: false, Error: ctx.Err().Error()}
		case <-r.clock.After(r.cfg.PageDelay + pageJitter()):
		}
	}

	tokenIDs, tokenIDsFlat := extractTokens(collections, key.Collection)

	if len(tokenIDs) > 0 {
		result := &Result{
			OK:                     true,
			Source:                 sourceAccountNFTs,
			TokenIDs:               tokenIDs,
			TokenIDsFlat:           tokenIDsFlat,
			CollectionCountScanned: len(collections),
			PagesFetched:           pagesFetched,
		}
		r.lastGood.Set(ctx, key, tokenIDs, tokenIDsFlat)
		r.cache.Add(key, result)
		return result
	}

	// Empty fetch never clears last-good
	if stale := r.staleResult(key); stale != nil {
		return stale
	}
	return &Result{OK: false, Error: "no token IDs available yet"}
}

func (r *resolver) staleResult(key domain.HoldingKey) *Result {
	rec, ok := r.lastGood.Get(key)
	if !ok {
		return nil
	}
	return &Result{
		OK:           true,
		Source:       sourceAccountNFTs + " (stale)",
		Stale:        true,
		TokenIDs:     rec.TokenIDs,
		TokenIDsFlat: rec.TokenIDsFlat,
		LastGoodAt:   rec.At,
	}
}

// extractTokens flattens the pages down to the target collection: a sorted
// deduplicated ID list plus a quantity-expanded list for ERC-1155 balances
func extractTokens(collections []blockvision.ContractHoldings, target domain.Address) ([]int64, []int64) {
	seen := make(map[int64]bool)
	var tokenIDs []int64
	var tokenIDsFlat []int64

	for _, col := range collections {
		if col.Contract != target {
			continue
		}
		for _, item := range col.Items {
			if !seen[item.TokenID] {
				seen[item.TokenID] = true
				tokenIDs = append(tokenIDs, item.TokenID)
			}
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			for i := int64(0); i < qty; i++ {
				tokenIDsFlat = append(tokenIDsFlat, item.TokenID)
			}
		}
	}

	domain.SortTokenIDs64(tokenIDs)
	return tokenIDs, tokenIDsFlat
}

func pageJitter() time.Duration {
	return pageJitterMin + time.Duration(rand.Int63n(int64(pageJitterMax-pageJitterMin+1))) //nolint:gosec
}
