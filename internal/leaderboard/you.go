package leaderboard

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
)

// youMaxPages is generous; the walk normally stops at the first missing cursor
const youMaxPages = 100

// YouCounterConfig holds the per-wallet count cache settings
type YouCounterConfig struct {
	TTL       time.Duration
	CacheSize int
	PageLimit int
}

// YouCounter resolves the authoritative per-wallet token count for one
// collection from the per-token holdings listing. Duplicate rows for a token
// are merged by maximum amount so balances are never double counted.
type YouCounter struct {
	client blockvision.Client
	cfg    YouCounterConfig
	cache  *expirable.LRU[domain.HoldingKey, uint64]
}

// NewYouCounter creates a per-wallet holdings counter
func NewYouCounter(client blockvision.Client, cfg YouCounterConfig) *YouCounter {
	return &YouCounter{
		client: client,
		cfg:    cfg,
		cache:  expirable.NewLRU[domain.HoldingKey, uint64](cfg.CacheSize, nil, cfg.TTL),
	}
}

// Count returns the wallet's token count for the collection. ok=false means
// the count could not be determined and the caller should leave the snapshot
// row untouched.
func (y *YouCounter) Count(ctx context.Context, wallet, collection domain.Address, fresh bool) (uint64, bool) {
	key := domain.HoldingKey{Owner: wallet, Collection: collection}
	if !fresh {
		if cached, ok := y.cache.Get(key); ok {
			return cached, true
		}
	}

	perToken := make(map[string]int64)
	cursor := ""

	for page := 0; page < youMaxPages; page++ {
		resp, err := y.client.AccountHoldings(ctx, wallet, y.cfg.PageLimit, cursor)
		if err != nil {
			// a failed count must not break the leaderboard
			logger.WarnCtx(ctx, "wallet holdings count failed",
				zap.String("wallet", wallet.String()),
				zap.Error(err))
			return 0, false
		}

		for _, h := range resp.Holdings {
			if h.Contract != collection {
				continue
			}
			if h.Amount > perToken[h.TokenID] {
				perToken[h.TokenID] = h.Amount
			}
		}

		cursor = resp.NextCursor
		if cursor == "" {
			break
		}
	}

	var total uint64
	for _, amt := range perToken {
		total += uint64(amt)
	}

	y.cache.Add(key, total)
	return total, true
}
