package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
)

const lastGoodBlobKey = "holdings_last_good"

// GoodRecord is the durable last known non-empty holdings result for one
// owner and collection
type GoodRecord struct {
	// At is the capture time in unix milliseconds
	At           int64   `json:"at"`
	TokenIDs     []int64 `json:"tokenIds"`
	TokenIDsFlat []int64 `json:"tokenIdsFlat"`
}

// LastGoodStore keeps the last known non-empty holdings per owner in memory
// and writes every accepted update through to the blob store. Records are
// never deleted or replaced by empty data.
type LastGoodStore struct {
	blobs BlobStore
	clock adapter.Clock

	mu      sync.RWMutex
	records map[domain.HoldingKey]GoodRecord
}

// NewLastGoodStore creates the store and loads any persisted records.
// A missing or unreadable blob starts the store empty.
func NewLastGoodStore(ctx context.Context, blobs BlobStore, clock adapter.Clock) *LastGoodStore {
	s := &LastGoodStore{
		blobs:   blobs,
		clock:   clock,
		records: make(map[domain.HoldingKey]GoodRecord),
	}
	s.load(ctx)
	return s
}

func (s *LastGoodStore) load(ctx context.Context) {
	data, err := s.blobs.Read(ctx, lastGoodBlobKey)
	if err != nil {
		if !errors.Is(err, ErrBlobNotFound) {
			logger.WarnCtx(ctx, "failed to load last-good holdings", zap.Error(err))
		}
		return
	}

	var raw map[string]GoodRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.WarnCtx(ctx, "failed to parse last-good holdings", zap.Error(err))
		return
	}

	for k, rec := range raw {
		key, err := domain.ParseHoldingKey(k)
		if err != nil {
			continue
		}
		s.records[key] = rec
	}
}

// Get returns the last known non-empty record for key
func (s *LastGoodStore) Get(key domain.HoldingKey) (GoodRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Set records a non-empty result and persists the whole map. Empty token
// sets are rejected so a bad upstream read can never erase a known state.
// Persistence failures are logged and tolerated.
func (s *LastGoodStore) Set(ctx context.Context, key domain.HoldingKey, tokenIDs, tokenIDsFlat []int64) {
	if len(tokenIDs) == 0 {
		return
	}

	s.mu.Lock()
	s.records[key] = GoodRecord{
		At:           s.clock.Now().UnixMilli(),
		TokenIDs:     tokenIDs,
		TokenIDsFlat: tokenIDsFlat,
	}
	raw := make(map[string]GoodRecord, len(s.records))
	for k, rec := range s.records {
		raw[k.String()] = rec
	}
	s.mu.Unlock()

	data, err := json.Marshal(raw)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return
	}
	if err := s.blobs.Write(ctx, lastGoodBlobKey, data); err != nil {
		logger.WarnCtx(ctx, "failed to persist last-good holdings", zap.Error(err))
	}
}

// Keys returns every owner/collection pair with a recorded last-good state
func (s *LastGoodStore) Keys() []domain.HoldingKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]domain.HoldingKey, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	return keys
}
