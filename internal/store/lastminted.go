package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

const lastMintedBlobKey = "last_minted"

// MintRecord is the most recent token a wallet minted on one contract
type MintRecord struct {
	TokenID   string    `json:"tokenId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LastMintedStore persists per-wallet last minted tokens keyed by
// chain, contract and wallet
type LastMintedStore struct {
	blobs BlobStore
	clock adapter.Clock

	mu      sync.Mutex
	records map[string]MintRecord
	loaded  bool
}

// NewLastMintedStore creates a last-minted store over the given blob store
func NewLastMintedStore(blobs BlobStore, clock adapter.Clock) *LastMintedStore {
	return &LastMintedStore{
		blobs: blobs,
		clock: clock,
	}
}

func mintKey(chainID string, contract, wallet domain.Address) string {
	return fmt.Sprintf("%s:%s:%s", chainID, contract, wallet)
}

// ensureLoaded lazily reads the persisted map under the lock
func (s *LastMintedStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	s.records = make(map[string]MintRecord)
	data, err := s.blobs.Read(ctx, lastMintedBlobKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to load last-minted records: %w", err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to parse last-minted records: %w", err)
	}

	s.loaded = true
	return nil
}

// Get returns the last minted record for the wallet, or ok=false
func (s *LastMintedStore) Get(ctx context.Context, chainID string, contract, wallet domain.Address) (MintRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return MintRecord{}, false, err
	}
	rec, ok := s.records[mintKey(chainID, contract, wallet)]
	return rec, ok, nil
}

// Set replaces the last minted record for the wallet and persists the map
func (s *LastMintedStore) Set(ctx context.Context, chainID string, contract, wallet domain.Address, tokenID string) (MintRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return MintRecord{}, err
	}

	rec := MintRecord{
		TokenID:   tokenID,
		UpdatedAt: s.clock.Now().UTC(),
	}
	s.records[mintKey(chainID, contract, wallet)] = rec

	data, err := json.Marshal(s.records)
	if err != nil {
		return MintRecord{}, err
	}
	if err := s.blobs.Write(ctx, lastMintedBlobKey, data); err != nil {
		return MintRecord{}, err
	}
	return rec, nil
}
