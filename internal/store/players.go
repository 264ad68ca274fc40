package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

const playersBlobKey = "mgid_leaderboard"

// PlayerRecord is one row in the arcade score leaderboard
type PlayerRecord struct {
	Username          string         `json:"username"`
	Wallet            domain.Address `json:"embeddedWallet"`
	TotalScore        uint64         `json:"totalScore"`
	TotalTransactions uint64         `json:"totalTransactions"`
	// UpdatedAt is the last write time in unix milliseconds
	UpdatedAt int64 `json:"updatedAt"`
}

type playerSnapshot struct {
	Players map[string]PlayerRecord `json:"players"`
}

// PlayerStore persists the arcade score leaderboard as one durable snapshot
type PlayerStore struct {
	blobs BlobStore
	clock adapter.Clock

	mu sync.Mutex
}

// NewPlayerStore creates a player store over the given blob store
func NewPlayerStore(blobs BlobStore, clock adapter.Clock) *PlayerStore {
	return &PlayerStore{blobs: blobs, clock: clock}
}

func (s *PlayerStore) read(ctx context.Context) (*playerSnapshot, error) {
	snap := &playerSnapshot{Players: make(map[string]PlayerRecord)}

	data, err := s.blobs.Read(ctx, playersBlobKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return snap, nil
		}
		return nil, fmt.Errorf("failed to load player snapshot: %w", err)
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to parse player snapshot: %w", err)
	}
	if snap.Players == nil {
		snap.Players = make(map[string]PlayerRecord)
	}
	return snap, nil
}

// Save upserts one player row. A blank username keeps the previously
// recorded one.
func (s *PlayerStore) Save(ctx context.Context, rec PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read(ctx)
	if err != nil {
		return err
	}

	wallet := domain.NormalizeAddress(rec.Wallet.String())
	prev := snap.Players[wallet.String()]
	if rec.Username == "" {
		rec.Username = prev.Username
	}
	if rec.UpdatedAt == 0 {
		rec.UpdatedAt = s.clock.Now().UnixMilli()
	}
	rec.Wallet = wallet
	snap.Players[wallet.String()] = rec

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.blobs.Write(ctx, playersBlobKey, data)
}

// Get returns the recorded row for one wallet, or ok=false
func (s *PlayerStore) Get(ctx context.Context, wallet domain.Address) (PlayerRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read(ctx)
	if err != nil {
		return PlayerRecord{}, false, err
	}
	rec, ok := snap.Players[domain.NormalizeAddress(wallet.String()).String()]
	return rec, ok, nil
}

// Top returns up to limit players ordered by total score, most recently
// updated first among ties
func (s *PlayerStore) Top(ctx context.Context, limit int) ([]PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]PlayerRecord, 0, len(snap.Players))
	for _, rec := range snap.Players {
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return rows[i].UpdatedAt > rows[j].UpdatedAt
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
