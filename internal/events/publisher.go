package events

import (
	"context"
	"time"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

// EventType identifies the kind of backend event
type EventType string

const (
	// EventScoreRegistered is emitted after a score update is mined
	EventScoreRegistered EventType = "score_registered"
	// EventMintRecorded is emitted when a wallet records a new minted token
	EventMintRecorded EventType = "mint_recorded"
	// EventImagePinned is emitted after an image is pinned to IPFS
	EventImagePinned EventType = "image_pinned"
	// EventLeaderboardRefreshed is emitted after a background board re-warm
	EventLeaderboardRefreshed EventType = "leaderboard_refreshed"
)

// Event is one backend activity record published to the event feed
type Event struct {
	// ID is a ULID, sortable by emission time
	ID     string                 `json:"id"`
	Type   EventType              `json:"type"`
	Wallet domain.Address         `json:"wallet,omitempty"`
	At     time.Time              `json:"at"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Publisher defines the interface for publishing events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockEventPublisher
type Publisher interface {
	// PublishEvent publishes one event to the broker
	PublishEvent(ctx context.Context, event *Event) error
	// Close closes the connection
	Close()
}

// NoopPublisher drops every event; used when no broker is configured
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops events
func NewNoopPublisher() Publisher {
	return &NoopPublisher{}
}

// PublishEvent drops the event
func (p *NoopPublisher) PublishEvent(_ context.Context, _ *Event) error {
	return nil
}

// Close is a no-op
func (p *NoopPublisher) Close() {}
