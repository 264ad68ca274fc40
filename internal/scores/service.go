package scores

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/ethereum"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/mgid"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

// txDelta is the per-registration transaction increment; the contract
// accumulates totals internally
const txDelta = 1

// RegisterResult describes one mined score registration
type RegisterResult struct {
	TxHash            string         `json:"txHash"`
	BlockNumber       uint64         `json:"blockNumber"`
	Player            domain.Address `json:"player"`
	ScoreAmount       uint64         `json:"scoreAmount"`
	TotalScore        uint64         `json:"totalScore"`
	TotalTransactions uint64         `json:"totalTransactions"`
}

// Service defines the interface for score registration to enable mocking
//
//go:generate mockgen -source=service.go -destination=../mocks/score_service.go -package=mocks -mock_names=Service=MockScoreService
type Service interface {
	// Register submits a score on-chain, refreshes the player's stored row
	// and returns the new totals
	Register(ctx context.Context, player domain.Address, score uint64) (*RegisterResult, error)

	// Top returns the current score leaderboard rows
	Top(ctx context.Context, limit int) ([]store.PlayerRecord, error)
}

type service struct {
	chain     ethereum.Client
	identity  mgid.Client
	players   *store.PlayerStore
	publisher events.Publisher
}

// NewService creates a score service
func NewService(chain ethereum.Client, identity mgid.Client, players *store.PlayerStore, publisher events.Publisher) Service {
	return &service{
		chain:     chain,
		identity:  identity,
		players:   players,
		publisher: publisher,
	}
}

// Register submits a score on-chain and refreshes the player's stored row
func (s *service) Register(ctx context.Context, player domain.Address, score uint64) (*RegisterResult, error) {
	tx, err := s.chain.UpdatePlayerData(ctx, player, score, txDelta)
	if err != nil {
		return nil, fmt.Errorf("failed to submit score: %w", err)
	}

	totals, err := s.chain.PlayerTotals(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to read player totals: %w", err)
	}

	// username lookup is best effort; a shortened wallet stands in for it
	username, err := s.identity.Username(ctx, player)
	if err != nil {
		logger.WarnCtx(ctx, "username lookup failed",
			zap.String("player", player.String()),
			zap.Error(err))
		username = ""
	}
	if username == "" {
		username = shorten(player)
	}

	result := &RegisterResult{
		TxHash:            tx.TxHash,
		BlockNumber:       tx.BlockNumber,
		Player:            player,
		ScoreAmount:       score,
		TotalScore:        totals.TotalScore.Uint64(),
		TotalTransactions: totals.TotalTransactions.Uint64(),
	}

	if err := s.players.Save(ctx, store.PlayerRecord{
		Username:          username,
		Wallet:            player,
		TotalScore:        result.TotalScore,
		TotalTransactions: result.TotalTransactions,
	}); err != nil {
		// the on-chain update succeeded; the stored row catches up next time
		logger.WarnCtx(ctx, "failed to persist player row",
			zap.String("player", player.String()),
			zap.Error(err))
	}

	if err := s.publisher.PublishEvent(ctx, &events.Event{
		Type:   events.EventScoreRegistered,
		Wallet: player,
		Data: map[string]interface{}{
			"txHash":     result.TxHash,
			"totalScore": result.TotalScore,
		},
	}); err != nil {
		logger.WarnCtx(ctx, "failed to publish score event", zap.Error(err))
	}

	return result, nil
}

// Top returns the current score leaderboard rows
func (s *service) Top(ctx context.Context, limit int) ([]store.PlayerRecord, error) {
	return s.players.Top(ctx, limit)
}

func shorten(addr domain.Address) string {
	s := addr.String()
	if len(s) < 10 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
