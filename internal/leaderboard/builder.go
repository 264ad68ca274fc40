package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/ethereum"
)

// Row is one leaderboard entry. Address is null on padding rows.
type Row struct {
	Rank          int     `json:"rank"`
	Address       *string `json:"address"`
	Mints         uint64  `json:"mints"`
	MintedCookies uint64  `json:"mintedCookies"`
	MintedImages  uint64  `json:"mintedImages"`
}

// Board is the assembled leaderboard response
type Board struct {
	UpdatedAt    time.Time `json:"updatedAt"`
	TotalMinters int       `json:"totalMinters"`
	Top20        []Row     `json:"top20"`
	You          *Row      `json:"you"`
	Stale        bool      `json:"stale,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// BuilderConfig holds the board assembly settings
type BuilderConfig struct {
	Collection domain.Address
	TopN       int
	// EnrichPoolSize caps concurrent mint-count reads
	EnrichPoolSize int
}

// Builder defines the interface for board assembly to enable mocking
//
//go:generate mockgen -source=builder.go -destination=../mocks/leaderboard_builder.go -package=mocks -mock_names=Builder=MockLeaderboardBuilder
type Builder interface {
	// Build assembles the board. identity lists the caller's wallets (first
	// one authoritative); the caller's row is always re-resolved from the
	// per-token holdings listing. fresh bypasses every cache layer.
	Build(ctx context.Context, identity []domain.Address, fresh bool) (*Board, error)
}

type builder struct {
	aggregator *Aggregator
	you        *YouCounter
	chain      ethereum.Client
	clock      adapter.Clock
	cfg        BuilderConfig
}

// NewBuilder creates a leaderboard builder. chain may be nil when mint-count
// enrichment is not configured.
func NewBuilder(aggregator *Aggregator, you *YouCounter, chain ethereum.Client, clock adapter.Clock, cfg BuilderConfig) Builder {
	return &builder{
		aggregator: aggregator,
		you:        you,
		chain:      chain,
		clock:      clock,
		cfg:        cfg,
	}
}

// Build assembles the board
func (b *builder) Build(ctx context.Context, identity []domain.Address, fresh bool) (*Board, error) {
	baseRows, err := b.aggregator.Holders(ctx, b.cfg.Collection, fresh)
	if err != nil {
		if prev, ok := b.aggregator.Previous(); ok {
			board := b.assemble(prev, nil)
			board.Stale = true
			board.Error = err.Error()
			return board, nil
		}
		return nil, err
	}

	byAddr := make(map[domain.Address]uint64, len(baseRows))
	for _, r := range baseRows {
		byAddr[r.Address] = r.Mints
	}

	// The snapshot can lag a fresh mint, so the caller's wallets are always
	// patched from the authoritative per-token listing
	for _, wallet := range identity {
		if count, ok := b.you.Count(ctx, wallet, b.cfg.Collection, fresh); ok {
			if count != byAddr[wallet] {
				byAddr[wallet] = count
			}
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

	return b.assemble(rows, identity), nil
}

// assemble turns sorted holder rows into the padded board with the caller's
// combined row
func (b *builder) assemble(rows []domain.HolderRow, identity []domain.Address) *Board {
	board := &Board{
		UpdatedAt:    b.clock.Now().UTC(),
		TotalMinters: len(rows),
	}

	top := b.cfg.TopN
	if top > len(rows) {
		top = len(rows)
	}
	for i := 0; i < top; i++ {
		addr := rows[i].Address.String()
		board.Top20 = append(board.Top20, Row{
			Rank:    i + 1,
			Address: &addr,
			Mints:   rows[i].Mints,
		})
	}
	// pad to a fixed board size with rank-continuing empty rows
	for i := top; i < b.cfg.TopN; i++ {
		board.Top20 = append(board.Top20, Row{Rank: i + 1})
	}

	// The caller's wallets count as one minter: best rank, summed mints
	if len(identity) > 0 {
		identitySet := make(map[domain.Address]bool, len(identity))
		for _, w := range identity {
			identitySet[w] = true
		}

		bestRank := 0
		var total uint64
		for i, r := range rows {
			if !identitySet[r.Address] {
				continue
			}
			if bestRank == 0 {
				bestRank = i + 1
			}
			total += r.Mints
		}
		if bestRank > 0 {
			addr := identity[0].String()
			board.You = &Row{Rank: bestRank, Address: &addr, Mints: total}
		}
	}

	b.enrich(board)

	return board
}

// enrich fills per-row mint breakdowns from the contract, the you row
// included. Each wallet is read once even when it appears both in the top
// rows and as the caller. Failures leave the counters at zero; the board
// never fails because of enrichment.
func (b *builder) enrich(board *Board) {
	if b.chain == nil {
		return
	}

	targets := make(map[domain.Address][]*Row, len(board.Top20)+1)
	for i := range board.Top20 {
		if board.Top20[i].Address == nil {
			continue
		}
		addr := domain.NormalizeAddress(*board.Top20[i].Address)
		targets[addr] = append(targets[addr], &board.Top20[i])
	}
	if board.You != nil && board.You.Address != nil {
		addr := domain.NormalizeAddress(*board.You.Address)
		targets[addr] = append(targets[addr], board.You)
	}

	pool := pond.NewPool(b.cfg.EnrichPoolSize)
	for addr, rows := range targets {
		pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			counts, err := b.chain.MintCounts(ctx, b.cfg.Collection, addr)
			if err != nil {
				logger.Debug("mint count enrichment failed",
					zap.String("address", addr.String()),
					zap.Error(err))
				return
			}
			for _, row := range rows {
				row.MintedCookies = counts.Cookies
				row.MintedImages = counts.Images
			}
		})
	}
	pool.StopAndWait()
}
