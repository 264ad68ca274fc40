package rest

import (
	"encoding/base64"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/holdings"
	"github.com/fortune-cookies-ai/fc-backend/internal/leaderboard"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/openai"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/pinata"
	"github.com/fortune-cookies-ai/fc-backend/internal/scores"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

// mgidBoardSize caps the score leaderboard response
const mgidBoardSize = 50

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetHoldings resolves the caller's token holdings with sticky last-good
	// fallback
	// GET /api/v1/holdings?address=<addr>&contract=<addr>&fresh=1
	GetHoldings(c *gin.Context)

	// GetLeaderboard assembles the minter leaderboard
	// GET /api/v1/leaderboard?you=<addr>[,<addr>...]&fresh=1
	GetLeaderboard(c *gin.Context)

	// GetCollectionHolder looks one wallet up in the collection holder listing
	// GET /api/v1/collection-holders?address=<addr>&contract=<addr>
	GetCollectionHolder(c *gin.Context)

	// GetLastMinted returns the wallet's recorded last minted token
	// GET /api/v1/last-minted?address=<addr>&contract=<addr>&chainId=<id>
	GetLastMinted(c *gin.Context)

	// SetLastMinted records the wallet's last minted token
	// POST /api/v1/last-minted?address=<addr>&contract=<addr>&chainId=<id>
	SetLastMinted(c *gin.Context)

	// GenerateFortune generates a fortune cookie message
	// POST /api/v1/fortune
	GenerateFortune(c *gin.Context)

	// GenerateImage generates a cookie image
	// POST /api/v1/images
	GenerateImage(c *gin.Context)

	// PinImage pins an image to IPFS (requires authentication)
	// POST /api/v1/pin
	PinImage(c *gin.Context)

	// RegisterScore submits an arcade score on-chain (requires authentication)
	// POST /api/v1/register-score
	RegisterScore(c *gin.Context)

	// GetScoreboard returns the arcade score leaderboard
	// GET /api/v1/mgid-leaderboard
	GetScoreboard(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	resolver   holdings.Resolver
	builder    leaderboard.Builder
	aggregator *leaderboard.Aggregator
	lastMinted *store.LastMintedStore
	fortunes   openai.Client
	pinner     pinata.Pinner
	scores     scores.Service
	publisher  events.Publisher
	collection domain.Address
}

// NewHandler creates a new REST handler
func NewHandler(
	resolver holdings.Resolver,
	builder leaderboard.Builder,
	aggregator *leaderboard.Aggregator,
	lastMinted *store.LastMintedStore,
	fortunes openai.Client,
	pinner pinata.Pinner,
	scoreService scores.Service,
	publisher events.Publisher,
	collection domain.Address,
) Handler {
	return &handler{
		resolver:   resolver,
		builder:    builder,
		aggregator: aggregator,
		lastMinted: lastMinted,
		fortunes:   fortunes,
		pinner:     pinner,
		scores:     scoreService,
		publisher:  publisher,
		collection: collection,
	}
}

// contractParam resolves the contract query parameter, falling back to the
// configured collection
func (h *handler) contractParam(c *gin.Context) (domain.Address, bool) {
	contract := domain.NormalizeAddress(c.Query("contract"))
	if contract == "" {
		contract = h.collection
	}
	return contract, contract.Valid()
}

func freshParam(c *gin.Context) bool {
	return c.Query("fresh") == "1"
}

// GetHoldings resolves the caller's token holdings
func (h *handler) GetHoldings(c *gin.Context) {
	address := domain.NormalizeAddress(c.Query("address"))
	if !address.Valid() {
		respondBadRequest(c, "Bad or missing address")
		return
	}
	contract, ok := h.contractParam(c)
	if !ok {
		respondBadRequest(c, "Bad or missing contract")
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), address, contract, freshParam(c))
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, result)
}

// GetLeaderboard assembles the minter leaderboard
func (h *handler) GetLeaderboard(c *gin.Context) {
	identity := domain.ParseIdentitySet(c.Query("you"))

	board, err := h.builder.Build(c.Request.Context(), identity, freshParam(c))
	if err != nil {
		respondUpstreamError(c, err, "Failed to build leaderboard")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, board)
}

// GetCollectionHolder looks one wallet up in the collection holder listing
func (h *handler) GetCollectionHolder(c *gin.Context) {
	address := domain.NormalizeAddress(c.Query("address"))
	if !address.Valid() {
		respondBadRequest(c, "address and contract are required")
		return
	}
	contract, ok := h.contractParam(c)
	if !ok {
		respondBadRequest(c, "address and contract are required")
		return
	}

	count, found, err := h.aggregator.HolderOf(c.Request.Context(), contract, address)
	if err != nil {
		respondUpstreamError(c, err, "Failed to look up holder")
		return
	}

	resp := gin.H{
		"ok":       true,
		"address":  address,
		"contract": contract,
		"amount":   uint64(0),
		// this endpoint does not return token IDs
		"uniqueTokens": uint64(0),
	}
	if found {
		resp["amount"] = count.Amount
		resp["uniqueTokens"] = count.UniqueTokens
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) lastMintedParams(c *gin.Context) (string, domain.Address, domain.Address, bool) {
	chainID := c.Query("chainId")
	contract := domain.NormalizeAddress(c.Query("contract"))
	address := domain.NormalizeAddress(c.Query("address"))
	if chainID == "" || !contract.Valid() || !address.Valid() {
		respondBadRequest(c, "Missing address/contract/chainId")
		return "", "", "", false
	}
	return chainID, contract, address, true
}

// GetLastMinted returns the wallet's recorded last minted token
func (h *handler) GetLastMinted(c *gin.Context) {
	chainID, contract, address, ok := h.lastMintedParams(c)
	if !ok {
		return
	}

	rec, found, err := h.lastMinted.Get(c.Request.Context(), chainID, contract, address)
	if err != nil {
		respondInternalError(c, err, "Failed to read mint record")
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"tokenId": nil, "updatedAt": nil})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// SetLastMinted records the wallet's last minted token
func (h *handler) SetLastMinted(c *gin.Context) {
	chainID, contract, address, ok := h.lastMintedParams(c)
	if !ok {
		return
	}

	var body struct {
		TokenID string `json:"tokenId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.TokenID == "" {
		respondBadRequest(c, "Missing tokenId")
		return
	}

	rec, err := h.lastMinted.Set(c.Request.Context(), chainID, contract, address, body.TokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to record mint")
		return
	}

	if err := h.publisher.PublishEvent(c.Request.Context(), &events.Event{
		Type:   events.EventMintRecorded,
		Wallet: address,
		Data: map[string]interface{}{
			"tokenId":  body.TokenID,
			"contract": contract.String(),
			"chainId":  chainID,
		},
	}); err != nil {
		logger.Warn("failed to publish mint event", zap.Error(err))
	}

	c.JSON(http.StatusOK, rec)
}

// GenerateFortune generates a fortune cookie message
func (h *handler) GenerateFortune(c *gin.Context) {
	var body struct {
		Topic string `json:"topic"`
		Vibe  string `json:"vibe"`
		Name  string `json:"name"`
	}
	// an empty or malformed body falls back to defaults
	_ = c.ShouldBindJSON(&body)

	fortune, err := h.fortunes.Fortune(c.Request.Context(), openai.FortuneRequest{
		Topic: body.Topic,
		Vibe:  body.Vibe,
		Name:  body.Name,
	})
	if err != nil {
		respondUpstreamError(c, err, "Failed to generate fortune")
		return
	}

	c.JSON(http.StatusOK, gin.H{"fortune": fortune})
}

// GenerateImage generates a cookie image
func (h *handler) GenerateImage(c *gin.Context) {
	var body struct {
		Prompt string `json:"prompt"`
		Size   string `json:"size"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.Prompt == "" {
		respondBadRequest(c, "Missing prompt")
		return
	}

	data, err := h.fortunes.Image(c.Request.Context(), body.Prompt, body.Size)
	if err != nil {
		respondUpstreamError(c, err, "Failed to generate image")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"b64": base64.StdEncoding.EncodeToString(data)})
}

// PinImage pins an image to IPFS
func (h *handler) PinImage(c *gin.Context) {
	var body struct {
		B64      string `json:"b64"`
		Filename string `json:"filename"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.B64 == "" {
		respondBadRequest(c, "Missing b64")
		return
	}
	if body.Filename == "" {
		body.Filename = "monad-cookie.png"
	}

	data, err := base64.StdEncoding.DecodeString(body.B64)
	if err != nil {
		respondBadRequest(c, "Invalid b64 payload")
		return
	}

	cid, err := h.pinner.PinImage(c.Request.Context(), body.Filename, data)
	if err != nil {
		respondUpstreamError(c, err, "Failed to pin image")
		return
	}

	if err := h.publisher.PublishEvent(c.Request.Context(), &events.Event{
		Type: events.EventImagePinned,
		Data: map[string]interface{}{"cid": cid},
	}); err != nil {
		logger.Warn("failed to publish pin event", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"cid": cid})
}

// RegisterScore submits an arcade score on-chain
func (h *handler) RegisterScore(c *gin.Context) {
	var body struct {
		Player      string  `json:"player"`
		ScoreAmount float64 `json:"scoreAmount"`
	}
	_ = c.ShouldBindJSON(&body)

	player := domain.NormalizeAddress(body.Player)
	if !player.Valid() {
		respondBadRequest(c, "Invalid player address")
		return
	}

	score := uint64(0)
	if body.ScoreAmount > 0 && !math.IsInf(body.ScoreAmount, 1) {
		score = uint64(math.Floor(body.ScoreAmount))
	}

	result, err := h.scores.Register(c.Request.Context(), player, score)
	if err != nil {
		respondUpstreamError(c, err, "Failed to submit score")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                true,
		"txHash":            result.TxHash,
		"blockNumber":       result.BlockNumber,
		"player":            result.Player,
		"scoreAmount":       result.ScoreAmount,
		"totalTransactions": result.TotalTransactions,
		"totalScore":        result.TotalScore,
	})
}

// GetScoreboard returns the arcade score leaderboard
func (h *handler) GetScoreboard(c *gin.Context) {
	rows, err := h.scores.Top(c.Request.Context(), mgidBoardSize)
	if err != nil {
		respondInternalError(c, err, "Failed to load score leaderboard")
		return
	}
	if rows == nil {
		rows = []store.PlayerRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "fc-backend-api",
		"time":    time.Now().UTC(),
	})
}
