package rest_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/api/middleware"
	"github.com/fortune-cookies-ai/fc-backend/internal/api/rest"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/holdings"
	"github.com/fortune-cookies-ai/fc-backend/internal/leaderboard"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/mocks"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/openai"
	"github.com/fortune-cookies-ai/fc-backend/internal/scores"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

const (
	testAPIKey     = "test-api-key"
	testWallet     = domain.Address("0x1111111111111111111111111111111111111111")
	testCollection = domain.Address("0x2222222222222222222222222222222222222222")
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (m *memBlobStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, store.ErrBlobNotFound
	}
	return data, nil
}

func (m *memBlobStore) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

// testHandlerMocks contains all the mocks needed for testing the handlers
type testHandlerMocks struct {
	ctrl      *gomock.Controller
	resolver  *mocks.MockHoldingsResolver
	builder   *mocks.MockLeaderboardBuilder
	indexer   *mocks.MockIndexerClient
	fortunes  *mocks.MockFortuneClient
	pinner    *mocks.MockPinner
	scores    *mocks.MockScoreService
	publisher *mocks.MockEventPublisher
	router    *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testHandlerMocks{
		ctrl:      ctrl,
		resolver:  mocks.NewMockHoldingsResolver(ctrl),
		builder:   mocks.NewMockLeaderboardBuilder(ctrl),
		indexer:   mocks.NewMockIndexerClient(ctrl),
		fortunes:  mocks.NewMockFortuneClient(ctrl),
		pinner:    mocks.NewMockPinner(ctrl),
		scores:    mocks.NewMockScoreService(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
	}

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	aggregator := leaderboard.NewAggregator(tm.indexer, clock, leaderboard.AggregatorConfig{
		SnapshotTTL:   10 * time.Second,
		PageLimit:     100,
		MaxPages:      6,
		EarlyStopSize: 200,
	})
	lastMinted := store.NewLastMintedStore(newMemBlobStore(), clock)

	handler := rest.NewHandler(
		tm.resolver,
		tm.builder,
		aggregator,
		lastMinted,
		tm.fortunes,
		tm.pinner,
		tm.scores,
		tm.publisher,
		testCollection,
	)

	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	return tm
}

func (tm *testHandlerMocks) request(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func TestGetHoldings_ReturnsResolverEnvelope(t *testing.T) {
	tm := setupTestHandler(t)

	tm.resolver.EXPECT().
		Resolve(gomock.Any(), testWallet, testCollection, false).
		Return(&holdings.Result{
			OK:       true,
			Source:   "blockvision/account-nfts",
			TokenIDs: []int64{3, 9},
		})

	w := tm.request(http.MethodGet, "/api/v1/holdings?address="+testWallet.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var resp holdings.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, []int64{3, 9}, resp.TokenIDs)
}

func TestGetHoldings_FreshParam(t *testing.T) {
	tm := setupTestHandler(t)

	tm.resolver.EXPECT().
		Resolve(gomock.Any(), testWallet, testCollection, true).
		Return(&holdings.Result{OK: true})

	w := tm.request(http.MethodGet, "/api/v1/holdings?address="+testWallet.String()+"&fresh=1", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHoldings_ExplicitContract(t *testing.T) {
	tm := setupTestHandler(t)

	other := domain.Address("0x3333333333333333333333333333333333333333")
	tm.resolver.EXPECT().
		Resolve(gomock.Any(), testWallet, other, false).
		Return(&holdings.Result{OK: true})

	w := tm.request(http.MethodGet,
		"/api/v1/holdings?address="+testWallet.String()+"&contract="+other.String(), nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetHoldings_BadAddress(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodGet, "/api/v1/holdings?address=not-an-address", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestGetLeaderboard_PassesIdentitySet(t *testing.T) {
	tm := setupTestHandler(t)

	other := domain.Address("0x3333333333333333333333333333333333333333")
	addr := testWallet.String()
	tm.builder.EXPECT().
		Build(gomock.Any(), []domain.Address{testWallet, other}, false).
		Return(&leaderboard.Board{
			TotalMinters: 2,
			Top20:        []leaderboard.Row{{Rank: 1, Address: &addr, Mints: 4}},
			You:          &leaderboard.Row{Rank: 1, Address: &addr, Mints: 4},
		}, nil)

	w := tm.request(http.MethodGet,
		"/api/v1/leaderboard?you="+testWallet.String()+","+other.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var board leaderboard.Board
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Equal(t, 2, board.TotalMinters)
	require.NotNil(t, board.You)
	assert.Equal(t, 1, board.You.Rank)
}

func TestGetLeaderboard_UpstreamFailure(t *testing.T) {
	tm := setupTestHandler(t)

	tm.builder.EXPECT().
		Build(gomock.Any(), gomock.Nil(), false).
		Return(nil, assert.AnError)

	w := tm.request(http.MethodGet, "/api/v1/leaderboard", nil, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream_error")
}

func TestGetCollectionHolder_Found(t *testing.T) {
	tm := setupTestHandler(t)

	unique := uint64(2)
	tm.indexer.EXPECT().
		CollectionHolders(gomock.Any(), testCollection, 50, "").
		Return(&blockvision.HoldersPage{
			Holders: []blockvision.Holder{
				{Address: testWallet, Amount: 3, UniqueTokens: &unique},
			},
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/collection-holders?address="+testWallet.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK           bool   `json:"ok"`
		Amount       uint64 `json:"amount"`
		UniqueTokens uint64 `json:"uniqueTokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, uint64(3), resp.Amount)
	assert.Equal(t, uint64(2), resp.UniqueTokens)
}

func TestGetCollectionHolder_NotFound(t *testing.T) {
	tm := setupTestHandler(t)

	tm.indexer.EXPECT().
		CollectionHolders(gomock.Any(), testCollection, 50, "").
		Return(&blockvision.HoldersPage{}, nil)

	w := tm.request(http.MethodGet, "/api/v1/collection-holders?address="+testWallet.String(), nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK     bool   `json:"ok"`
		Amount uint64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Zero(t, resp.Amount)
}

func TestLastMinted_RoundTrip(t *testing.T) {
	tm := setupTestHandler(t)

	query := "?chainId=10143&contract=" + testCollection.String() + "&address=" + testWallet.String()

	// nothing recorded yet
	w := tm.request(http.MethodGet, "/api/v1/last-minted"+query, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tokenId":null,"updatedAt":null}`, w.Body.String())

	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev *events.Event) error {
			assert.Equal(t, events.EventMintRecorded, ev.Type)
			assert.Equal(t, testWallet, ev.Wallet)
			assert.Equal(t, "0x2a", ev.Data["tokenId"])
			return nil
		})

	w = tm.request(http.MethodPost, "/api/v1/last-minted"+query, []byte(`{"tokenId":"0x2a"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = tm.request(http.MethodGet, "/api/v1/last-minted"+query, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rec store.MintRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "0x2a", rec.TokenID)
}

func TestSetLastMinted_MissingTokenID(t *testing.T) {
	tm := setupTestHandler(t)

	query := "?chainId=10143&contract=" + testCollection.String() + "&address=" + testWallet.String()
	w := tm.request(http.MethodPost, "/api/v1/last-minted"+query, []byte(`{}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLastMinted_MissingParams(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodGet, "/api/v1/last-minted?address="+testWallet.String(), nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateFortune(t *testing.T) {
	tm := setupTestHandler(t)

	tm.fortunes.EXPECT().
		Fortune(gomock.Any(), openai.FortuneRequest{Topic: "luck", Vibe: "cryptic"}).
		Return("Fortune favors the bold.", nil)

	w := tm.request(http.MethodPost, "/api/v1/fortune", []byte(`{"topic":"luck","vibe":"cryptic"}`), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fortune":"Fortune favors the bold."}`, w.Body.String())
}

func TestGenerateFortune_EmptyBodyUsesDefaults(t *testing.T) {
	tm := setupTestHandler(t)

	tm.fortunes.EXPECT().
		Fortune(gomock.Any(), openai.FortuneRequest{}).
		Return("Luck compounds.", nil)

	w := tm.request(http.MethodPost, "/api/v1/fortune", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateImage(t *testing.T) {
	tm := setupTestHandler(t)

	tm.fortunes.EXPECT().
		Image(gomock.Any(), "a golden cookie", "512x512").
		Return([]byte("image-bytes"), nil)

	w := tm.request(http.MethodPost, "/api/v1/images",
		[]byte(`{"prompt":"a golden cookie","size":"512x512"}`), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		B64 string `json:"b64"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("image-bytes")), resp.B64)
}

func TestGenerateImage_MissingPrompt(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodPost, "/api/v1/images", []byte(`{}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPinImage_RequiresAuth(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodPost, "/api/v1/pin", []byte(`{"b64":"aGk="}`), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPinImage_WithAPIKey(t *testing.T) {
	tm := setupTestHandler(t)

	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))
	tm.pinner.EXPECT().
		PinImage(gomock.Any(), "monad-cookie.png", []byte("image-bytes")).
		Return("QmTestCID", nil)
	tm.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev *events.Event) error {
			assert.Equal(t, events.EventImagePinned, ev.Type)
			assert.Equal(t, "QmTestCID", ev.Data["cid"])
			return nil
		})

	w := tm.request(http.MethodPost, "/api/v1/pin",
		[]byte(`{"b64":"`+payload+`"}`),
		map[string]string{"Authorization": "ApiKey " + testAPIKey})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cid":"QmTestCID"}`, w.Body.String())
}

func TestPinImage_InvalidBase64(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodPost, "/api/v1/pin",
		[]byte(`{"b64":"not base64!!"}`),
		map[string]string{"Authorization": "ApiKey " + testAPIKey})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterScore(t *testing.T) {
	tm := setupTestHandler(t)

	tm.scores.EXPECT().
		Register(gomock.Any(), testWallet, uint64(42)).
		Return(&scores.RegisterResult{
			TxHash:            "0xdeadbeef",
			BlockNumber:       1234,
			Player:            testWallet,
			ScoreAmount:       42,
			TotalScore:        142,
			TotalTransactions: 3,
		}, nil)

	w := tm.request(http.MethodPost, "/api/v1/register-score",
		[]byte(`{"player":"`+testWallet.String()+`","scoreAmount":42.9}`),
		map[string]string{"Authorization": "ApiKey " + testAPIKey})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK         bool   `json:"ok"`
		TxHash     string `json:"txHash"`
		TotalScore uint64 `json:"totalScore"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "0xdeadbeef", resp.TxHash)
	assert.Equal(t, uint64(142), resp.TotalScore)
}

func TestRegisterScore_InvalidPlayer(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodPost, "/api/v1/register-score",
		[]byte(`{"player":"nope","scoreAmount":1}`),
		map[string]string{"Authorization": "ApiKey " + testAPIKey})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterScore_RequiresAuth(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodPost, "/api/v1/register-score",
		[]byte(`{"player":"`+testWallet.String()+`","scoreAmount":1}`), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetScoreboard(t *testing.T) {
	tm := setupTestHandler(t)

	tm.scores.EXPECT().
		Top(gomock.Any(), 50).
		Return([]store.PlayerRecord{
			{Username: "alice", Wallet: testWallet, TotalScore: 100},
		}, nil)

	w := tm.request(http.MethodGet, "/api/v1/mgid-leaderboard", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows []store.PlayerRecord `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "alice", resp.Rows[0].Username)
}

func TestGetScoreboard_EmptyRows(t *testing.T) {
	tm := setupTestHandler(t)

	tm.scores.EXPECT().Top(gomock.Any(), 50).Return(nil, nil)

	w := tm.request(http.MethodGet, "/api/v1/mgid-leaderboard", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[]}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestHandler(t)

	w := tm.request(http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
