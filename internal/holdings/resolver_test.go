package holdings_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/holdings"
	"github.com/fortune-cookies-ai/fc-backend/internal/mocks"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/blockvision"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

const (
	owner      = domain.Address("0x1111111111111111111111111111111111111111")
	collection = domain.Address("0x2222222222222222222222222222222222222222")
)

func testResolverConfig() holdings.Config {
	return holdings.Config{
		CacheTTL:  45 * time.Second,
		CacheSize: 16,
		MaxPages:  5,
		PageDelay: time.Millisecond,
	}
}

func newTestClock(ctrl *gomock.Controller) *mocks.MockClock {
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()

	ch := make(chan time.Time)
	close(ch)
	var closed <-chan time.Time = ch
	clock.EXPECT().After(gomock.Any()).Return(closed).AnyTimes()
	return clock
}

func newLastGood(ctrl *gomock.Controller, clock *mocks.MockClock) (*store.LastGoodStore, *mocks.MockBlobStore) {
	blobs := mocks.NewMockBlobStore(ctrl)
	blobs.EXPECT().Read(gomock.Any(), "holdings_last_good").Return(nil, store.ErrBlobNotFound)
	return store.NewLastGoodStore(context.Background(), blobs, clock), blobs
}

func nftsPage(items []blockvision.TokenHolding, next int) *blockvision.AccountNFTsPage {
	page := &blockvision.AccountNFTsPage{
		Collections: []blockvision.ContractHoldings{{Contract: collection, Items: items}},
	}
	if next > 0 {
		page.HasNext = true
		page.NextPageIndex = next
	}
	return page
}

func TestResolve_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		Return(nftsPage([]blockvision.TokenHolding{
			{TokenID: 9, Quantity: 1},
			{TokenID: 3, Quantity: 2},
			{TokenID: 9, Quantity: 1},
		}, 0), nil)
	blobs.EXPECT().Write(gomock.Any(), "holdings_last_good", gomock.Any()).Return(nil)

	result := resolver.Resolve(context.Background(), owner, collection, false)

	require.True(t, result.OK)
	assert.Equal(t, "blockvision/account-nfts", result.Source)
	assert.False(t, result.Stale)
	assert.Equal(t, []int64{3, 9}, result.TokenIDs)
	assert.Equal(t, []int64{9, 3, 3, 9}, result.TokenIDsFlat)
	assert.Equal(t, 1, result.PagesFetched)
}

func TestResolve_CachesSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		Return(nftsPage([]blockvision.TokenHolding{{TokenID: 1, Quantity: 1}}, 0), nil).
		Times(1)
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	first := resolver.Resolve(context.Background(), owner, collection, false)
	second := resolver.Resolve(context.Background(), owner, collection, false)

	assert.True(t, first.OK)
	assert.Same(t, first, second)
}

func TestResolve_FreshBypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		Return(nftsPage([]blockvision.TokenHolding{{TokenID: 1, Quantity: 1}}, 0), nil).
		Times(2)
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	resolver.Resolve(context.Background(), owner, collection, false)
	result := resolver.Resolve(context.Background(), owner, collection, true)

	assert.True(t, result.OK)
}

func TestResolve_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	gomock.InOrder(
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 1).
			Return(nftsPage([]blockvision.TokenHolding{{TokenID: 1, Quantity: 1}}, 2), nil),
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 2).
			Return(nftsPage([]blockvision.TokenHolding{{TokenID: 2, Quantity: 1}}, 0), nil),
	)
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result := resolver.Resolve(context.Background(), owner, collection, false)

	require.True(t, result.OK)
	assert.Equal(t, []int64{1, 2}, result.TokenIDs)
	assert.Equal(t, 2, result.PagesFetched)
}

func TestResolve_FailureWithoutHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, _ := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		Return(nil, &blockvision.UpstreamError{StatusCode: 500, Body: "boom"})

	result := resolver.Resolve(context.Background(), owner, collection, false)

	assert.False(t, result.OK)
	assert.Empty(t, result.TokenIDs)
	assert.Contains(t, result.Error, "indexer error")
}

func TestResolve_FailureFallsBackToLastGood(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	gomock.InOrder(
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 1).
			Return(nftsPage([]blockvision.TokenHolding{{TokenID: 5, Quantity: 1}}, 0), nil),
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 1).
			Return(nil, &blockvision.UpstreamError{StatusCode: 503, Body: "unavailable"}),
	)
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	resolver.Resolve(context.Background(), owner, collection, false)
	result := resolver.Resolve(context.Background(), owner, collection, true)

	require.True(t, result.OK)
	assert.True(t, result.Stale)
	assert.Equal(t, "blockvision/account-nfts (stale)", result.Source)
	assert.Equal(t, []int64{5}, result.TokenIDs)
	assert.NotZero(t, result.LastGoodAt)
}

func TestResolve_EmptyNeverErasesLastGood(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	gomock.InOrder(
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 1).
			Return(nftsPage([]blockvision.TokenHolding{{TokenID: 7, Quantity: 1}}, 0), nil),
		client.EXPECT().
			AccountNFTs(gomock.Any(), owner, 1).
			Return(&blockvision.AccountNFTsPage{}, nil),
	)
	// only the non-empty fetch persists
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	resolver.Resolve(context.Background(), owner, collection, false)
	result := resolver.Resolve(context.Background(), owner, collection, true)

	require.True(t, result.OK)
	assert.True(t, result.Stale)
	assert.Equal(t, []int64{7}, result.TokenIDs)
}

func TestResolve_IgnoresOtherCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, _ := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	page := &blockvision.AccountNFTsPage{
		Collections: []blockvision.ContractHoldings{
			{
				Contract: "0x9999999999999999999999999999999999999999",
				Items:    []blockvision.TokenHolding{{TokenID: 1, Quantity: 1}},
			},
		},
	}
	client.EXPECT().AccountNFTs(gomock.Any(), owner, 1).Return(page, nil)

	result := resolver.Resolve(context.Background(), owner, collection, false)

	assert.False(t, result.OK)
	assert.Empty(t, result.TokenIDs)
}

func TestResolve_ConcurrentCallersShareOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	// hold the fetch open long enough for every caller to pile onto it
	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		DoAndReturn(func(context.Context, domain.Address, int) (*blockvision.AccountNFTsPage, error) {
			time.Sleep(50 * time.Millisecond)
			return nftsPage([]blockvision.TokenHolding{{TokenID: 7, Quantity: 1}}, 0), nil
		}).
		Times(1)
	blobs.EXPECT().Write(gomock.Any(), "holdings_last_good", gomock.Any()).Return(nil).Times(1)

	const callers = 8
	results := make([]*holdings.Result, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = resolver.Resolve(context.Background(), owner, collection, false)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		require.NotNil(t, result)
		assert.True(t, result.OK)
		assert.Equal(t, []int64{7}, result.TokenIDs)
	}
}

func TestRecentKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newTestClock(ctrl)
	lastGood, blobs := newLastGood(ctrl, clock)
	client := mocks.NewMockIndexerClient(ctrl)
	resolver := holdings.NewResolver(client, lastGood, clock, testResolverConfig())

	client.EXPECT().
		AccountNFTs(gomock.Any(), owner, 1).
		Return(nftsPage([]blockvision.TokenHolding{{TokenID: 1, Quantity: 1}}, 0), nil)
	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	resolver.Resolve(context.Background(), owner, collection, false)

	keys := resolver.RecentKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, domain.HoldingKey{Owner: owner, Collection: collection}, keys[0])
}
