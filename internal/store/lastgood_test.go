package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/mocks"
	"github.com/fortune-cookies-ai/fc-backend/internal/store"
)

var testKey = domain.HoldingKey{
	Owner:      "0x1111111111111111111111111111111111111111",
	Collection: "0x2222222222222222222222222222222222222222",
}

func TestLastGoodStore_SetAndGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := mocks.NewMockBlobStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()

	blobs.EXPECT().Read(gomock.Any(), "holdings_last_good").Return(nil, store.ErrBlobNotFound)
	s := store.NewLastGoodStore(context.Background(), blobs, clock)

	blobs.EXPECT().Write(gomock.Any(), "holdings_last_good", gomock.Any()).Return(nil)
	s.Set(context.Background(), testKey, []int64{3, 9}, []int64{3, 3, 9})

	rec, ok := s.Get(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), rec.At)
	assert.Equal(t, []int64{3, 9}, rec.TokenIDs)
	assert.Equal(t, []int64{3, 3, 9}, rec.TokenIDsFlat)
}

func TestLastGoodStore_RejectsEmptyUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := mocks.NewMockBlobStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()

	blobs.EXPECT().Read(gomock.Any(), "holdings_last_good").Return(nil, store.ErrBlobNotFound)
	s := store.NewLastGoodStore(context.Background(), blobs, clock)

	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.Set(context.Background(), testKey, []int64{1}, []int64{1})

	// no further Write expected
	s.Set(context.Background(), testKey, nil, nil)

	rec, ok := s.Get(testKey)
	require.True(t, ok)
	assert.Equal(t, []int64{1}, rec.TokenIDs)
}

func TestLastGoodStore_LoadsPersistedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := mocks.NewMockBlobStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	persisted := []byte(`{
		"0x1111111111111111111111111111111111111111:0x2222222222222222222222222222222222222222": {
			"at": 1690000000000,
			"tokenIds": [7],
			"tokenIdsFlat": [7, 7]
		},
		"malformed-key": {"at": 1, "tokenIds": [1], "tokenIdsFlat": [1]}
	}`)
	blobs.EXPECT().Read(gomock.Any(), "holdings_last_good").Return(persisted, nil)

	s := store.NewLastGoodStore(context.Background(), blobs, clock)

	rec, ok := s.Get(testKey)
	require.True(t, ok)
	assert.Equal(t, int64(1690000000000), rec.At)
	assert.Equal(t, []int64{7}, rec.TokenIDs)
	assert.Equal(t, []int64{7, 7}, rec.TokenIDsFlat)

	// the malformed key was dropped
	assert.Len(t, s.Keys(), 1)
}

func TestLastGoodStore_ToleratesPersistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blobs := mocks.NewMockBlobStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.UnixMilli(1700000000000)).AnyTimes()

	blobs.EXPECT().Read(gomock.Any(), "holdings_last_good").Return(nil, store.ErrBlobNotFound)
	s := store.NewLastGoodStore(context.Background(), blobs, clock)

	blobs.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
	s.Set(context.Background(), testKey, []int64{1}, []int64{1})

	// the in-memory record survives the failed write
	_, ok := s.Get(testKey)
	assert.True(t, ok)
}
