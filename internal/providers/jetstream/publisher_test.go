package jetstream_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjetstream "github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/events"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
	"github.com/fortune-cookies-ai/fc-backend/internal/mocks"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testPublisherMocks struct {
	ctrl     *gomock.Controller
	natsJS   *mocks.MockNatsJetStream
	natsConn *mocks.MockNatsConn
	js       *mocks.MockJetStream
	clock    *mocks.MockClock
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tm := &testPublisherMocks{
		ctrl:     ctrl,
		natsJS:   mocks.NewMockNatsJetStream(ctrl),
		natsConn: mocks.NewMockNatsConn(ctrl),
		js:       mocks.NewMockJetStream(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()
	return tm
}

func testPublisherConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "FC_EVENTS",
		MaxReconnects:  10,
		ReconnectWait:  time.Second,
		ConnectionName: "test-publisher",
	}
}

func TestNewPublisher_Success(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(testPublisherConfig().URL, gomock.Any()).
		Return(tm.natsConn, tm.js, nil)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)

	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewPublisher_ConnectError(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)

	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestPublishEvent_StampsAndRoutesBySubject(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(tm.natsConn, tm.js, nil)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)
	require.NoError(t, err)

	tm.js.EXPECT().
		Publish(gomock.Any(), "events.score_registered", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjetstream.PublishOpt) (*natsjetstream.PubAck, error) {
			var ev events.Event
			require.NoError(t, json.Unmarshal(data, &ev))

			// the publisher stamps a sortable ID and emission time
			id, parseErr := ulid.Parse(ev.ID)
			require.NoError(t, parseErr)
			assert.Equal(t, uint64(1700000000000), id.Time())
			assert.Equal(t, time.Unix(1700000000, 0).UTC(), ev.At)
			assert.Equal(t, events.EventScoreRegistered, ev.Type)

			return &natsjetstream.PubAck{Stream: "FC_EVENTS", Sequence: 1}, nil
		})

	err = p.PublishEvent(context.Background(), &events.Event{
		Type:   events.EventScoreRegistered,
		Wallet: "0x1111111111111111111111111111111111111111",
	})

	assert.NoError(t, err)
}

func TestPublishEvent_KeepsCallerStamps(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(tm.natsConn, tm.js, nil)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)
	require.NoError(t, err)

	at := time.Unix(1600000000, 0).UTC()
	tm.js.EXPECT().
		Publish(gomock.Any(), "events.image_pinned", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjetstream.PublishOpt) (*natsjetstream.PubAck, error) {
			var ev events.Event
			require.NoError(t, json.Unmarshal(data, &ev))
			assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", ev.ID)
			assert.Equal(t, at, ev.At)
			return &natsjetstream.PubAck{}, nil
		})

	err = p.PublishEvent(context.Background(), &events.Event{
		ID:   "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Type: events.EventImagePinned,
		At:   at,
	})

	assert.NoError(t, err)
}

func TestPublishEvent_PublishError(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(tm.natsConn, tm.js, nil)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)
	require.NoError(t, err)

	tm.js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	err = p.PublishEvent(context.Background(), &events.Event{Type: events.EventMintRecorded})

	assert.ErrorContains(t, err, "failed to publish event")
}

func TestClose(t *testing.T) {
	tm := setupTestPublisher(t)

	tm.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(tm.natsConn, tm.js, nil)

	p, err := jetstream.NewPublisher(testPublisherConfig(), tm.natsJS, adapter.NewJSON(), tm.clock)
	require.NoError(t, err)

	tm.natsConn.EXPECT().Close()
	p.Close()
}
