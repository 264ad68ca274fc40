package pinata_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/mocks"
	"github.com/fortune-cookies-ai/fc-backend/internal/providers/pinata"
)

// a minimal valid PNG header so content detection sees an image
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newTestPinner(t *testing.T) (*mocks.MockHTTPClient, pinata.Pinner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	httpClient := mocks.NewMockHTTPClient(ctrl)
	return httpClient, pinata.NewClient(httpClient, adapter.NewJSON(), "https://api.pinata.cloud", "test-jwt")
}

func TestPinImage_UploadsAndReturnsCID(t *testing.T) {
	httpClient, pinner := newTestPinner(t)

	httpClient.EXPECT().
		PostMultipart(gomock.Any(), "https://api.pinata.cloud/pinning/pinFileToIPFS",
			map[string]string{"Authorization": "Bearer test-jwt"},
			"file", "cookie.png", "image/png", pngBytes).
		Return(&adapter.Response{
			StatusCode: 200,
			Body:       []byte(`{"IpfsHash":"QmTestCID"}`),
		}, nil)

	cid, err := pinner.PinImage(context.Background(), "cookie.png", pngBytes)

	require.NoError(t, err)
	assert.Equal(t, "QmTestCID", cid)
}

func TestPinImage_AcceptsAlternateCIDFields(t *testing.T) {
	httpClient, pinner := newTestPinner(t)

	httpClient.EXPECT().
		PostMultipart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&adapter.Response{
			StatusCode: 200,
			Body:       []byte(`{"cid":"bafyTestCID"}`),
		}, nil)

	cid, err := pinner.PinImage(context.Background(), "cookie.png", pngBytes)

	require.NoError(t, err)
	assert.Equal(t, "bafyTestCID", cid)
}

func TestPinImage_RejectsNonImagePayload(t *testing.T) {
	_, pinner := newTestPinner(t)

	_, err := pinner.PinImage(context.Background(), "note.txt", []byte("just some text"))

	assert.ErrorContains(t, err, "unsupported content type")
}

func TestPinImage_RejectsEmptyPayload(t *testing.T) {
	_, pinner := newTestPinner(t)

	_, err := pinner.PinImage(context.Background(), "empty.png", nil)

	assert.ErrorContains(t, err, "empty payload")
}

func TestPinImage_APIError(t *testing.T) {
	httpClient, pinner := newTestPinner(t)

	httpClient.EXPECT().
		PostMultipart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&adapter.Response{StatusCode: 401, Body: []byte(`unauthorized`)}, nil)

	_, err := pinner.PinImage(context.Background(), "cookie.png", pngBytes)

	assert.ErrorContains(t, err, "Pinata error 401")
}

func TestPinImage_MissingCID(t *testing.T) {
	httpClient, pinner := newTestPinner(t)

	httpClient.EXPECT().
		PostMultipart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&adapter.Response{StatusCode: 200, Body: []byte(`{}`)}, nil)

	_, err := pinner.PinImage(context.Background(), "cookie.png", pngBytes)

	assert.ErrorContains(t, err, "no CID")
}
