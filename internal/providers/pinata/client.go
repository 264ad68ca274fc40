package pinata

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
)

const PROVIDER_NAME = "pinata"

// Pinner defines the interface for IPFS pinning to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/pinata_client.go -package=mocks -mock_names=Pinner=MockPinner
type Pinner interface {
	// PinImage pins image bytes and returns the CID. Non-image payloads
	// are rejected.
	PinImage(ctx context.Context, filename string, data []byte) (string, error)
}

// PinataClient implements Pinner against the Pinata pinning API
type PinataClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	baseURL    string
	jwt        string
}

// NewClient creates a new pinning client
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, baseURL, jwt string) Pinner {
	return &PinataClient{
		httpClient: httpClient,
		json:       json,
		baseURL:    baseURL,
		jwt:        jwt,
	}
}

// PinImage pins image bytes and returns the CID
func (c *PinataClient) PinImage(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty payload")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("unsupported content type %s", mime.String())
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.jwt,
	}
	resp, err := c.httpClient.PostMultipart(ctx, c.baseURL+"/pinning/pinFileToIPFS",
		headers, "file", filename, mime.String(), data)
	if err != nil {
		return "", fmt.Errorf("failed to call Pinata API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("Pinata error %d: %s", resp.StatusCode, resp.Body)
	}

	var result struct {
		IpfsHash string `json:"IpfsHash"`
		CID      string `json:"cid"`
		Hash     string `json:"Hash"`
	}
	if err := c.json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal Pinata response: %w", err)
	}

	for _, cid := range []string{result.IpfsHash, result.CID, result.Hash} {
		if cid != "" {
			return cid, nil
		}
	}
	return "", fmt.Errorf("no CID in Pinata response")
}
