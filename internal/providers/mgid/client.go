package mgid

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

const PROVIDER_NAME = "mgid"

// Client defines the interface for the games identity vendor to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/mgid_client.go -package=mocks -mock_names=Client=MockMGIDClient
type Client interface {
	// Username resolves the registered username for a wallet, empty when
	// none is registered
	Username(ctx context.Context, wallet domain.Address) (string, error)
}

// MGIDClient implements the identity client
type MGIDClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	baseURL    string
}

// NewClient creates a new identity client
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, baseURL string) Client {
	return &MGIDClient{
		httpClient: httpClient,
		json:       json,
		baseURL:    baseURL,
	}
}

// Username resolves the registered username for a wallet
func (c *MGIDClient) Username(ctx context.Context, wallet domain.Address) (string, error) {
	q := url.Values{}
	q.Set("wallet", wallet.String())

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("%s/api/check-wallet?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to call identity API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("identity API error %d", resp.StatusCode)
	}

	var result struct {
		HasUsername bool `json:"hasUsername"`
		User        struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := c.json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal identity response: %w", err)
	}

	if !result.HasUsername {
		return "", nil
	}
	return result.User.Username, nil
}
