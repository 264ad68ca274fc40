package blockvision

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
	"github.com/fortune-cookies-ai/fc-backend/internal/logger"
)

const PROVIDER_NAME = "blockvision"

// UpstreamError is a non-2xx response from the indexer API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("indexer responded %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status indicates a transient condition
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// APIError is a well-formed response carrying a non-zero application code
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("indexer API code %d: %s", e.Code, e.Message)
}

// DecodeError is a response body that could not be normalized
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode indexer response: %v", e.cause)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// Config holds the gateway retry and pacing budget
type Config struct {
	BaseURL        string
	APIKey         string
	Retries        int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterMin      time.Duration
	JitterMax      time.Duration
	RequestTimeout time.Duration
}

// Client defines the interface for indexer operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/blockvision_client.go -package=mocks -mock_names=Client=MockIndexerClient
type Client interface {
	// AccountNFTs fetches one page of the account NFT listing
	AccountNFTs(ctx context.Context, owner domain.Address, pageIndex int) (*AccountNFTsPage, error)

	// CollectionHolders fetches one page of the collection holder listing
	CollectionHolders(ctx context.Context, collection domain.Address, limit int, cursor string) (*HoldersPage, error)

	// AccountHoldings fetches one page of per-token account holdings
	AccountHoldings(ctx context.Context, owner domain.Address, limit int, cursor string) (*HoldingsPage, error)
}

// BlockVisionClient implements the indexer client against the BlockVision API
type BlockVisionClient struct {
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	cfg        Config
}

// NewClient creates a new indexer client
func NewClient(httpClient adapter.HTTPClient, clock adapter.Clock, cfg Config) Client {
	return &BlockVisionClient{
		httpClient: httpClient,
		clock:      clock,
		cfg:        cfg,
	}
}

// AccountNFTs fetches one page of the account NFT listing
func (c *BlockVisionClient) AccountNFTs(ctx context.Context, owner domain.Address, pageIndex int) (*AccountNFTsPage, error) {
	q := url.Values{}
	q.Set("address", owner.String())
	q.Set("pageIndex", strconv.Itoa(pageIndex))

	body, err := c.fetch(ctx, fmt.Sprintf("%s/account/nfts?%s", c.cfg.BaseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	return parseAccountNFTsPage(body, pageIndex)
}

// CollectionHolders fetches one page of the collection holder listing
func (c *BlockVisionClient) CollectionHolders(ctx context.Context, collection domain.Address, limit int, cursor string) (*HoldersPage, error) {
	q := url.Values{}
	q.Set("contractAddress", collection.String())
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	body, err := c.fetch(ctx, fmt.Sprintf("%s/collection/holders?%s", c.cfg.BaseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	return parseHoldersPage(body)
}

// AccountHoldings fetches one page of per-token account holdings
func (c *BlockVisionClient) AccountHoldings(ctx context.Context, owner domain.Address, limit int, cursor string) (*HoldingsPage, error) {
	q := url.Values{}
	q.Set("address", owner.String())
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	body, err := c.fetch(ctx, fmt.Sprintf("%s/account/nft/holdings?%s", c.cfg.BaseURL, q.Encode()))
	if err != nil {
		return nil, err
	}
	return parseHoldingsPage(body)
}

// fetch performs one budgeted request cycle. Transient failures (429, 5xx,
// transport errors) are retried up to Retries times with capped exponential
// backoff; a Retry-After hint from the upstream replaces the computed delay.
// Other 4xx responses are terminal immediately.
func (c *BlockVisionClient) fetch(ctx context.Context, requestURL string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.BaseDelay
	bo.MaxInterval = c.cfg.MaxDelay
	bo.MaxElapsedTime = 0
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.Reset()

	headers := map[string]string{
		"accept":    "application/json",
		"x-api-key": c.cfg.APIKey,
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		resp, err := c.httpClient.Get(reqCtx, requestURL, headers)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("indexer request failed: %w", err)
			if attempt == c.cfg.Retries {
				return nil, lastErr
			}
			if err := c.wait(ctx, c.delay(bo)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp.Body, nil
		}

		upErr := &UpstreamError{StatusCode: resp.StatusCode, Body: truncateBody(resp.Body)}
		if !upErr.Retryable() || attempt == c.cfg.Retries {
			return nil, upErr
		}
		lastErr = upErr

		delay := c.delay(bo)
		if resp.RetryAfter > 0 {
			delay = resp.RetryAfter
		}
		logger.WarnCtx(ctx, "retrying indexer request",
			zap.String("provider", PROVIDER_NAME),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))
		if err := c.wait(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// delay returns the next capped exponential step plus jitter
func (c *BlockVisionClient) delay(bo *backoff.ExponentialBackOff) time.Duration {
	return bo.NextBackOff() + c.Jitter()
}

// Jitter returns a random pacing offset within the configured window
func (c *BlockVisionClient) Jitter() time.Duration {
	if c.cfg.JitterMax <= c.cfg.JitterMin {
		return c.cfg.JitterMin
	}
	return c.cfg.JitterMin + time.Duration(rand.Int63n(int64(c.cfg.JitterMax-c.cfg.JitterMin+1))) //nolint:gosec
}

func (c *BlockVisionClient) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(d):
		return nil
	}
}

func truncateBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
