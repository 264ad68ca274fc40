package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
)

const PROVIDER_NAME = "openai"

const (
	fortuneModel       = "gpt-4o-mini"
	imageModel         = "gpt-image-1"
	imageFallbackModel = "dall-e-3"
)

var allowedImageSizes = map[string]bool{
	"256x256":   true,
	"512x512":   true,
	"1024x1024": true,
	"1024x1792": true,
	"1792x1024": true,
	"1536x1024": true,
	"1024x1536": true,
	"auto":      true,
}

// NormalizeImageSize clamps a requested size to the supported set
func NormalizeImageSize(size string) string {
	size = strings.TrimSpace(size)
	if allowedImageSizes[size] {
		return size
	}
	return "1024x1024"
}

// FortuneRequest describes one fortune generation
type FortuneRequest struct {
	Topic string
	Vibe  string
	Name  string
}

// Client defines the interface for model operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/openai_client.go -package=mocks -mock_names=Client=MockFortuneClient
type Client interface {
	// Fortune generates a short fortune cookie message
	Fortune(ctx context.Context, req FortuneRequest) (string, error)

	// Image generates one image and returns the raw bytes
	Image(ctx context.Context, prompt, size string) ([]byte, error)
}

// OpenAIClient implements the model client against the OpenAI API
type OpenAIClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	baseURL    string
	apiKey     string
}

// NewClient creates a new model client
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, baseURL, apiKey string) Client {
	return &OpenAIClient{
		httpClient: httpClient,
		json:       json,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *OpenAIClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
}

// Fortune generates a short fortune cookie message
func (c *OpenAIClient) Fortune(ctx context.Context, req FortuneRequest) (string, error) {
	vibe := req.Vibe
	if vibe == "" {
		vibe = "optimistic"
	}

	parts := []string{
		"Write a short, punchy fortune cookie message.",
		fmt.Sprintf("Vibe: %s.", vibe),
	}
	if req.Topic != "" {
		parts = append(parts, fmt.Sprintf("Topic: %s.", req.Topic))
	}
	if req.Name != "" {
		parts = append(parts, fmt.Sprintf("Optional signer/name to nod at: %s.", req.Name))
	}
	parts = append(parts, "Limit to ~160 characters. Avoid quotes and emojis. Return plain text only.")

	payload := map[string]interface{}{
		"model": fortuneModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a concise fortune-cookie copywriter."},
			{"role": "user", "content": strings.Join(parts, " ")},
		},
		"temperature": 0.9,
		"max_tokens":  120,
	}
	body, err := c.json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/chat/completions", c.headers(), "application/json", body)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("OpenAI error %d: %s", resp.StatusCode, resp.Body)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal OpenAI response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no content from model")
	}
	fortune := strings.TrimSpace(result.Choices[0].Message.Content)
	if fortune == "" {
		return "", fmt.Errorf("no content from model")
	}
	return fortune, nil
}

// Image generates one image and returns the raw bytes. Access to the primary
// model is gated per organization, so restricted responses fall back to the
// older model.
func (c *OpenAIClient) Image(ctx context.Context, prompt, size string) ([]byte, error) {
	data, err := c.generate(ctx, imageModel, prompt, size)
	if err != nil && isRestrictedErr(err) {
		return c.generate(ctx, imageFallbackModel, prompt, size)
	}
	return data, err
}

func (c *OpenAIClient) generate(ctx context.Context, model, prompt, size string) ([]byte, error) {
	payload := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"n":      1,
		"size":   NormalizeImageSize(size),
	}
	body, err := c.json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/images/generations", c.headers(), "application/json", body)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("OpenAI error %d: %s", resp.StatusCode, resp.Body)
	}

	var result struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := c.json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OpenAI response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("no image returned")
	}

	first := result.Data[0]
	if first.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(first.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image payload: %w", err)
		}
		return data, nil
	}

	// some providers still answer with a hosted URL
	if first.URL != "" {
		dl, err := c.httpClient.Get(ctx, first.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		if dl.StatusCode < 200 || dl.StatusCode >= 300 {
			return nil, fmt.Errorf("failed to download image: status %d", dl.StatusCode)
		}
		return dl.Body, nil
	}

	return nil, fmt.Errorf("no image returned")
}

func isRestrictedErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "403") ||
		strings.Contains(msg, "policy") ||
		strings.Contains(msg, "not allowed")
}
