// Package divingfish implements the DivingFish (maimaidxprober)
// score-tracker client.
//
// DivingFish addresses players by username or platform account id, serves
// public best-scores lookups over an unauthenticated POST endpoint, and
// gates the full record list behind a per-user Import-Token header.
package divingfish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/rikka-bot/rikka-data/internal/provider"
)

// DefaultBaseURL is the production DivingFish prober API root.
const DefaultBaseURL = "https://www.diving-fish.com/api/maimaidxprober"

// Client is the shared HTTP client for all DivingFish endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a DivingFish HTTP client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// post performs a rate-limited JSON POST. DivingFish's public query endpoint
// needs no auth header.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, path)
}

// get performs a rate-limited GET with the per-user Import-Token header.
func (c *Client) get(ctx context.Context, path, importToken string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Import-Token", importToken)

	return c.send(req, path)
}

func (c *Client) send(req *http.Request, path string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, provider.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", provider.ErrUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(provider.NameDivingFish, resp.StatusCode, path)
	}
	return body, nil
}
