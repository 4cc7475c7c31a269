// Package lxns implements the LXNS score-tracker client.
//
// LXNS addresses players by friend code or platform account id, uses a
// developer-level Authorization header for public reads, and a per-user
// X-User-Token header for personal-token reads. Rate limiting is handled via
// a token bucket limiter.
package lxns

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rikka-bot/rikka-data/internal/provider"
)

// DefaultBaseURL is the production LXNS maimai API root.
const DefaultBaseURL = "https://maimai.lxns.net/api/v0/maimai"

// Client is the shared HTTP client for all LXNS endpoints. Safe for
// concurrent use; the underlying http.Client pools connections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	devKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an LXNS HTTP client with rate limiting. devKey is the
// developer-level API key sent in the Authorization header.
func NewClient(baseURL, devKey string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		devKey:     devKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// envelope is the common LXNS response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// get performs a rate-limited GET with the developer Authorization header.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, path, params, http.Header{"Authorization": {c.devKey}})
}

// getUser performs a rate-limited GET authenticated with a player's personal
// API key instead of the developer key.
func (c *Client) getUser(ctx context.Context, path string, userToken string) (json.RawMessage, error) {
	return c.do(ctx, path, nil, http.Header{"X-User-Token": {userToken}})
}

func (c *Client) do(ctx context.Context, path string, params url.Values, headers http.Header) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

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
		return nil, provider.StatusError(provider.NameLXNS, resp.StatusCode, path)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response %s: %s: %w", path, truncate(body, 200), provider.ErrUpstream)
	}
	if !env.Success {
		return nil, fmt.Errorf("LXNS %s rejected: code=%d %s: %w", path, env.Code, env.Message, provider.ErrUpstream)
	}

	return env.Data, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
