package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/handler"
)

// API paths used by the bot
const (
	pathBoxStats     = "/api/v1/box/stats"
	pathRewards      = "/api/v1/box/rewards"
	pathLeaderboards = "/api/v1/box/leaderboards"
	pathPremiumLeft  = "/api/v1/box/premium-left"
	pathBalance      = "/api/v1/token/balance"
	pathHealthz      = "/healthz"
)

// APIClient handles communication with the BoxLedger API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string

	maxRetries int
	retryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIKey:     apiKey,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

// doRequest performs an HTTP request, retrying transport failures and 5xx responses
// with exponential backoff
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// getJSON issues a GET and decodes a 200 body into out. Other statuses become
// "API error: <message>" using the server's error body when present.
func (c *APIClient) getJSON(path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := c.doRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("API error: %s", errResp.Error)
		}
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetStats returns the sale-wide snapshot
func (c *APIClient) GetStats() (*handler.TotalStatsResponse, error) {
	var stats handler.TotalStatsResponse
	if err := c.getJSON(pathBoxStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetRewards returns the reward totals of account
func (c *APIClient) GetRewards(account string) (*handler.UserRewardsResponse, error) {
	var rewards handler.UserRewardsResponse
	if err := c.getJSON(pathRewards, url.Values{"account": {account}}, &rewards); err != nil {
		return nil, err
	}
	return &rewards, nil
}

// GetLeaderboards returns both top lists
func (c *APIClient) GetLeaderboards() (*handler.LeaderboardsResponse, error) {
	var boards handler.LeaderboardsResponse
	if err := c.getJSON(pathLeaderboards, nil, &boards); err != nil {
		return nil, err
	}
	return &boards, nil
}

// GetPremiumLeft returns how many premium boxes account may still open
func (c *APIClient) GetPremiumLeft(account string) (*handler.PremiumLeftResponse, error) {
	var left handler.PremiumLeftResponse
	if err := c.getJSON(pathPremiumLeft, url.Values{"account": {account}}, &left); err != nil {
		return nil, err
	}
	return &left, nil
}

// GetBalance returns the token balance of account
func (c *APIClient) GetBalance(account string) (*handler.BalanceResponse, error) {
	var bal handler.BalanceResponse
	if err := c.getJSON(pathBalance, url.Values{"account": {account}}, &bal); err != nil {
		return nil, err
	}
	return &bal, nil
}

// Healthy reports whether the API liveness probe answers 200
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + pathHealthz)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
