package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"grid-backtest/internal/model"
)

// HistoricalClient fetches OHLCV bars from a local broker gateway bridge
// (an IB-gateway-style REST sidecar). The client owns retry/backoff and a
// bounded per-request timeout; the simulation core never blocks on it.
type HistoricalClient struct {
	BaseURL    string
	Client     *http.Client
	MaxRetries int
}

// NewHistoricalClient creates a market data client.
// If baseURL is empty, defaults to "http://127.0.0.1:5000" (local gateway).
func NewHistoricalClient(baseURL string) *HistoricalClient {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	return &HistoricalClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		MaxRetries: 3,
	}
}

// MarketDataError represents a non-transient error from the gateway
// (bad credentials, rate limiting). Transient failures are retried and never
// surface as errors.
type MarketDataError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *MarketDataError) Error() string {
	return e.Message
}

// FetchBars requests historical bars for a symbol. duration and barSize are
// opaque strings forwarded to the gateway (e.g. "1 D", "1 min").
//
// Transient failures (network errors, 5xx, empty payloads) are retried up to
// MaxRetries with a short backoff; once retries are exhausted the client
// returns an empty slice and no error — a zero-bar backtest is a valid run,
// not a failure. Auth and rate-limit responses return a *MarketDataError
// immediately.
func (c *HistoricalClient) FetchBars(symbol, duration, barSize string) ([]model.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	if cache := GetCache(); cache != nil {
		key := GenerateCacheKey(symbol, duration, barSize)
		if cached, found := cache.Get(key); found {
			log.Printf("[MarketData] Cache hit: %d bars (symbol=%s, duration=%s, bar=%s)",
				len(cached.Bars), symbol, duration, barSize)
			return cached.Bars, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/v1/api/hmds/history")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("symbol", symbol)
	if duration != "" {
		q.Set("duration", duration)
	}
	if barSize != "" {
		q.Set("bar", barSize)
	}
	u.RawQuery = q.Encode()

	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		bars, retryable, err := c.fetchOnce(u.String(), symbol)
		if err != nil && !retryable {
			return nil, err
		}
		if err == nil && len(bars) > 0 {
			if cache := GetCache(); cache != nil {
				key := GenerateCacheKey(symbol, duration, barSize)
				cache.Set(key, &model.HistoricalBarsResponse{Symbol: symbol, Bars: bars})
			}
			return bars, nil
		}
		log.Printf("[MarketData] No historical data received, retrying (%d/%d) (symbol=%s)",
			attempt, c.MaxRetries, symbol)
		if attempt < c.MaxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	log.Printf("[MarketData] Failed to retrieve historical data after retries (symbol=%s)", symbol)
	return []model.Bar{}, nil
}

// fetchOnce performs one request. The second return value reports whether a
// failure is worth retrying.
func (c *HistoricalClient) fetchOnce(rawURL, symbol string) ([]model.Bar, bool, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[MarketData] Request failed: %v (duration: %v, symbol=%s)", err, time.Since(start), symbol)
		return nil, true, err
	}
	defer resp.Body.Close()

	log.Printf("[MarketData] Response: %d %s (duration: %v, symbol=%s)",
		resp.StatusCode, resp.Status, time.Since(start), symbol)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusUnauthorized:
		return nil, false, &MarketDataError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: gateway session is not authenticated",
		}
	case http.StatusForbidden:
		return nil, false, &MarketDataError{
			StatusCode: resp.StatusCode,
			Code:       "FORBIDDEN",
			Message:    "Forbidden: insufficient market data permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, false, &MarketDataError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, true, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, resp.Status)
	}

	var result model.HistoricalBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[MarketData] Error decoding response: %v (symbol=%s)", err, symbol)
		return nil, true, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[MarketData] Success: Received %d bars (symbol=%s)", len(result.Bars), symbol)
	return result.Bars, true, nil
}
