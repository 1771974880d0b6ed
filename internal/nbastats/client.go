// Package nbastats is a small client for the stats.nba.com JSON endpoints.
package nbastats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/huangsam/hoopstat/internal/contract"
)

// ErrUnsupportedVariant is returned when a box score variant has no matching endpoint.
var ErrUnsupportedVariant = errors.New("unsupported box score variant")

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// defaultUserAgent mimics a desktop browser; the service rejects obvious bots.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client handles stats.nba.com requests, optionally backed by a response cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      contract.CacheStore
	cacheTTL   time.Duration
	now        func() time.Time

	// boxScoreThrottle spaces box score requests that reach the network.
	// Cache hits never wait on it. Nil means no spacing.
	boxScoreThrottle *rate.Limiter
}

var _ contract.StatsClient = &Client{} // Compile-time check

// NewClient creates a client for baseURL. A nil store disables response caching,
// and a zero ttl keeps cached responses until their schema version changes.
func NewClient(baseURL string, timeout time.Duration, store contract.CacheStore, ttl time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		cache:      store,
		cacheTTL:   ttl,
		now:        time.Now,
	}
}

// NewClientFromConfig creates a client using the validated configuration.
func NewClientFromConfig(cfg *contract.Config, mgr contract.CacheManager) *Client {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetResponseStore()
	}
	client := NewClient(cfg.BaseURL, cfg.Timeout, store, cfg.CacheTTL)
	client.SetBoxScoreDelay(cfg.Delay)
	return client
}

// SetBoxScoreDelay spaces box score network requests at least delay apart.
// A non-positive delay removes the spacing.
func (c *Client) SetBoxScoreDelay(delay time.Duration) {
	if delay <= 0 {
		c.boxScoreThrottle = nil
		return
	}
	c.boxScoreThrottle = NewThrottle(delay)
}

// get returns the body of endpoint?params, from cache when possible.
// A non-nil throttle is waited on only when the request goes to the network.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, throttle *rate.Limiter) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	key := generateCacheKey(endpoint, params)
	if body := c.checkCacheHit(key); body != nil {
		return body, nil
	}

	if throttle != nil {
		if err := throttle.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting to fetch %s: %w", endpoint, err)
		}
	}

	body, err := c.fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	c.storeResponse(key, body)
	return body, nil
}

// fetch makes an HTTP GET request and returns the raw body.
func (c *Client) fetch(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("stats API error: status=%d, body=%s", resp.StatusCode, string(snippet))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
