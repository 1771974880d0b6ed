package nbastats

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"time"
)

// currentCacheVersion defines the version of the cached response format.
const currentCacheVersion = 1

// checkCacheHit returns the cached body for key, or nil on a miss.
func (c *Client) checkCacheHit(key string) []byte {
	if c.cache == nil {
		return nil
	}
	data, version, ts, err := c.cache.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version != currentCacheVersion {
		return nil
	}
	if c.cacheTTL > 0 && c.now().Sub(time.Unix(ts, 0)) > c.cacheTTL {
		return nil // Stale
	}
	return data
}

// storeResponse saves a successful body; cache failures never fail the request.
func (c *Client) storeResponse(key string, body []byte) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Set(key, body, currentCacheVersion, c.now().Unix())
}

// generateCacheKey creates a unique key for an endpoint and its query.
// url.Values.Encode sorts by key, so parameter order never matters.
func generateCacheKey(endpoint string, params url.Values) string {
	raw := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}
