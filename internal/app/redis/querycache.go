package redis

import (
	"context"
	"time"
)

const listCachePrefix = "list:"

// List responses are cached under the same composite key the dashboard
// client computes for its own cache, so both layers agree on what "the
// same query" means.

// GetList returns a cached list response body.
func (c *Client) GetList(ctx context.Context, cacheKey string) ([]byte, bool) {
	raw, err := c.Get(ctx, listCachePrefix+cacheKey)
	if err != nil {
		return nil, false
	}
	return []byte(raw), true
}

// SetList caches a list response body for the staleness window.
func (c *Client) SetList(ctx context.Context, cacheKey string, body []byte, ttl time.Duration) error {
	return c.Set(ctx, listCachePrefix+cacheKey, body, ttl)
}

// InvalidateEndpoint drops every cached page of one endpoint after a
// mutation, the server-side analogue of the client's mutate(). Cache
// keys always continue with "?" after the endpoint; it is escaped here
// because "?" is itself a single-character wildcard in redis MATCH
// patterns, and the bare endpoint prefix would also sweep a sibling
// endpoint whose path starts with this one.
func (c *Client) InvalidateEndpoint(ctx context.Context, endpoint string) error {
	return c.DeleteByPattern(ctx, listCachePrefix+endpoint+`\?*`)
}
