package tablequery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Metadata is the list response metadata envelope.
type Metadata struct {
	Count int64 `json:"count"`
}

// ListEnvelope is the raw list response: rows stay undecoded until the
// typed binding unwraps them.
type ListEnvelope struct {
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
}

// QueryClient is the caching query layer consumed by the bindings.
type QueryClient interface {
	List(ctx context.Context, q ListQuery) (*ListEnvelope, error)
	Invalidate(ctx context.Context, endpoint string) error
}

// Cache is the pluggable response cache behind CachingClient.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
}

// memoryCache is the default in-process cache with per-entry expiry.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache returns an in-memory Cache.
func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

const (
	defaultCacheTTL = 30 * time.Second
	// defaultMaxRetries bounds retries per fetch; there is no unbounded
	// retry loop anywhere in the client.
	defaultMaxRetries = 2
)

// CachingClient fetches list descriptors over HTTP with a staleness
// window, per-key request deduplication and a bounded retry policy.
// At most one request per distinct cache key is in flight at a time;
// superseded requests are not aborted, their responses simply land under
// their own (now unread) key.
type CachingClient struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	ttl        time.Duration
	maxRetries int
	group      singleflight.Group
}

// ClientOption customizes a CachingClient.
type ClientOption func(*CachingClient)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *CachingClient) { c.httpClient = h }
}

func WithCache(cache Cache) ClientOption {
	return func(c *CachingClient) { c.cache = cache }
}

func WithTTL(ttl time.Duration) ClientOption {
	return func(c *CachingClient) { c.ttl = ttl }
}

func WithMaxRetries(n int) ClientOption {
	return func(c *CachingClient) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

func NewCachingClient(baseURL string, opts ...ClientOption) *CachingClient {
	c := &CachingClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      NewMemoryCache(),
		ttl:        defaultCacheTTL,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List resolves the descriptor through the cache, collapsing concurrent
// callers of the same key into one logical read.
func (c *CachingClient) List(ctx context.Context, q ListQuery) (*ListEnvelope, error) {
	key := q.CacheKey()

	if raw, ok := c.cache.Get(ctx, key); ok {
		return decodeEnvelope(raw)
	}

	raw, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another waiter may have populated the cache while we queued.
		if cached, ok := c.cache.Get(ctx, key); ok {
			return cached, nil
		}
		body, err := c.fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		c.cache.Set(ctx, key, body, c.ttl)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(raw.([]byte))
}

// Invalidate drops every cached page of the endpoint; the next List for
// any key under it refetches. Cache keys always continue with "?", so
// the prefix cannot swallow a sibling endpoint whose path merely starts
// with this one.
func (c *CachingClient) Invalidate(ctx context.Context, endpoint string) error {
	c.cache.DeletePrefix(ctx, endpoint+"?")
	return nil
}

func (c *CachingClient) fetch(ctx context.Context, q ListQuery) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		body, retryable, err := c.doRequest(ctx, q)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		logrus.Warnf("tablequery: fetch %s attempt %d failed: %v", q.Endpoint, attempt+1, err)
	}
	return nil, lastErr
}

func (c *CachingClient) doRequest(ctx context.Context, q ListQuery) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.URL(c.baseURL), nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("tablequery: %s returned %d", q.Endpoint, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("tablequery: %s returned %d", q.Endpoint, resp.StatusCode)
	}
	return body, false, nil
}

func decodeEnvelope(raw []byte) (*ListEnvelope, error) {
	var env ListEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("tablequery: malformed list response: %w", err)
	}
	return &env, nil
}
