package tablequery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func listServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"id":1}],"metadata":{"count":1}}`)
	}))
}

func TestCachingClientHitsCacheOnRepeat(t *testing.T) {
	var hits int64
	srv := listServer(t, &hits)
	defer srv.Close()

	c := NewCachingClient(srv.URL, WithTTL(time.Minute))
	q := ListQuery{Endpoint: "/api/articles", PageKey: "/admin/articles", Limit: 10}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		env, err := c.List(ctx, q)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if env.Metadata.Count != 1 {
			t.Fatalf("count=%d", env.Metadata.Count)
		}
	}
	if hits != 1 {
		t.Fatalf("identical keys must hit cache, server saw %d requests", hits)
	}

	// A different offset is a different key and misses.
	q.Offset = 10
	if _, err := c.List(ctx, q); err != nil {
		t.Fatalf("list: %v", err)
	}
	if hits != 2 {
		t.Fatalf("hits=%d", hits)
	}
}

func TestCachingClientDedupesConcurrent(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		time.Sleep(30 * time.Millisecond)
		fmt.Fprintf(w, `{"data":[],"metadata":{"count":0}}`)
	}))
	defer srv.Close()

	c := NewCachingClient(srv.URL)
	q := ListQuery{Endpoint: "/api/articles", PageKey: "/admin/articles", Limit: 10}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.List(context.Background(), q); err != nil {
				t.Errorf("list: %v", err)
			}
		}()
	}
	wg.Wait()

	if hits != 1 {
		t.Fatalf("concurrent callers of one key must share a request, server saw %d", hits)
	}
}

func TestCachingClientInvalidate(t *testing.T) {
	var hits int64
	srv := listServer(t, &hits)
	defer srv.Close()

	c := NewCachingClient(srv.URL)
	ctx := context.Background()
	articles := ListQuery{Endpoint: "/api/articles", PageKey: "/admin/articles", Limit: 10}
	topics := ListQuery{Endpoint: "/api/topics", PageKey: "/admin/topics", Limit: 10}

	if _, err := c.List(ctx, articles); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := c.List(ctx, topics); err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := c.Invalidate(ctx, "/api/articles"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	// Articles refetches, topics is still cached.
	if _, err := c.List(ctx, articles); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := c.List(ctx, topics); err != nil {
		t.Fatalf("list: %v", err)
	}
	if hits != 3 {
		t.Fatalf("hits=%d, want 3", hits)
	}
}

func TestCachingClientInvalidateSparesSiblingEndpoint(t *testing.T) {
	var hits int64
	srv := listServer(t, &hits)
	defer srv.Close()

	c := NewCachingClient(srv.URL)
	ctx := context.Background()
	articles := ListQuery{Endpoint: "/api/articles", PageKey: "/admin/articles", Limit: 10}
	archive := ListQuery{Endpoint: "/api/articles-archive", PageKey: "/admin/archive", Limit: 10}

	if _, err := c.List(ctx, articles); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := c.List(ctx, archive); err != nil {
		t.Fatalf("list: %v", err)
	}

	if err := c.Invalidate(ctx, "/api/articles"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	// The sibling endpoint whose path merely extends "/api/articles" keeps
	// its cached page; only the invalidated endpoint refetches.
	if _, ok := peekCache(c, archive); !ok {
		t.Fatalf("sibling endpoint was swept by the invalidation")
	}
	if _, ok := peekCache(c, articles); ok {
		t.Fatalf("invalidated endpoint still cached")
	}
	if _, err := c.List(ctx, archive); err != nil {
		t.Fatalf("list: %v", err)
	}
	if hits != 2 {
		t.Fatalf("hits=%d, want 2", hits)
	}
}

func TestCachingClientBoundedRetry(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCachingClient(srv.URL, WithMaxRetries(2))
	_, err := c.List(context.Background(), ListQuery{Endpoint: "/api/articles", Limit: 10})
	if err == nil {
		t.Fatalf("expected error")
	}
	if hits != 3 {
		t.Fatalf("attempts=%d, want exactly 1+2 retries", hits)
	}
}

func TestCachingClientRecoversAfterRetry(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"data":[],"metadata":{"count":0}}`)
	}))
	defer srv.Close()

	c := NewCachingClient(srv.URL, WithMaxRetries(2))
	env, err := c.List(context.Background(), ListQuery{Endpoint: "/api/articles", Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if env.Metadata.Count != 0 || hits != 2 {
		t.Fatalf("count=%d hits=%d", env.Metadata.Count, hits)
	}
}

func TestCachingClientClientErrorNotRetried(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		http.Error(w, "bad filter", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewCachingClient(srv.URL, WithMaxRetries(2))
	if _, err := c.List(context.Background(), ListQuery{Endpoint: "/api/articles", Limit: 10}); err == nil {
		t.Fatalf("expected error")
	}
	if hits != 1 {
		t.Fatalf("4xx must not be retried, attempts=%d", hits)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	cache.Set(ctx, "k", []byte("v"), 20*time.Millisecond)

	if _, ok := cache.Get(ctx, "k"); !ok {
		t.Fatalf("fresh entry missing")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Fatalf("stale entry served")
	}
}
