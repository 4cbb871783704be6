package tablequery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type articleRow struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestBindingFetchDecodesAndRecordsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit=%q", got)
		}
		fmt.Fprintf(w, `{"data":[{"id":1,"title":"Go generics"},{"id":2,"title":"Channels"}],"metadata":{"count":23}}`)
	}))
	defer srv.Close()

	coord := NewCoordinator(NewStore())
	client := NewCachingClient(srv.URL)
	b := NewBinding[articleRow](coord, client, "/api/articles", "/admin/articles", PageConfig{DefaultLimit: 10})

	rows, err := b.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].Title != "Go generics" {
		t.Fatalf("rows=%+v", rows)
	}
	if coord.Store().Count(b.PageKey()) != 23 {
		t.Fatalf("count=%d", coord.Store().Count(b.PageKey()))
	}
}

func TestBindingSearchSuppressesFilterOnWire(t *testing.T) {
	var lastQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery.Store(r.URL.Query().Encode())
		fmt.Fprintf(w, `{"data":[],"metadata":{"count":0}}`)
	}))
	defer srv.Close()

	coord := NewCoordinator(NewStore())
	client := NewCachingClient(srv.URL)
	b := NewBinding[articleRow](coord, client, "/api/articles", "/admin/articles", PageConfig{
		DefaultLimit:  10,
		DefaultFilter: FilterObject{"topic": "golang"},
	})

	ctx := context.Background()
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	q, _ := lastQuery.Load().(string)
	if q == "" || !containsParam(q, "topic=golang") {
		t.Fatalf("default filter missing from request: %q", q)
	}

	coord.SetSearch(b.PageKey(), "generics")
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	q, _ = lastQuery.Load().(string)
	if containsParam(q, "topic=golang") {
		t.Fatalf("filter leaked into a search request: %q", q)
	}
	if !containsParam(q, "search=generics") {
		t.Fatalf("search missing: %q", q)
	}

	coord.SetSearch(b.PageKey(), "")
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	q, _ = lastQuery.Load().(string)
	if !containsParam(q, "topic=golang") {
		t.Fatalf("filter not restored on the wire: %q", q)
	}
}

func TestBindingMutateForcesRefetch(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		fmt.Fprintf(w, `{"data":[],"metadata":{"count":0}}`)
	}))
	defer srv.Close()

	coord := NewCoordinator(NewStore())
	client := NewCachingClient(srv.URL)
	b := NewBinding[articleRow](coord, client, "/api/articles", "/admin/articles", PageConfig{DefaultLimit: 10})

	ctx := context.Background()
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if hits != 1 {
		t.Fatalf("second fetch must be cached, hits=%d", hits)
	}

	if err := b.Mutate(ctx); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if _, err := b.Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if hits != 2 {
		t.Fatalf("mutate must mark the page stale, hits=%d", hits)
	}
}

func containsParam(encoded, param string) bool {
	for _, part := range splitParams(encoded) {
		if part == param {
			return true
		}
	}
	return false
}

func splitParams(encoded string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(encoded); i++ {
		if i == len(encoded) || encoded[i] == '&' {
			if i > start {
				out = append(out, encoded[start:i])
			}
			start = i + 1
		}
	}
	return out
}
