package tablequery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestActionRunnerDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method=%s", r.Method)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("body: %v", err)
		}
		if body["published"] != true {
			t.Errorf("body=%v", body)
		}
		fmt.Fprintf(w, `{"success":true,"message":"Article published"}`)
	}))
	defer srv.Close()

	runner := NewActionRunner(srv.URL, nil)
	res, err := runner.Do(context.Background(), Action{
		Method: http.MethodPut,
		URL:    "/api/articles/7/publish",
		Body:   map[string]interface{}{"published": true},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if !res.Success || res.Message != "Article published" {
		t.Fatalf("result=%+v", res)
	}
}

func TestActionRunnerSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, `{"success":false,"error":"slug already exists"}`)
	}))
	defer srv.Close()

	runner := NewActionRunner(srv.URL, nil)
	_, err := runner.Do(context.Background(), Action{Method: http.MethodPost, URL: "/api/articles"})
	if err == nil || !strings.Contains(err.Error(), "slug already exists") {
		t.Fatalf("err=%v", err)
	}
}

func TestActionRunnerSuccessFalseIsFailure(t *testing.T) {
	// Some endpoints report failure with a 200, success:false and only a
	// message; the empty error field must not make it look like a success.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"success":false,"message":"article is locked by another editor"}`)
	}))
	defer srv.Close()

	runner := NewActionRunner(srv.URL, nil)
	res, err := runner.Do(context.Background(), Action{Method: http.MethodDelete, URL: "/api/articles/7"})
	if err == nil || !strings.Contains(err.Error(), "article is locked by another editor") {
		t.Fatalf("err=%v", err)
	}
	if res == nil || res.Success {
		t.Fatalf("result=%+v", res)
	}
}

func TestRunBulkSequentialAggregate(t *testing.T) {
	var order []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/2") {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, `{"success":false,"error":"locked"}`)
			return
		}
		fmt.Fprintf(w, `{"success":true}`)
	}))
	defer srv.Close()

	runner := NewActionRunner(srv.URL, nil)
	actions := []Action{
		{Method: http.MethodDelete, URL: "/api/articles/1"},
		{Method: http.MethodDelete, URL: "/api/articles/2"},
		{Method: http.MethodDelete, URL: "/api/articles/3"},
	}

	err := runner.RunBulk(context.Background(), "/api/articles", actions)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 actions failed") {
		t.Fatalf("err=%v", err)
	}
	// All rows are attempted in order despite the failure.
	if len(order) != 3 || order[0] != "/api/articles/1" || order[2] != "/api/articles/3" {
		t.Fatalf("order=%v", order)
	}
}

func TestRunBulkInvalidatesAfterPartialSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `{"data":[],"metadata":{"count":0}}`)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/2") {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, `{"success":false,"error":"locked"}`)
			return
		}
		fmt.Fprintf(w, `{"success":true}`)
	}))
	defer srv.Close()

	client := NewCachingClient(srv.URL)
	runner := NewActionRunner(srv.URL, client)

	// Warm the cache.
	q := ListQuery{Endpoint: "/api/articles", PageKey: "/admin/articles", Limit: 10}
	if _, err := client.List(context.Background(), q); err != nil {
		t.Fatalf("list: %v", err)
	}

	_ = runner.RunBulk(context.Background(), "/api/articles", []Action{
		{Method: http.MethodDelete, URL: "/api/articles/1"},
		{Method: http.MethodDelete, URL: "/api/articles/2"},
	})

	// The cache must have been invalidated because one delete succeeded.
	if _, ok := peekCache(client, q); ok {
		t.Fatalf("cache entry survived bulk mutation")
	}
}

// peekCache looks up the client's cache entry for a descriptor.
func peekCache(c *CachingClient, q ListQuery) ([]byte, bool) {
	return c.cache.Get(context.Background(), q.CacheKey())
}

func TestRunBulkEmpty(t *testing.T) {
	runner := NewActionRunner("http://unused", nil)
	if err := runner.RunBulk(context.Background(), "/api/articles", nil); err != nil {
		t.Fatalf("empty bulk: %v", err)
	}
}
