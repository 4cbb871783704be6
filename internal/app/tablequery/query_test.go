package tablequery

import (
	"net/url"
	"testing"
	"time"
)

func baseQuery() ListQuery {
	return ListQuery{
		Endpoint: "/api/articles",
		PageKey:  "/admin/articles",
		Offset:   20,
		Limit:    10,
		Sort:     &Sort{Field: "title", Direction: Descending},
		Search:   "generics",
		Filter:   FilterObject{"topic": "golang", "published": true},
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	a, b := baseQuery(), baseQuery()
	// Rebuild the filter in a different insertion order.
	b.Filter = FilterObject{"published": true, "topic": "golang"}

	if a.CacheKey() != b.CacheKey() {
		t.Fatalf("identical tuples must share a key:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}
}

func TestCacheKeyChangesPerField(t *testing.T) {
	base := baseQuery()
	variants := map[string]ListQuery{}

	q := baseQuery()
	q.Offset = 30
	variants["offset"] = q

	q = baseQuery()
	q.Limit = 25
	variants["limit"] = q

	q = baseQuery()
	q.Sort = &Sort{Field: "title", Direction: Ascending}
	variants["sort direction"] = q

	q = baseQuery()
	q.Sort = &Sort{Field: "created_at", Direction: Descending}
	variants["sort field"] = q

	q = baseQuery()
	q.Search = "channels"
	variants["search"] = q

	q = baseQuery()
	q.Filter = FilterObject{"topic": "rust", "published": true}
	variants["filter value"] = q

	q = baseQuery()
	q.Endpoint = "/api/projects"
	variants["endpoint"] = q

	seen := map[string]string{base.CacheKey(): "base"}
	for name, v := range variants {
		key := v.CacheKey()
		if prev, dup := seen[key]; dup {
			t.Fatalf("%s collides with %s: %s", name, prev, key)
		}
		seen[key] = name
	}
}

func TestCacheKeyOmitsEmptyParts(t *testing.T) {
	q := ListQuery{Endpoint: "/api/topics", PageKey: "/admin/topics", Offset: 0, Limit: 10}
	key := q.CacheKey()
	if key != "/api/topics?offset=0&limit=10" {
		t.Fatalf("key=%q", key)
	}
}

func TestValuesFlattensDateRange(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	q := ListQuery{
		Endpoint: "/api/articles",
		PageKey:  "/admin/articles",
		Limit:    10,
		Filter: FilterObject{
			"publishedDate": DateRange{Start: start, End: end},
			"topic":         "golang",
		},
	}

	vals := q.Values()
	if vals.Get("publishedDate.start") != "2025-03-01" {
		t.Fatalf("start=%q", vals.Get("publishedDate.start"))
	}
	if vals.Get("publishedDate.end") != "2025-03-31" {
		t.Fatalf("end=%q", vals.Get("publishedDate.end"))
	}
	if vals.Get("topic") != "golang" {
		t.Fatalf("topic=%q", vals.Get("topic"))
	}
}

func TestValuesSortEncoding(t *testing.T) {
	q := ListQuery{Endpoint: "/api/articles", Limit: 10, Sort: &Sort{Field: "title", Direction: Descending}}
	if got := q.Values().Get("sort"); got != "-title" {
		t.Fatalf("desc sort=%q", got)
	}
	q.Sort.Direction = Ascending
	if got := q.Values().Get("sort"); got != "title" {
		t.Fatalf("asc sort=%q", got)
	}
}

func TestParseListQueryRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	q := ListQuery{
		Endpoint: "/api/articles",
		PageKey:  "/admin/articles",
		Offset:   20,
		Limit:    25,
		Sort:     &Sort{Field: "published_at", Direction: Descending},
		Search:   "go",
		Filter: FilterObject{
			"topic":         "golang",
			"publishedDate": DateRange{Start: start},
		},
	}

	parsed := ParseListQuery(q.Values(), []string{"topic", "publishedDate"})
	if parsed.Offset != 20 || parsed.Limit != 25 {
		t.Fatalf("offset=%d limit=%d", parsed.Offset, parsed.Limit)
	}
	if parsed.Sort == nil || parsed.Sort.Field != "published_at" || parsed.Sort.Direction != Descending {
		t.Fatalf("sort=%+v", parsed.Sort)
	}
	if parsed.Search != "go" {
		t.Fatalf("search=%q", parsed.Search)
	}
	if parsed.Filter["topic"] != "golang" {
		t.Fatalf("topic=%v", parsed.Filter["topic"])
	}
	r, ok := parsed.Filter["publishedDate"].(DateRange)
	if !ok || !r.Start.Equal(start) {
		t.Fatalf("publishedDate=%v", parsed.Filter["publishedDate"])
	}
}

func TestParseListQueryIgnoresUnknownAndBadInput(t *testing.T) {
	vals := url.Values{}
	vals.Set("offset", "-5")
	vals.Set("limit", "junk")
	vals.Set("evil", "1")

	q := ParseListQuery(vals, []string{"topic"})
	if q.Offset != 0 || q.Limit != DefaultLimit {
		t.Fatalf("offset=%d limit=%d", q.Offset, q.Limit)
	}
	if q.Filter != nil {
		t.Fatalf("unknown params must be ignored: %v", q.Filter)
	}
}

func TestPageKeyNormalization(t *testing.T) {
	cases := map[string]string{
		"/admin/articles":           "/admin/articles",
		"/admin/articles/":          "/admin/articles",
		"//admin//articles":         "/admin/articles",
		"/admin/articles?page=2":    "/admin/articles",
		"/admin/articles#top":       "/admin/articles",
		"/":                         "/",
		"":                          "/",
		"/admin/articles/drafts":    "/admin/articles/drafts",
	}
	for in, want := range cases {
		if got := PageKey(in); got != want {
			t.Fatalf("PageKey(%q)=%q, want %q", in, got, want)
		}
	}
}
