package tablequery

import (
	"errors"
	"testing"
)

func newArticlesPage(t *testing.T, cfg PageConfig) (*Coordinator, string) {
	t.Helper()
	c := NewCoordinator(NewStore())
	key := c.RegisterPage("/admin/articles", cfg)
	return c, key
}

func TestSearchSuppressesFilter(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{})

	c.Store().SetDraftField(key, "topic", "golang")
	if err := c.ApplyFilter(key); err != nil {
		t.Fatalf("apply: %v", err)
	}

	c.SetSearch(key, "generics")

	q := c.EffectiveQuery(key, "/api/articles")
	if q.Filter != nil {
		t.Fatalf("filter must be suppressed while searching: %v", q.Filter)
	}
	if q.Search != "generics" {
		t.Fatalf("search=%q", q.Search)
	}

	// Clearing search restores exactly the prior filter, draft included.
	c.SetSearch(key, "")
	q = c.EffectiveQuery(key, "/api/articles")
	if q.Filter["topic"] != "golang" {
		t.Fatalf("filter not restored: %v", q.Filter)
	}
	if c.Store().Draft(key)["topic"] != "golang" {
		t.Fatalf("draft not restored: %v", c.Store().Draft(key))
	}
}

func TestFilterMutationsLockedWhileSearching(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{})

	c.SetSearch(key, "x")
	if !c.FiltersLocked(key) {
		t.Fatalf("filters must be locked while searching")
	}

	if err := c.SetDraftField(key, "topic", "go"); !errors.Is(err, ErrSearchActive) {
		t.Fatalf("draft edit: %v", err)
	}
	if err := c.ApplyFilter(key); !errors.Is(err, ErrSearchActive) {
		t.Fatalf("apply: %v", err)
	}
	if err := c.ResetFilters(key); !errors.Is(err, ErrSearchActive) {
		t.Fatalf("reset: %v", err)
	}
}

func TestSearchRefinementKeepsSnapshot(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{})

	c.Store().SetDraftField(key, "published", true)
	if err := c.ApplyFilter(key); err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Typing more while already searching must not overwrite the snapshot
	// with the (cleared) live filter.
	c.SetSearch(key, "g")
	c.SetSearch(key, "go")
	c.SetSearch(key, "gol")
	c.SetSearch(key, "")

	if c.Store().Filter(key)["published"] != true {
		t.Fatalf("snapshot lost during refinement: %v", c.Store().Filter(key))
	}
}

func TestFiltersCoexistWithSearchWhenEnabled(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{EnableFiltersWithSearch: true})

	c.Store().SetDraftField(key, "topic", "golang")
	if err := c.ApplyFilter(key); err != nil {
		t.Fatalf("apply: %v", err)
	}
	c.SetSearch(key, "generics")

	if c.FiltersLocked(key) {
		t.Fatalf("filters must stay editable in combined mode")
	}
	q := c.EffectiveQuery(key, "/api/articles")
	if q.Search != "generics" || q.Filter["topic"] != "golang" {
		t.Fatalf("combined query: search=%q filter=%v", q.Search, q.Filter)
	}
}

func TestResetFiltersRestoresDefaults(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{DefaultFilter: FilterObject{"published": true}})

	c.Store().SetDraftField(key, "published", false)
	c.Store().SetDraftField(key, "topic", "golang")
	if err := c.ApplyFilter(key); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := c.ResetFilters(key); err != nil {
		t.Fatalf("reset: %v", err)
	}
	filter, draft := c.Store().Filter(key), c.Store().Draft(key)
	if filter["published"] != true || len(filter) != 1 {
		t.Fatalf("filter=%v", filter)
	}
	if draft["published"] != true || len(draft) != 1 {
		t.Fatalf("draft must be back in sync: %v", draft)
	}
}

func TestEffectiveQueryConvertsPageIndexToRows(t *testing.T) {
	c, key := newArticlesPage(t, PageConfig{DefaultLimit: 10})

	c.Store().SetCount(key, 100)
	c.Store().SetOffset(key, 2)

	q := c.EffectiveQuery(key, "/api/articles")
	if q.Offset != 20 {
		t.Fatalf("row offset=%d, want 20", q.Offset)
	}
	if q.Limit != 10 {
		t.Fatalf("limit=%d", q.Limit)
	}
}
