package tablequery

import "errors"

// ErrSearchActive is returned for filter mutations attempted while a
// search is active in default mode. The UI disables filter controls in
// that state; the coordinator enforces it regardless.
var ErrSearchActive = errors.New("tablequery: filters are suspended while search is active")

// Coordinator layers search/filter reconciliation over the raw Store.
//
// Default mode: an active search suppresses the applied filter. On the
// empty→non-empty search transition the current filter is snapshotted and
// cleared; on the non-empty→empty transition the snapshot is restored.
// This avoids the confusing state where a search silently competes with a
// forgotten filter. With EnableFiltersWithSearch the whole mechanism is
// bypassed and both criteria are sent together.
type Coordinator struct {
	store *Store
}

func NewCoordinator(store *Store) *Coordinator {
	if store == nil {
		store = NewStore()
	}
	return &Coordinator{store: store}
}

// Store exposes the underlying state store for read paths.
func (c *Coordinator) Store() *Store {
	return c.store
}

// RegisterPage resolves the route into a page key, registers it and
// returns the key.
func (c *Coordinator) RegisterPage(routePath string, cfg PageConfig) string {
	pageKey := PageKey(routePath)
	c.store.RegisterPage(pageKey, cfg)
	return pageKey
}

func (c *Coordinator) combineAllowed(pageKey string) bool {
	return c.store.config(pageKey).EnableFiltersWithSearch
}

// SetSearch commits a search value, running the snapshot/restore
// transitions in default mode.
func (c *Coordinator) SetSearch(pageKey, value string) {
	if !c.combineAllowed(pageKey) {
		prev := c.store.Search(pageKey)
		switch {
		case prev == "" && value != "":
			c.store.snapshotFilter(pageKey)
		case prev != "" && value == "":
			c.store.restoreSnapshot(pageKey)
		}
	}
	c.store.SetSearch(pageKey, value)
}

// FiltersLocked reports whether filter controls must be disabled.
func (c *Coordinator) FiltersLocked(pageKey string) bool {
	return !c.combineAllowed(pageKey) && c.store.Search(pageKey) != ""
}

// SetDraftField edits one filter form field. Rejected while locked.
func (c *Coordinator) SetDraftField(pageKey, field string, value interface{}) error {
	if c.FiltersLocked(pageKey) {
		return ErrSearchActive
	}
	c.store.SetDraftField(pageKey, field, value)
	return nil
}

// ApplyFilter commits the draft as the applied filter. Rejected while
// locked.
func (c *Coordinator) ApplyFilter(pageKey string) error {
	if c.FiltersLocked(pageKey) {
		return ErrSearchActive
	}
	c.store.SetFilter(pageKey, c.store.Draft(pageKey))
	return nil
}

// ResetFilters forces the applied filter and the draft back to the page's
// default, in sync. Rejected while locked.
func (c *Coordinator) ResetFilters(pageKey string) error {
	if c.FiltersLocked(pageKey) {
		return ErrSearchActive
	}
	def := c.store.config(pageKey).DefaultFilter
	c.store.SetFilter(pageKey, def)
	c.store.SetDraft(pageKey, def)
	return nil
}

// EffectiveQuery assembles the descriptor actually handed to the fetch
// layer. Offset is converted from page index to rows here. In default
// mode an active search leaves the filter out entirely (the snapshot
// mechanism should already have cleared it; this is the authoritative
// boundary either way).
func (c *Coordinator) EffectiveQuery(pageKey, endpoint string) ListQuery {
	st := c.store.State(pageKey)
	q := ListQuery{
		Endpoint: endpoint,
		PageKey:  pageKey,
		Offset:   st.Offset * st.Limit,
		Limit:    st.Limit,
		Sort:     st.Sort,
		Search:   st.Search,
	}
	if !st.Filter.IsEmpty() {
		if st.Search == "" || st.config.EnableFiltersWithSearch {
			q.Filter = st.Filter
		}
	}
	return q
}
