package tablequery

import (
	"sync"
)

const (
	// DefaultLimit is the page size used when a page never set one.
	DefaultLimit = 10
	// MaxLimit caps user-adjustable page sizes (10/25/50/100 presets).
	MaxLimit = 100
)

// PageConfig declares per-page defaults, registered once per page.
type PageConfig struct {
	DefaultFilter FilterObject
	DefaultLimit  int
	// EnableFiltersWithSearch lets search and filter coexist (ANDed
	// server-side). Off by default: search suppresses filters.
	EnableFiltersWithSearch bool
}

// PageState is the full query state of one page. Every field is scoped
// under the page key, including offset/limit/sort, so two pages never
// bleed into each other.
type PageState struct {
	Search string
	Filter FilterObject
	// Draft is the filter form the user is editing before "Apply";
	// it may diverge from Filter until applied or reset.
	Draft  FilterObject
	Sort   *Sort
	Offset int
	Limit  int
	Count  int64

	// snapshot holds the filter captured when search became active,
	// restored when search is cleared again.
	snapshot      FilterObject
	snapshotDraft FilterObject
	hasSnapshot   bool

	config PageConfig
}

// Store holds query state for every registered page. All setters are pure
// state transitions; fetching is a separate reactive layer on top.
type Store struct {
	mu    sync.Mutex
	pages map[string]*PageState
}

func NewStore() *Store {
	return &Store{pages: make(map[string]*PageState)}
}

// RegisterPage initializes (or re-mounts) a page. The filter initializes
// from the config's default the first time only; offset resets to 0 on
// every registration, matching component-mount semantics.
func (s *Store) RegisterPage(pageKey string, cfg PageConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.pages[pageKey]
	if !ok {
		limit := cfg.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
		st = &PageState{
			Filter: cfg.DefaultFilter.Clone(),
			Draft:  cfg.DefaultFilter.Clone(),
			Limit:  limit,
		}
		s.pages[pageKey] = st
	}
	st.config = cfg
	st.Offset = 0
}

func (s *Store) page(pageKey string) *PageState {
	st, ok := s.pages[pageKey]
	if !ok {
		st = &PageState{Limit: DefaultLimit}
		s.pages[pageKey] = st
	}
	return st
}

// State returns a copy of the page's current state.
func (s *Store) State(pageKey string) PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	out := *st
	out.Filter = st.Filter.Clone()
	out.Draft = st.Draft.Clone()
	if st.Sort != nil {
		srt := *st.Sort
		out.Sort = &srt
	}
	return out
}

// Search returns the committed search text, "" when unset.
func (s *Store) Search(pageKey string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Search
}

// SetSearch commits a search value and resets the page offset. Debouncing
// happens upstream in SearchInput; this is the committed stage.
func (s *Store) SetSearch(pageKey, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	st.Search = value
	st.Offset = 0
}

// Filter returns the applied filter, nil when unset.
func (s *Store) Filter(pageKey string) FilterObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Filter.Clone()
}

// SetFilter fully replaces the page's filter (no deep merge) and resets
// the offset.
func (s *Store) SetFilter(pageKey string, filter FilterObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	st.Filter = filter.Clone()
	st.Offset = 0
}

// Draft returns the in-progress filter form values.
func (s *Store) Draft(pageKey string) FilterObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Draft.Clone()
}

// SetDraftField updates one field of the draft without touching the
// applied filter.
func (s *Store) SetDraftField(pageKey, field string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	if st.Draft == nil {
		st.Draft = FilterObject{}
	}
	st.Draft[field] = value
}

// SetDraft replaces the whole draft.
func (s *Store) SetDraft(pageKey string, draft FilterObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page(pageKey).Draft = draft.Clone()
}

// Sort returns the active sort, nil when none.
func (s *Store) Sort(pageKey string) *Sort {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	if st.Sort == nil {
		return nil
	}
	srt := *st.Sort
	return &srt
}

// SetSort replaces the single-entry sort map.
func (s *Store) SetSort(pageKey, field string, dir SortDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page(pageKey).Sort = &Sort{Field: field, Direction: dir}
}

// ToggleSort flips the direction when the field is already active,
// otherwise replaces the sort with the column's default direction.
func (s *Store) ToggleSort(pageKey, field string, defaultDir SortDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	if st.Sort != nil && st.Sort.Field == field {
		st.Sort = &Sort{Field: field, Direction: -st.Sort.Direction}
		return
	}
	st.Sort = &Sort{Field: field, Direction: defaultDir}
}

// ClearSort removes the active sort.
func (s *Store) ClearSort(pageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page(pageKey).Sort = nil
}

// Offset returns the page index (offset-mode) or loaded page count
// (infinite mode).
func (s *Store) Offset(pageKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Offset
}

// SetOffset clamps negative values to 0.
func (s *Store) SetOffset(pageKey string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.page(pageKey).Offset = n
}

// Limit returns the current page size.
func (s *Store) Limit(pageKey string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Limit
}

// SetLimit changes the page size and resets the offset to 0.
func (s *Store) SetLimit(pageKey string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = DefaultLimit
	}
	if n > MaxLimit {
		n = MaxLimit
	}
	st := s.page(pageKey)
	st.Limit = n
	st.Offset = 0
}

// Count returns the last total reported by the server.
func (s *Store) Count(pageKey string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).Count
}

func (s *Store) SetCount(pageKey string, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.page(pageKey).Count = n
}

func (s *Store) config(pageKey string) PageConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page(pageKey).config
}

// snapshotFilter captures the applied filter and draft, then clears both.
// No-op when a snapshot is already held.
func (s *Store) snapshotFilter(pageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	if st.hasSnapshot {
		return
	}
	st.snapshot = st.Filter.Clone()
	st.snapshotDraft = st.Draft.Clone()
	st.hasSnapshot = true
	st.Filter = nil
	st.Draft = nil
}

// restoreSnapshot puts the captured filter back, including the draft so
// the visible filter form matches what is applied.
func (s *Store) restoreSnapshot(pageKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.page(pageKey)
	if !st.hasSnapshot {
		return
	}
	st.Filter = st.snapshot
	st.Draft = st.snapshotDraft
	st.snapshot = nil
	st.snapshotDraft = nil
	st.hasSnapshot = false
}
