package tablequery

import (
	"context"
	"fmt"
)

// OffsetPaginator is the page-jumping controller over a page's store
// state. Valid states are the page indices 0..TotalPages-1; transitions
// outside that range are no-ops.
type OffsetPaginator struct {
	store   *Store
	pageKey string
}

func NewOffsetPaginator(store *Store, pageKey string) *OffsetPaginator {
	return &OffsetPaginator{store: store, pageKey: pageKey}
}

// Page returns the current zero-based page index.
func (p *OffsetPaginator) Page() int {
	return p.store.Offset(p.pageKey)
}

// TotalPages is ceil(count/limit); 0 while no count is known.
func (p *OffsetPaginator) TotalPages() int {
	count := p.store.Count(p.pageKey)
	limit := int64(p.store.Limit(p.pageKey))
	if count <= 0 || limit <= 0 {
		return 0
	}
	return int((count + limit - 1) / limit)
}

// GoTo jumps to page n. Out-of-range targets are rejected (no-op).
func (p *OffsetPaginator) GoTo(n int) {
	if n < 0 || n >= p.TotalPages() {
		return
	}
	p.store.SetOffset(p.pageKey, n)
}

// Next advances one page unless already at the last one.
func (p *OffsetPaginator) Next() {
	p.GoTo(p.Page() + 1)
}

// Prev steps back one page unless already at the first one.
func (p *OffsetPaginator) Prev() {
	p.GoTo(p.Page() - 1)
}

// HasPrev reports whether the "Previous" control is enabled.
func (p *OffsetPaginator) HasPrev() bool {
	return p.Page() > 0
}

// HasNext reports whether the "Next" control is enabled.
func (p *OffsetPaginator) HasNext() bool {
	return p.Page() < p.TotalPages()-1
}

// SetLimit changes the page size; the store resets the index to 0.
func (p *OffsetPaginator) SetLimit(n int) {
	p.store.SetLimit(p.pageKey, n)
}

// Label renders the 1-based header text, e.g. "Page 1 of 3".
func (p *OffsetPaginator) Label() string {
	total := p.TotalPages()
	if total == 0 {
		total = 1
	}
	return fmt.Sprintf("Page %d of %d", p.Page()+1, total)
}

// pageLoader is what the scroller drives; satisfied by InfiniteBinding.
type pageLoader interface {
	LoadMore(ctx context.Context) error
	HasMore() bool
	IsLoadingMore() bool
}

// InfiniteScroller adapts visibility events to page loads. Each
// intersection triggers at most one fetch; the loader's in-flight guard
// absorbs rapid re-fires and its terminal condition makes late events
// no-ops without disarming the sensor.
type InfiniteScroller struct {
	loader pageLoader
}

func NewInfiniteScroller(loader pageLoader) *InfiniteScroller {
	return &InfiniteScroller{loader: loader}
}

// OnIntersect is the sensor callback.
func (s *InfiniteScroller) OnIntersect(ctx context.Context) error {
	if !s.loader.HasMore() || s.loader.IsLoadingMore() {
		return nil
	}
	return s.loader.LoadMore(ctx)
}
