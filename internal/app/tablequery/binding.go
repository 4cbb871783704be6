package tablequery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Binding is the offset-mode fetch binding: one query keyed by the full
// (search, filter, sort, offset, limit) tuple. There is no manual "next
// page" operation; changing the offset changes the cache key, the next
// Fetch resolves it and the rows are replaced wholesale.
type Binding[T any] struct {
	coord    *Coordinator
	client   QueryClient
	endpoint string
	pageKey  string
}

// NewBinding registers the page under its route and binds it to a data
// endpoint.
func NewBinding[T any](coord *Coordinator, client QueryClient, endpoint, routePath string, cfg PageConfig) *Binding[T] {
	return &Binding[T]{
		coord:    coord,
		client:   client,
		endpoint: endpoint,
		pageKey:  coord.RegisterPage(routePath, cfg),
	}
}

// PageKey returns the resolved page identity.
func (b *Binding[T]) PageKey() string {
	return b.pageKey
}

// Query returns the descriptor the next Fetch will resolve.
func (b *Binding[T]) Query() ListQuery {
	return b.coord.EffectiveQuery(b.pageKey, b.endpoint)
}

// Fetch resolves the current descriptor and records the server-reported
// total in the store.
func (b *Binding[T]) Fetch(ctx context.Context) ([]T, error) {
	env, err := b.client.List(ctx, b.Query())
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[T](env.Data)
	if err != nil {
		return nil, err
	}
	b.coord.Store().SetCount(b.pageKey, env.Metadata.Count)
	return rows, nil
}

// Mutate marks the endpoint's cached pages stale after a side-effecting
// row action, so the displayed page refetches.
func (b *Binding[T]) Mutate(ctx context.Context) error {
	return b.client.Invalidate(ctx, b.endpoint)
}

// InfiniteBinding is the cursor-style variant: pages accumulate in fetch
// order and the store offset counts loaded pages. The accumulation
// belongs to one committed query: when search, filter, sort or limit
// change, the next LoadMore drops the old pages and starts over at page
// 0 instead of mixing two queries' rows. Duplicate concurrent fetches
// are prevented by the in-flight guard; out-of-order arrival is not
// reconciled beyond the cache key (responses land under their own key).
type InfiniteBinding[T any] struct {
	coord    *Coordinator
	client   QueryClient
	endpoint string
	pageKey  string

	mu      sync.Mutex
	rows    []T
	fetched bool
	loading bool
	// queryKey identifies the query the accumulated rows belong to: the
	// effective query's cache key with the offset dimension zeroed.
	queryKey string
}

func NewInfiniteBinding[T any](coord *Coordinator, client QueryClient, endpoint, routePath string, cfg PageConfig) *InfiniteBinding[T] {
	return &InfiniteBinding[T]{
		coord:    coord,
		client:   client,
		endpoint: endpoint,
		pageKey:  coord.RegisterPage(routePath, cfg),
	}
}

func (b *InfiniteBinding[T]) PageKey() string {
	return b.pageKey
}

// Rows returns the accumulated rows in fetch order.
func (b *InfiniteBinding[T]) Rows() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]T(nil), b.rows...)
}

// IsLoadingMore reports an in-flight page fetch.
func (b *InfiniteBinding[T]) IsLoadingMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// HasMore reports whether another page exists: loaded rows < total count.
// Before the first fetch the answer is yes.
func (b *InfiniteBinding[T]) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMoreLocked()
}

func (b *InfiniteBinding[T]) hasMoreLocked() bool {
	if !b.fetched {
		return true
	}
	return int64(len(b.rows)) < b.coord.Store().Count(b.pageKey)
}

// LoadMore fetches and appends the next page. It is a no-op while a fetch
// is already in flight or once every row is loaded, so a sensor firing
// repeatedly never issues duplicate or trailing fetches. When the
// committed query changed since the last load, the stale accumulation is
// dropped and the new query starts at page 0.
func (b *InfiniteBinding[T]) LoadMore(ctx context.Context) error {
	key := b.currentQueryKey()

	b.mu.Lock()
	if b.loading {
		b.mu.Unlock()
		return nil
	}
	if b.fetched && key != b.queryKey {
		b.rows = nil
		b.fetched = false
		b.coord.Store().SetOffset(b.pageKey, 0)
	}
	if !b.hasMoreLocked() {
		b.mu.Unlock()
		return nil
	}
	b.loading = true
	b.queryKey = key
	pageIndex := b.coord.Store().Offset(b.pageKey)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.loading = false
		b.mu.Unlock()
	}()

	q := b.coord.EffectiveQuery(b.pageKey, b.endpoint)
	q.Offset = pageIndex * q.Limit

	env, err := b.client.List(ctx, q)
	if err != nil {
		return err
	}
	rows, err := decodeRows[T](env.Data)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.rows = append(b.rows, rows...)
	b.fetched = true
	b.mu.Unlock()

	store := b.coord.Store()
	store.SetCount(b.pageKey, env.Metadata.Count)
	store.SetOffset(b.pageKey, pageIndex+1)
	return nil
}

// ResetPagination drops the accumulated pages and rewinds the page
// counter; it does not invalidate the cache by itself.
func (b *InfiniteBinding[T]) ResetPagination() {
	b.mu.Lock()
	b.rows = nil
	b.fetched = false
	b.mu.Unlock()
	b.coord.Store().SetOffset(b.pageKey, 0)
}

// Mutate invalidates the endpoint's cache and resets the accumulated
// pages, the infinite-mode analogue of the offset binding's Mutate.
func (b *InfiniteBinding[T]) Mutate(ctx context.Context) error {
	b.ResetPagination()
	return b.client.Invalidate(ctx, b.endpoint)
}

// currentQueryKey is the identity of the accumulation: every query
// dimension except the page position.
func (b *InfiniteBinding[T]) currentQueryKey() string {
	q := b.coord.EffectiveQuery(b.pageKey, b.endpoint)
	q.Offset = 0
	return q.CacheKey()
}

func decodeRows[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("tablequery: malformed rows: %w", err)
	}
	return rows, nil
}
