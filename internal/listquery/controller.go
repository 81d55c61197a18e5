package listquery

import (
	"context"
	"strings"
	"sync"
	"time"
)

// State is the visible fetch state of a list view.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateError
)

// Source fetches one page of a remote collection for a query.
type Source[T any] interface {
	FetchPage(ctx context.Context, q Query) (Result[T], error)
}

// Config tunes one controller instance. Zero values fall back to the
// documented defaults.
type Config struct {
	// Entity names the collection and prefixes the persisted sort keys.
	Entity string
	// DefaultSortField is used when no sort is persisted. Defaults to "id".
	DefaultSortField string
	// DefaultPageSize defaults to 25.
	DefaultPageSize int
	// SearchDelay is the debounce interval for SetSearchTerm. Defaults to 100ms.
	SearchDelay time.Duration
	// CacheTTL is the freshness window of a fetched page. Defaults to 5 minutes.
	CacheTTL time.Duration
	// Store persists the sort pair across sessions. Defaults to an in-memory store.
	Store Store
	// Notifier surfaces fetch failures. Defaults to NopNotifier.
	Notifier Notifier
	// OnUpdate, when set, runs after every visible state change.
	OnUpdate func()
}

type cacheEntry[T any] struct {
	data      Result[T]
	fetchedAt time.Time
}

// Controller owns the query state of one paginated, filterable, sortable
// list view and keeps it synchronized with a remote Source. Previously
// fetched data stays visible while a newer fetch is in flight, and a late
// response for a superseded query key is never displayed.
type Controller[T any] struct {
	mu     sync.Mutex
	cfg    Config
	source Source[T]
	ctx    context.Context
	cancel context.CancelFunc

	query    Query
	cache    map[string]cacheEntry[T]
	inflight map[string]bool

	data    Result[T]
	hasData bool
	state   State
	err     error

	search *Debouncer[string]
	now    func() time.Time
}

// Snapshot is an atomic read of everything a view renders.
type Snapshot[T any] struct {
	Query   Query
	Data    Result[T]
	HasData bool
	State   State
	Err     error
}

// NewController initializes query state from defaults and the persisted
// sort pair. No fetch is issued until Refresh or a query mutation.
func NewController[T any](ctx context.Context, cfg Config, source Source[T]) *Controller[T] {
	if cfg.DefaultSortField == "" {
		cfg.DefaultSortField = "id"
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 25
	}
	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = 100 * time.Millisecond
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.Store == nil {
		cfg.Store = NewMemStore()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}

	ctx, cancel := context.WithCancel(ctx)
	field, direction := loadSort(cfg.Store, cfg.Entity, cfg.DefaultSortField)

	c := &Controller[T]{
		cfg:    cfg,
		source: source,
		ctx:    ctx,
		cancel: cancel,
		query: Query{
			Page:          1,
			PageSize:      cfg.DefaultPageSize,
			SortField:     field,
			SortDirection: direction,
			Filters:       map[string]string{},
		},
		cache:    map[string]cacheEntry[T]{},
		inflight: map[string]bool{},
		now:      time.Now,
	}
	c.search = NewDebouncer(cfg.SearchDelay, c.applySearch)
	return c
}

// Close stops the controller; in-flight responses are discarded.
func (c *Controller[T]) Close() {
	c.search.Cancel()
	c.cancel()
}

// Snapshot returns the current query and visible data.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{
		Query:   c.queryCopyLocked(),
		Data:    c.data,
		HasData: c.hasData,
		State:   c.state,
		Err:     c.err,
	}
}

// Query returns a copy of the current query state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queryCopyLocked()
}

// QueryKey returns the composite cache key of the current query state.
func (c *Controller[T]) QueryKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Key()
}

// Refresh serves the current key from cache when fresh, otherwise fetches.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// Invalidate drops the cached page for the current key and re-fetches.
// Mutations call this after server confirmation.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	delete(c.cache, c.query.Key())
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// SetPage moves to a 1-based page. Values below 1 clamp to 1. Changing the
// page never touches any other query field.
func (c *Controller[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	if c.query.Page == n {
		c.mu.Unlock()
		return
	}
	c.query.Page = n
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// SetPageSize changes the page size and resets the page to 1.
func (c *Controller[T]) SetPageSize(n int) {
	if n < 1 {
		n = c.cfg.DefaultPageSize
	}
	c.mu.Lock()
	if c.query.PageSize == n {
		c.mu.Unlock()
		return
	}
	c.query.PageSize = n
	c.query.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// SetSearchTerm feeds the debouncer; the coalesced value is applied after
// the configured delay. An empty or whitespace-only term means no filter.
func (c *Controller[T]) SetSearchTerm(s string) {
	c.search.Input(s)
}

// FlushSearch applies a pending search term immediately.
func (c *Controller[T]) FlushSearch() {
	c.search.Flush()
}

func (c *Controller[T]) applySearch(s string) {
	s = strings.TrimSpace(s)
	c.mu.Lock()
	if c.query.SearchTerm == s {
		c.mu.Unlock()
		return
	}
	c.query.SearchTerm = s
	c.query.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// SetSort sorts by field ascending, or toggles the direction when field is
// already the sort field. Resets the page to 1 and persists the new pair.
func (c *Controller[T]) SetSort(field string) {
	c.mu.Lock()
	if c.query.SortField == field {
		if c.query.SortDirection == Asc {
			c.query.SortDirection = Desc
		} else {
			c.query.SortDirection = Asc
		}
	} else {
		c.query.SortField = field
		c.query.SortDirection = Asc
	}
	c.query.Page = 1
	saveSort(c.cfg.Store, c.cfg.Entity, c.query.SortField, c.query.SortDirection)
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// SetFilters replaces the advanced filter mapping wholesale and resets the
// page to 1.
func (c *Controller[T]) SetFilters(filters map[string]string) {
	next := make(map[string]string, len(filters))
	for k, v := range filters {
		next[k] = v
	}
	c.mu.Lock()
	c.query.Filters = next
	c.query.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

// Reset clears search and filters, restores the default sort and erases the
// persisted sort pair.
func (c *Controller[T]) Reset() {
	c.search.Cancel()
	c.mu.Lock()
	c.query.SearchTerm = ""
	c.query.Filters = map[string]string{}
	c.query.SortField = c.cfg.DefaultSortField
	c.query.SortDirection = Asc
	c.query.Page = 1
	clearSort(c.cfg.Store, c.cfg.Entity)
	c.refreshLocked()
	c.mu.Unlock()
	c.notifyUpdate()
}

func (c *Controller[T]) queryCopyLocked() Query {
	q := c.query
	q.Filters = make(map[string]string, len(c.query.Filters))
	for k, v := range c.query.Filters {
		q.Filters[k] = v
	}
	return q
}

func (c *Controller[T]) refreshLocked() {
	key := c.query.Key()
	if entry, ok := c.cache[key]; ok && c.now().Sub(entry.fetchedAt) < c.cfg.CacheTTL {
		c.data = entry.data
		c.hasData = true
		c.state = StateIdle
		c.err = nil
		return
	}

	c.state = StateFetching
	if c.inflight[key] {
		// an identical fetch is already running, share its result
		return
	}
	c.inflight[key] = true
	go c.fetch(c.queryCopyLocked(), key)
}

func (c *Controller[T]) fetch(q Query, key string) {
	res, err := c.source.FetchPage(c.ctx, q)

	c.mu.Lock()
	delete(c.inflight, key)
	current := c.query.Key() == key

	if err != nil {
		if current {
			// keep the last good page visible, surface the failure
			c.state = StateError
			c.err = err
		}
		c.mu.Unlock()
		if current {
			c.cfg.Notifier.Error(err.Error())
			c.notifyUpdate()
		}
		return
	}

	c.cache[key] = cacheEntry[T]{data: res, fetchedAt: c.now()}
	if current {
		c.data = res
		c.hasData = true
		c.state = StateIdle
		c.err = nil
	}
	c.mu.Unlock()
	if current {
		c.notifyUpdate()
	}
}

func (c *Controller[T]) notifyUpdate() {
	if c.cfg.OnUpdate != nil {
		c.cfg.OnUpdate()
	}
}
