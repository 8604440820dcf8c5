package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/observability/metrics"
	"provider-directory/internal/repository"
)

// Controller owns the search state of one session for resource type T.
//
// Commands are applied one at a time on a single goroutine. Each command
// rewrites the Location in full and re-derives the parameters from it, then
// starts a fetch for the new tuple unless the query is absent or empty.
// Only a fetch whose tuple still matches the current parameters is applied
// when it completes; superseded results are dropped.
type Controller[T any] struct {
	resource entity.ResourceType
	codec    pagination.Codec
	sorts    *sorting.Registry
	source   repository.Searcher[T]
	location Location
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events chan func()
	quit   chan struct{}
	done   chan struct{}
	closed sync.Once
	fetch  sync.WaitGroup

	state     atomic.Pointer[State[T]]
	changedMu sync.Mutex
	changed   chan struct{}

	// Owned by the loop goroutine.
	memo       pagination.Memo
	params     pagination.Params
	liveQuery  string
	results    Results[T]
	collection *entity.Collection[T]
	loading    bool
	background bool
	lastErr    string
	inflight   map[pagination.Key]struct{}
	version    uint64
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithLogger sets the controller logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Controller[T]) {
		c.logger = logger
	}
}

// WithLocation sets the URL store. The default is an empty MemoryLocation.
func WithLocation[T any](loc Location) Option[T] {
	return func(c *Controller[T]) {
		c.location = loc
	}
}

// New creates a controller and derives its initial state from the location.
// When the location already carries a query the first fetch starts at once.
// Close must be called to release the controller.
func New[T any](resource entity.ResourceType, source repository.Searcher[T], sorts *sorting.Registry, codec pagination.Codec, opts ...Option[T]) *Controller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T]{
		resource: resource,
		codec:    codec,
		sorts:    sorts,
		source:   source,
		location: NewMemoryLocation(""),
		logger:   slog.Default(),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan func()),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		changed:  make(chan struct{}),
		inflight: make(map[pagination.Key]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With(slog.String("resource", resource.String()))

	c.params = codec.Decode(c.location.RawQuery())
	c.liveQuery = c.params.QueryValue()
	c.sync()
	c.publish()

	go c.run()
	return c
}

// Resource returns the resource type the controller searches.
func (c *Controller[T]) Resource() entity.ResourceType {
	return c.resource
}

// SortOptions returns the sort options for the resource in display order.
func (c *Controller[T]) SortOptions() []sorting.Option {
	return c.sorts.Options()
}

// Snapshot returns the current state. The returned value must not be modified.
func (c *Controller[T]) Snapshot() *State[T] {
	return c.state.Load()
}

// Changed returns a channel that is closed on the next state change.
// Call it before Snapshot to avoid missing a change in between.
func (c *Controller[T]) Changed() <-chan struct{} {
	c.changedMu.Lock()
	defer c.changedMu.Unlock()
	return c.changed
}

// Settled blocks until no fetch for the current parameters is in flight
// and returns that state.
func (c *Controller[T]) Settled(ctx context.Context) (*State[T], error) {
	for {
		ch := c.Changed()
		st := c.Snapshot()
		if st.Settled() {
			return st, nil
		}
		select {
		case <-ch:
		case <-c.done:
			return c.Snapshot(), ErrClosed
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// SetQuery submits a new search for q on page 1, keeping the sort.
// Previous results are discarded.
func (c *Controller[T]) SetQuery(ctx context.Context, q string) error {
	if strings.TrimSpace(q) == "" {
		return ErrBlankQuery
	}
	return c.exec(ctx, "set_query", func() error {
		page := 1
		c.background = false
		c.liveQuery = q
		c.replace(c.codec.Encode(c.params, pagination.Overrides{Page: &page, Query: &q}))
		c.results = NotSearched[T]()
		c.collection = nil
		c.sync()
		return nil
	})
}

// NavigateToPage moves to page p, keeping the query and sort. Current
// results stay visible until the new page arrives.
func (c *Controller[T]) NavigateToPage(ctx context.Context, p int) error {
	if p < 1 {
		return &entity.ValidationError{Field: "page", Message: fmt.Sprintf("must be at least 1, got %d", p)}
	}
	return c.exec(ctx, "navigate_to_page", func() error {
		o := pagination.Overrides{Page: &p}
		if c.params.Query == nil && c.liveQuery != "" {
			q := c.liveQuery
			o.Query = &q
		}
		c.background = true
		c.replace(c.codec.Encode(c.params, o))
		c.sync()
		return nil
	})
}

// SetSort switches to sort key s and resets to page 1.
func (c *Controller[T]) SetSort(ctx context.Context, s string) error {
	if err := c.sorts.Validate(s); err != nil {
		return err
	}
	return c.exec(ctx, "set_sort", func() error {
		page := 1
		c.background = true
		c.replace(c.codec.Encode(c.params, pagination.Overrides{Page: &page, Sort: &s}))
		c.sync()
		return nil
	})
}

// ClearSearch drops every parameter and returns to the unsearched state.
func (c *Controller[T]) ClearSearch(ctx context.Context) error {
	return c.exec(ctx, "clear_search", func() error {
		c.liveQuery = ""
		c.background = false
		c.replace(url.Values{})
		c.sync()
		return nil
	})
}

// Restore replaces the location with raw, as on history navigation, and
// re-derives state from it.
func (c *Controller[T]) Restore(ctx context.Context, raw string) error {
	return c.exec(ctx, "restore", func() error {
		values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
		if err != nil {
			c.logger.Debug("restore: malformed query string", slog.Any("error", err))
		}
		c.background = false
		c.replace(values)
		c.liveQuery = c.params.QueryValue()
		c.sync()
		return nil
	})
}

// Close stops the controller. In-flight fetches are abandoned and later
// commands return ErrClosed.
func (c *Controller[T]) Close() {
	c.closed.Do(func() {
		close(c.quit)
		<-c.done
		c.fetch.Wait()
	})
}

func (c *Controller[T]) run() {
	defer close(c.done)
	defer c.cancel()
	for {
		select {
		case <-c.quit:
			return
		case fn := <-c.events:
			fn()
		}
	}
}

// exec runs fn on the loop goroutine and publishes the resulting state.
// Once fn has been handed to the loop it always runs, so the caller's
// context only bounds the hand-off.
func (c *Controller[T]) exec(ctx context.Context, command string, fn func() error) error {
	reply := make(chan error, 1)
	task := func() {
		err := fn()
		if err == nil {
			metrics.RecordSearchCommand(c.resource.String(), command)
			c.logger.Debug("search command",
				slog.String("command", command),
				slog.Int("page", c.params.Page),
				slog.String("query", c.params.QueryValue()),
				slog.String("sort", c.params.SortValue()))
			c.publish()
		}
		reply <- err
	}
	select {
	case c.events <- task:
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-reply
}

// replace writes values to the location and re-reads the parameters from it.
func (c *Controller[T]) replace(values url.Values) {
	c.location.Replace(values)
	c.params = c.codec.Decode(c.location.RawQuery())
}

// sync reconciles fetch state with the current parameters.
func (c *Controller[T]) sync() {
	if !c.params.HasQuery() {
		c.results = NotSearched[T]()
		c.collection = nil
		c.loading = false
		c.background = false
		c.lastErr = ""
		metrics.RecordSearchFetch(c.resource.String(), metrics.OutcomeSkipped)
		return
	}

	c.lastErr = ""
	pagination.RecordRequest(c.resource.String(), c.params.Page)
	if cached, ok := c.source.(repository.CachedSearcher[T]); ok {
		if col, hit := cached.Cached(c.params); hit {
			c.apply(col)
			return
		}
	}

	c.loading = true
	c.startFetch(c.params.Clone())
}

func (c *Controller[T]) startFetch(params pagination.Params) {
	key := params.Key()
	if _, ok := c.inflight[key]; ok {
		return
	}
	c.inflight[key] = struct{}{}

	c.fetch.Add(1)
	go func() {
		defer c.fetch.Done()
		col, err := c.source.Search(c.ctx, params)
		select {
		case c.events <- func() { c.complete(key, col, err) }:
		case <-c.done:
		}
	}()
}

// complete handles a finished fetch on the loop goroutine.
func (c *Controller[T]) complete(key pagination.Key, col *entity.Collection[T], err error) {
	delete(c.inflight, key)
	resource := c.resource.String()

	if key != c.params.Key() {
		metrics.RecordSearchFetch(resource, metrics.OutcomeStale)
		c.logger.Debug("stale search result ignored",
			slog.Int("page", key.Page),
			slog.String("query", key.Query),
			slog.String("sort", key.Sort))
		return
	}

	if err != nil {
		c.loading = false
		c.background = false
		c.lastErr = err.Error()
		metrics.RecordSearchFetch(resource, metrics.OutcomeError)
		c.logger.Debug("search failed", slog.Any("error", err))
		c.publish()
		return
	}

	c.apply(col)
	c.publish()
}

func (c *Controller[T]) apply(col *entity.Collection[T]) {
	c.loading = false
	c.background = false
	c.lastErr = ""
	c.collection = col
	c.results = Loaded(col.Resources())
	metrics.RecordSearchFetch(c.resource.String(), metrics.OutcomeApplied)
}

func (c *Controller[T]) summary() *pagination.Summary {
	if c.collection == nil {
		return nil
	}
	return &pagination.Summary{
		Count:         c.collection.Count,
		PageItemCount: c.collection.CurrentPageItemCount(),
	}
}

func (c *Controller[T]) publish() {
	c.version++
	st := &State[T]{
		Resource:            c.resource,
		Location:            c.location.RawQuery(),
		Params:              c.params.Clone(),
		Query:               c.params.QueryValue(),
		LiveQuery:           c.liveQuery,
		Sort:                c.sorts.Resolve(c.params.SortValue()),
		Results:             c.results,
		Collection:          c.collection,
		IsLoading:           c.loading,
		IsBackgroundLoading: c.background && c.loading,
		Error:               c.lastErr,
		Pagination:          c.memo.Compute(c.params, c.summary()),
		SortOptions:         c.sorts.Options(),
		Version:             c.version,
	}
	c.state.Store(st)

	c.changedMu.Lock()
	close(c.changed)
	c.changed = make(chan struct{})
	c.changedMu.Unlock()
}
