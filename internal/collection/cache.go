package collection

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type entry[K comparable, T any] struct {
	key    K
	value  T
	hidden bool
}

// Cache is a paginated remote list with optimistic local mutation.
//
// All methods are safe for concurrent use and never block on the network:
// page fetches and confirming requests run on goroutines owned by the cache
// and are awaited by Close.
type Cache[Q comparable, K comparable, T any] struct {
	name   string
	fetch  FetchFunc[Q, T]
	key    KeyFunc[K, T]
	logger *log.Logger
	inst   instruments

	mu          sync.Mutex
	closed      bool
	query       Q
	generation  uint64
	genCtx      context.Context
	genCancel   context.CancelFunc
	status      Status
	hasMore     bool
	cursor      string
	pagesLoaded int
	lastErr     error
	order       []*entry[K, T]
	index       map[K]*entry[K, T]
	pending     map[MutationID]*pendingMutation[K, T]
	pendingKeys map[K]MutationID
	nextID      MutationID
	subs        map[int]chan Snapshot[Q, T]
	nextSub     int

	wg conc.WaitGroup
}

// New builds an idle cache. Call Reset to mount it on a query.
func New[Q comparable, K comparable, T any](cfg Config[Q, K, T]) (*Cache[Q, K, T], error) {
	if cfg.Fetch == nil {
		return nil, errors.New("fetch function is required")
	}
	if cfg.Key == nil {
		return nil, errors.New("key function is required")
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "collection"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Cache[Q, K, T]{
		name:        name,
		fetch:       cfg.Fetch,
		key:         cfg.Key,
		logger:      logger,
		inst:        loadInstruments(),
		index:       make(map[K]*entry[K, T]),
		pending:     make(map[MutationID]*pendingMutation[K, T]),
		pendingKeys: make(map[K]MutationID),
		subs:        make(map[int]chan Snapshot[Q, T]),
	}, nil
}

// Name returns the configured collection name.
func (c *Cache[Q, K, T]) Name() string {
	return c.name
}

// Reset discards the current list and every pending mutation, starts a new
// generation for query and fetches its first page. Responses still in flight
// for earlier generations are dropped when they arrive.
//
// The returned channel closes once the first-page response has been applied
// or discarded.
func (c *Cache[Q, K, T]) Reset(ctx context.Context, query Q) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return closedSignal()
	}
	if c.genCancel != nil {
		c.genCancel()
	}
	discarded := len(c.pending)

	c.generation++
	c.genCtx, c.genCancel = context.WithCancel(context.Background())
	c.query = query
	c.order = nil
	c.index = make(map[K]*entry[K, T])
	c.pending = make(map[MutationID]*pendingMutation[K, T])
	c.pendingKeys = make(map[K]MutationID)
	c.status = StatusLoadingFirstPage
	c.hasMore = true
	c.cursor = ""
	c.pagesLoaded = 0
	c.lastErr = nil

	if discarded > 0 {
		c.logger.Printf("collection %s: reset generation=%d discarded_pending=%d", c.name, c.generation, discarded)
	}
	done := c.startFetchLocked(ctx)
	c.publishLocked()
	return done
}

// LoadNextPage requests the page after the held continuation marker. It is a
// no-op while a page is loading, before the first Reset, or once the remote
// list is exhausted. From the error state it retries the failed request.
func (c *Cache[Q, K, T]) LoadNextPage(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.status == StatusIdle || c.status.Loading() || !c.hasMore {
		return closedSignal()
	}
	if c.pagesLoaded == 0 {
		c.status = StatusLoadingFirstPage
	} else {
		c.status = StatusLoadingNextPage
	}
	c.lastErr = nil
	done := c.startFetchLocked(ctx)
	c.publishLocked()
	return done
}

// Snapshot returns the current materialized state.
func (c *Cache[Q, K, T]) Snapshot() Snapshot[Q, T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Generation returns the current query generation.
func (c *Cache[Q, K, T]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Get returns the visible item stored under key.
func (c *Cache[Q, K, T]) Get(key K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.index[key]
	if !ok || e.hidden {
		var zero T
		return zero, false
	}
	return e.value, true
}

// KeyOf returns the key the cache files item under.
func (c *Cache[Q, K, T]) KeyOf(item T) K {
	return c.key(item)
}

// Subscribe returns a channel that always holds the latest snapshot. Older
// undelivered snapshots are replaced, so slow readers only see the newest
// state. The channel is closed by cancel or by Close.
func (c *Cache[Q, K, T]) Subscribe() (<-chan Snapshot[Q, T], func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot[Q, T], 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close cancels in-flight fetches, closes subscriptions and waits for every
// goroutine started by the cache.
func (c *Cache[Q, K, T]) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		if c.genCancel != nil {
			c.genCancel()
		}
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Cache[Q, K, T]) startFetchLocked(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	generation := c.generation
	query := c.query
	cursor := c.cursor
	firstPage := c.pagesLoaded == 0
	genCtx := c.genCtx

	c.wg.Go(func() {
		defer close(done)
		fetchCtx, cancel := context.WithCancel(detach(ctx))
		stop := context.AfterFunc(genCtx, cancel)
		defer func() {
			stop()
			cancel()
		}()

		page, err := c.fetchPage(fetchCtx, generation, query, cursor, firstPage)
		c.applyPage(fetchCtx, generation, page, err)
	})
	return done
}

func (c *Cache[Q, K, T]) fetchPage(ctx context.Context, generation uint64, query Q, cursor string, firstPage bool) (Page[T], error) {
	ctx, span := tracer().Start(ctx, "collection.fetch", trace.WithAttributes(
		attribute.String("collection.name", c.name),
		attribute.Int64("collection.generation", int64(generation)),
		attribute.Bool("collection.first_page", firstPage),
	))
	defer span.End()

	page, err := c.fetch(ctx, query, cursor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return Page[T]{}, err
	}
	span.SetAttributes(attribute.Int("collection.page_items", len(page.Items)))
	return page, nil
}

func (c *Cache[Q, K, T]) applyPage(ctx context.Context, generation uint64, page Page[T], err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || generation != c.generation {
		c.inst.inc(ctx, c.inst.staleDropped, c.name)
		return
	}
	if err != nil {
		c.status = StatusError
		c.lastErr = &FetchError{Generation: generation, FirstPage: c.pagesLoaded == 0, Err: err}
		c.inst.inc(ctx, c.inst.fetchFailures, c.name)
		c.logger.Printf("collection %s: fetch failed generation=%d pages_loaded=%d: %v", c.name, generation, c.pagesLoaded, err)
		c.publishLocked()
		return
	}

	c.mergeLocked(page.Items)
	c.cursor = page.Next
	c.hasMore = page.HasMore
	c.pagesLoaded++
	c.status = StatusReady
	c.lastErr = nil
	c.inst.inc(ctx, c.inst.pagesLoaded, c.name)
	c.publishLocked()
}

// mergeLocked appends a page. A key that is already present keeps its
// position and takes the new content, unless an optimistic mutation holds the
// key: then the server copy only replaces the rollback target.
func (c *Cache[Q, K, T]) mergeLocked(items []T) {
	for _, item := range items {
		key := c.key(item)
		if id, ok := c.pendingKeys[key]; ok {
			p := c.pending[id]
			p.prior = item
			p.hadPrior = true
			continue
		}
		if existing, ok := c.index[key]; ok {
			existing.value = item
			continue
		}
		e := &entry[K, T]{key: key, value: item}
		c.order = append(c.order, e)
		c.index[key] = e
	}
}

func (c *Cache[Q, K, T]) snapshotLocked() Snapshot[Q, T] {
	items := make([]T, 0, len(c.order))
	for _, e := range c.order {
		if e.hidden {
			continue
		}
		items = append(items, e.value)
	}
	snap := Snapshot[Q, T]{
		Query:      c.query,
		Generation: c.generation,
		Items:      items,
		Status:     c.status,
		HasMore:    c.hasMore,
		Pending:    len(c.pending),
	}
	if c.status == StatusError {
		snap.Err = c.lastErr
	}
	return snap
}

func (c *Cache[Q, K, T]) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func detach(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}

func closedSignal() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
