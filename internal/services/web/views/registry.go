package views

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/sourcegraph/conc"
)

const (
	defaultCapacity = 1024
	defaultTTL      = 30 * time.Minute
	minSweep        = time.Second
)

// ErrClosed is returned by Mount after Close.
var ErrClosed = errors.New("view registry is closed")

// Config configures a Registry.
type Config[Q comparable, K comparable, T any] struct {
	// Name labels the view kind, for example "pets.public".
	Name  string
	Fetch collection.FetchFunc[Q, T]
	Key   collection.KeyFunc[K, T]
	// Capacity bounds concurrently mounted views. Defaults to 1024.
	Capacity int
	// TTL evicts views not touched for this long. Defaults to 30 minutes.
	TTL    time.Duration
	Logger *log.Logger
}

// slot is a mounted view and the last time its visitor used it.
type slot[Q comparable, K comparable, T any] struct {
	view    *View[Q, K, T]
	touched time.Time
}

// Registry holds the views of one kind, keyed by visitor.
type Registry[Q comparable, K comparable, T any] struct {
	cfg    Config[Q, K, T]
	logger *log.Logger
	now    func() time.Time

	mu     sync.Mutex
	closed bool
	views  *lru.Cache[string, *slot[Q, K, T]]

	stop chan struct{}
	// closing tracks the idle sweeper and evicted views whose caches are
	// still shutting down.
	closing conc.WaitGroup
}

// NewRegistry validates cfg, builds an empty registry and starts its idle
// sweeper. Close stops the sweeper.
func NewRegistry[Q comparable, K comparable, T any](cfg Config[Q, K, T]) (*Registry[Q, K, T], error) {
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return nil, errors.New("view name is required")
	}
	if cfg.Fetch == nil || cfg.Key == nil {
		return nil, fmt.Errorf("view %s: fetch and key functions are required", cfg.Name)
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	r := &Registry[Q, K, T]{cfg: cfg, logger: logger, now: time.Now, stop: make(chan struct{})}
	views, err := lru.NewWithEvict[string, *slot[Q, K, T]](cfg.Capacity, r.evicted)
	if err != nil {
		return nil, fmt.Errorf("view %s: %w", cfg.Name, err)
	}
	r.views = views
	r.closing.Go(r.sweepLoop)
	return r, nil
}

// Name returns the view kind.
func (r *Registry[Q, K, T]) Name() string {
	return r.cfg.Name
}

// Mount binds query to the visitor's view and starts a new generation. An
// existing view is reset in place so its generation keeps increasing and
// stale continuation links stop matching.
func (r *Registry[Q, K, T]) Mount(ctx context.Context, visitorID string, query Q) (*View[Q, K, T], <-chan struct{}, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, nil, errors.New("visitor id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, nil, ErrClosed
	}
	s, ok := r.liveLocked(visitorID)
	if !ok {
		cache, err := collection.New(collection.Config[Q, K, T]{
			Name:   r.cfg.Name,
			Fetch:  r.cfg.Fetch,
			Key:    r.cfg.Key,
			Logger: r.logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("view %s: %w", r.cfg.Name, err)
		}
		s = &slot[Q, K, T]{view: newView(cache), touched: r.now()}
		r.views.Add(visitorID, s)
	}
	return s.view, s.view.cache.Reset(ctx, query), nil
}

// Lookup returns the visitor's mounted view and refreshes its TTL.
func (r *Registry[Q, K, T]) Lookup(visitorID string) (*View[Q, K, T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false
	}
	s, ok := r.liveLocked(visitorID)
	if !ok {
		return nil, false
	}
	return s.view, true
}

// liveLocked returns the visitor's slot unless it sat idle past the TTL, in
// which case it is evicted. A live slot is marked as used.
func (r *Registry[Q, K, T]) liveLocked(visitorID string) (*slot[Q, K, T], bool) {
	s, ok := r.views.Get(visitorID)
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.Sub(s.touched) >= r.cfg.TTL {
		r.views.Remove(visitorID)
		return nil, false
	}
	s.touched = now
	return s, true
}

// Unmount drops the visitor's view and closes its cache.
func (r *Registry[Q, K, T]) Unmount(visitorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views.Remove(visitorID)
}

// Len reports the number of mounted views.
func (r *Registry[Q, K, T]) Len() int {
	return r.views.Len()
}

// Close unmounts every view, stops the sweeper and waits for the caches to
// shut down.
func (r *Registry[Q, K, T]) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.stop)
		r.views.Purge()
	}
	r.mu.Unlock()
	r.closing.Wait()
}

func (r *Registry[Q, K, T]) sweepLoop() {
	ticker := time.NewTicker(max(r.cfg.TTL/4, minSweep))
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep evicts every view idle for at least the TTL.
func (r *Registry[Q, K, T]) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	now := r.now()
	for _, visitorID := range r.views.Keys() {
		if s, ok := r.views.Peek(visitorID); ok && now.Sub(s.touched) >= r.cfg.TTL {
			r.views.Remove(visitorID)
		}
	}
}

// evicted may run under the LRU lock, so the cache is closed off that path.
func (r *Registry[Q, K, T]) evicted(_ string, s *slot[Q, K, T]) {
	r.closing.Go(s.view.close)
}
