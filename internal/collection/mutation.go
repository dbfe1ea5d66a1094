package collection

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MutationID identifies one optimistic mutation until it is settled.
type MutationID uint64

// MutationKind enumerates optimistic edits.
type MutationKind int

const (
	MutationInsert MutationKind = iota + 1
	MutationUpdate
	MutationRemove
)

// String returns the lower-case kind name.
func (k MutationKind) String() string {
	switch k {
	case MutationInsert:
		return "insert"
	case MutationUpdate:
		return "update"
	case MutationRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Mutation is an optimistic local edit.
type Mutation[K comparable, T any] struct {
	Kind MutationKind
	// Key targets a Remove. Insert and Update derive the key from Item.
	Key  K
	Item T
	// Position is the visible index an Insert lands at. Zero is the front;
	// a negative position appends.
	Position int
}

// Insert places item at the front of the list.
func Insert[K comparable, T any](item T) Mutation[K, T] {
	return Mutation[K, T]{Kind: MutationInsert, Item: item}
}

// InsertAt places item at the given visible position.
func InsertAt[K comparable, T any](item T, position int) Mutation[K, T] {
	return Mutation[K, T]{Kind: MutationInsert, Item: item, Position: position}
}

// Update replaces the content stored under item's key.
func Update[K comparable, T any](item T) Mutation[K, T] {
	return Mutation[K, T]{Kind: MutationUpdate, Item: item}
}

// Remove hides the item stored under key.
func Remove[K comparable, T any](key K) Mutation[K, T] {
	return Mutation[K, T]{Kind: MutationRemove, Key: key}
}

type pendingMutation[K comparable, T any] struct {
	id    MutationID
	kind  MutationKind
	key   K
	entry *entry[K, T]
	// prior is what Rollback restores. Page loads refresh it with the latest
	// server copy of the key.
	prior    T
	hadPrior bool
}

// Apply performs m on the visible list immediately and returns its handle.
// A key can carry at most one pending mutation.
func (c *Cache[Q, K, T]) Apply(m Mutation[K, T]) (MutationID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}

	var key K
	switch m.Kind {
	case MutationInsert, MutationUpdate:
		key = c.key(m.Item)
	case MutationRemove:
		key = m.Key
	default:
		return 0, fmt.Errorf("apply mutation: unsupported kind %d", m.Kind)
	}
	if _, busy := c.pendingKeys[key]; busy {
		return 0, ErrMutationPending
	}

	p := &pendingMutation[K, T]{kind: m.Kind, key: key}
	switch m.Kind {
	case MutationInsert:
		if _, exists := c.index[key]; exists {
			return 0, ErrKeyExists
		}
		e := &entry[K, T]{key: key, value: m.Item}
		c.insertLocked(e, m.Position)
		c.index[key] = e
		p.entry = e
	case MutationUpdate:
		e, ok := c.index[key]
		if !ok {
			return 0, ErrNotFound
		}
		p.prior, p.hadPrior = e.value, true
		e.value = m.Item
		p.entry = e
	case MutationRemove:
		e, ok := c.index[key]
		if !ok {
			return 0, ErrNotFound
		}
		p.prior, p.hadPrior = e.value, true
		e.hidden = true
		p.entry = e
	}

	c.nextID++
	p.id = c.nextID
	c.pending[p.id] = p
	c.pendingKeys[key] = p.id
	c.publishLocked()
	return p.id, nil
}

// Confirm makes mutation id permanent. A non-nil confirmed item replaces the
// optimistic value in place, re-keying the entry when the server assigned a
// different key.
func (c *Cache[Q, K, T]) Confirm(id MutationID, confirmed *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if !ok {
		return ErrUnknownMutation
	}
	c.settleLocked(p)

	switch p.kind {
	case MutationRemove:
		c.removeEntryLocked(p.entry)
	default:
		if confirmed != nil {
			c.rekeyLocked(p.entry, c.key(*confirmed))
			p.entry.value = *confirmed
		}
	}
	c.inst.inc(context.Background(), c.inst.confirmed, c.name)
	c.publishLocked()
	return nil
}

// Rollback reverts mutation id: an Update or Remove restores the prior
// content, an Insert disappears.
func (c *Cache[Q, K, T]) Rollback(id MutationID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if !ok {
		return ErrUnknownMutation
	}
	c.settleLocked(p)

	if p.hadPrior {
		p.entry.value = p.prior
		p.entry.hidden = false
	} else {
		c.removeEntryLocked(p.entry)
	}
	c.inst.inc(context.Background(), c.inst.rolledBack, c.name)
	c.logger.Printf("collection %s: rolled back %s key=%v", c.name, p.kind, p.key)
	c.publishLocked()
	return nil
}

// Commit runs the confirming request for mutation id in the background.
// Success confirms the mutation with the returned item; failure rolls it back
// and delivers a *MutationRejectedError. The channel yields exactly one value.
func (c *Cache[Q, K, T]) Commit(ctx context.Context, id MutationID, commit CommitFunc[T]) <-chan error {
	result := make(chan error, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		result <- ErrClosed
		close(result)
		return result
	}
	p, ok := c.pending[id]
	if !ok {
		result <- ErrUnknownMutation
		close(result)
		return result
	}
	kind := p.kind
	key := fmt.Sprint(p.key)

	c.wg.Go(func() {
		defer close(result)
		item, err := c.runCommit(detach(ctx), kind, key, commit)
		if err != nil {
			// The handle is gone when a reset discarded it; nothing to revert.
			_ = c.Rollback(id)
			result <- &MutationRejectedError{ID: id, Kind: kind, Key: key, Err: err}
			return
		}
		_ = c.Confirm(id, item)
		result <- nil
	})
	return result
}

// Mutate applies m optimistically and commits it in the background.
func (c *Cache[Q, K, T]) Mutate(ctx context.Context, m Mutation[K, T], commit CommitFunc[T]) (MutationID, <-chan error, error) {
	id, err := c.Apply(m)
	if err != nil {
		return 0, nil, err
	}
	return id, c.Commit(ctx, id, commit), nil
}

func (c *Cache[Q, K, T]) runCommit(ctx context.Context, kind MutationKind, key string, commit CommitFunc[T]) (*T, error) {
	if commit == nil {
		return nil, nil
	}
	ctx, span := tracer().Start(ctx, "collection.commit", trace.WithAttributes(
		attribute.String("collection.name", c.name),
		attribute.String("collection.mutation", kind.String()),
		attribute.String("collection.key", key),
	))
	defer span.End()

	item, err := commit(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit rejected")
		return nil, err
	}
	return item, nil
}

func (c *Cache[Q, K, T]) settleLocked(p *pendingMutation[K, T]) {
	delete(c.pending, p.id)
	if c.pendingKeys[p.key] == p.id {
		delete(c.pendingKeys, p.key)
	}
}

func (c *Cache[Q, K, T]) insertLocked(e *entry[K, T], position int) {
	if position < 0 {
		c.order = append(c.order, e)
		return
	}
	idx := len(c.order)
	visible := 0
	for i, existing := range c.order {
		if existing.hidden {
			continue
		}
		if visible == position {
			idx = i
			break
		}
		visible++
	}
	c.order = slices.Insert(c.order, idx, e)
}

// rekeyLocked moves e to key. Another entry already holding key is dropped
// together with any mutation pending on it.
func (c *Cache[Q, K, T]) rekeyLocked(e *entry[K, T], key K) {
	if e.key == key {
		return
	}
	if other, ok := c.index[key]; ok && other != e {
		if otherID, busy := c.pendingKeys[key]; busy {
			delete(c.pending, otherID)
			delete(c.pendingKeys, key)
		}
		c.removeEntryLocked(other)
	}
	if c.index[e.key] == e {
		delete(c.index, e.key)
	}
	e.key = key
	c.index[key] = e
}

func (c *Cache[Q, K, T]) removeEntryLocked(e *entry[K, T]) {
	if idx := slices.Index(c.order, e); idx >= 0 {
		c.order = slices.Delete(c.order, idx, idx+1)
	}
	if c.index[e.key] == e {
		delete(c.index, e.key)
	}
}
