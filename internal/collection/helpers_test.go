package collection

import (
	"context"
	"testing"
	"time"
)

type pet struct {
	ID   string
	Name string
}

type petQuery struct {
	Search   string
	Category string
}

func petKey(p pet) string { return p.ID }

type fetchReply struct {
	page Page[pet]
	err  error
}

type fetchCall struct {
	ctx    context.Context
	query  petQuery
	cursor string
	reply  chan fetchReply
}

func (c fetchCall) respond(items []pet, next string, hasMore bool) {
	c.reply <- fetchReply{page: Page[pet]{Items: items, Next: next, HasMore: hasMore}}
}

func (c fetchCall) fail(err error) {
	c.reply <- fetchReply{err: err}
}

// fakeRemote hands every fetch to the test, which answers it explicitly.
type fakeRemote struct {
	calls        chan fetchCall
	ignoreCancel bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{calls: make(chan fetchCall, 16)}
}

func (f *fakeRemote) fetch(ctx context.Context, query petQuery, cursor string) (Page[pet], error) {
	call := fetchCall{ctx: ctx, query: query, cursor: cursor, reply: make(chan fetchReply, 1)}
	f.calls <- call
	if f.ignoreCancel {
		reply := <-call.reply
		return reply.page, reply.err
	}
	select {
	case reply := <-call.reply:
		return reply.page, reply.err
	case <-ctx.Done():
		return Page[pet]{}, ctx.Err()
	}
}

func (f *fakeRemote) next(t *testing.T) fetchCall {
	t.Helper()
	select {
	case call := <-f.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return fetchCall{}
	}
}

func (f *fakeRemote) expectIdle(t *testing.T) {
	t.Helper()
	select {
	case call := <-f.calls:
		t.Fatalf("unexpected fetch query=%+v cursor=%q", call.query, call.cursor)
	default:
	}
}

func newTestCache(t *testing.T, remote *fakeRemote) *Cache[petQuery, string, pet] {
	t.Helper()
	cache, err := New(Config[petQuery, string, pet]{
		Name:  "pets",
		Fetch: remote.fetch,
		Key:   petKey,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(cache.Close)
	return cache
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch to settle")
	}
}

func waitResult(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for commit")
		return nil
	}
}

// loadFirstPage mounts cache on query and answers page 1 with items.
func loadFirstPage(t *testing.T, cache *Cache[petQuery, string, pet], remote *fakeRemote, query petQuery, items []pet, hasMore bool) {
	t.Helper()
	done := cache.Reset(context.Background(), query)
	call := remote.next(t)
	next := ""
	if hasMore {
		next = "2"
	}
	call.respond(items, next, hasMore)
	waitDone(t, done)
}
