// Package mockapi emulates the remote article API on top of a flat
// key-value store. It is the default backend of the client and doubles as
// the engine behind the served HTTP API.
package mockapi

import (
	"sync"
	"time"

	"artikel/auth"
	"artikel/store"
)

// Backend implements auth, article and category operations over a Store.
// Every mutation is a load → transform → save cycle over the whole
// collection; a per-collection mutex serializes those cycles so overlapping
// mutations cannot drop each other's writes.
type Backend struct {
	store store.Store
	codec auth.TokenCodec
	now   func() time.Time

	usersMu      sync.Mutex
	articlesMu   sync.Mutex
	categoriesMu sync.Mutex
}

// Option configures a Backend.
type Option func(*Backend)

// WithTokenCodec replaces the default mock-token codec. The HTTP server
// uses this to issue signed JWTs instead.
func WithTokenCodec(codec auth.TokenCodec) Option {
	return func(b *Backend) { b.codec = codec }
}

// WithClock replaces the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// New builds a backend over the given store.
func New(st store.Store, opts ...Option) *Backend {
	b := &Backend{
		store: st,
		codec: auth.MockCodec{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) timestamp() string {
	return b.now().UTC().Format(time.RFC3339)
}

func (b *Backend) dateStamp() string {
	return b.now().UTC().Format("2006-01-02")
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// nextID assigns max(existing ids)+1, or 1 when the collection is empty.
// Ids are never reused after deletion.
func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}
