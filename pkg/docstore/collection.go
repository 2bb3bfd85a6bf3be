package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Record is anything stored in a collection. IDs are unique per collection.
type Record interface {
	GetID() string
}

// Locks hands out one lock per collection name. A lock is a one-slot
// channel so waiting can be abandoned when the context is done.
type Locks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocks() *Locks {
	return &Locks{slots: make(map[string]chan struct{})}
}

func (l *Locks) slot(name string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[name]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[name] = s
	}
	return s
}

// Lock blocks until the named collection is free or ctx is done. The
// returned function releases the lock.
func (l *Locks) Lock(ctx context.Context, name string) (func(), error) {
	s := l.slot(name)
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Database groups a Store with the locks that serialize its mutations.
type Database struct {
	Store Store
	Locks *Locks
}

func NewDatabase(store Store) *Database {
	return &Database{Store: store, Locks: NewLocks()}
}

// Collection is a typed view over one named collection.
type Collection[T Record] struct {
	db   *Database
	name string
}

func NewCollection[T Record](db *Database, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Load reads the whole collection from the medium.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.db.Store.Get(ctx, c.name)
	if err != nil {
		return nil, err
	}

	records := []T{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, unavailable("decode", c.name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save replaces the whole collection.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		id := r.GetID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateID, c.name, id)
		}
		seen[id] = struct{}{}
	}

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.db.Store.Put(ctx, c.name, data)
}

// Mutate runs fn on a freshly loaded collection and saves the result, all
// while holding the collection lock. An error from fn aborts without writing.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(records []T) ([]T, error)) error {
	unlock, err := c.db.Locks.Lock(ctx, c.name)
	if err != nil {
		return err
	}
	defer unlock()

	records, err := c.Load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.Save(ctx, updated)
}

// Find returns the record with the given id.
func Find[T Record](records []T, id string) (T, bool) {
	if i := IndexOf(records, id); i >= 0 {
		return records[i], true
	}
	var zero T
	return zero, false
}

func IndexOf[T Record](records []T, id string) int {
	for i, r := range records {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}

// Remove filters out the record with the given id. It reports whether a
// record was removed.
func Remove[T Record](records []T, id string) ([]T, bool) {
	i := IndexOf(records, id)
	if i < 0 {
		return records, false
	}
	out := make([]T, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...), true
}
