// Package viewstate provides in-process snapshots of store data, kept live
// for API consumers. Each Collection mirrors one entity type: a load replaces
// the whole snapshot, and every successful store mutation splices exactly one
// element in, out, or within it, so callers never reload after a local write.
//
// The store remains the single source of truth; a Collection is eventually
// consistent with it. Concurrent loads are not coordinated: last load wins,
// and a slower load can overwrite a faster one's result.
package viewstate

import "sync"

// Collection is a mutex-guarded, identifier-keyed snapshot of one entity type.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string

	subMu sync.Mutex
	subs  map[int]chan struct{}
	next  int
}

// NewCollection creates an empty collection keyed by the given identifier
// function.
func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		idOf: idOf,
		subs: make(map[int]chan struct{}),
	}
}

// Replace swaps the entire snapshot for the given items (a wholesale load).
func (c *Collection[T]) Replace(items []T) {
	copied := make([]T, len(items))
	copy(copied, items)
	c.mu.Lock()
	c.items = copied
	c.mu.Unlock()
	c.notify()
}

// Prepend inserts the item at the front of the snapshot (newest first).
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	c.items = append([]T{item}, c.items...)
	c.mu.Unlock()
	c.notify()
}

// Append inserts the item at the end of the snapshot.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	c.notify()
}

// Upsert replaces the element with the same identifier in place, or appends
// the item if no element matches.
func (c *Collection[T]) Upsert(item T) {
	id := c.idOf(item)
	c.mu.Lock()
	replaced := false
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()
	c.notify()
}

// Remove splices the element with the given identifier out of the snapshot.
// It reports whether an element was removed.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	removed := false
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()
	if removed {
		c.notify()
	}
	return removed
}

// Get returns the element with the given identifier.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the current collection contents.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of elements in the snapshot.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Subscribe registers a change listener. The returned channel receives a
// coalesced signal after every mutation; cancel removes the subscription.
func (c *Collection[T]) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	c.subMu.Lock()
	id := c.next
	c.next++
	c.subs[id] = ch
	c.subMu.Unlock()

	cancel := func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
	return ch, cancel
}

func (c *Collection[T]) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default: // listener already has a pending signal
		}
	}
}
