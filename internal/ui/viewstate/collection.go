// Package viewstate holds list state shown by the front ends while writes
// are in flight.
package viewstate

import (
	"github.com/google/uuid"
)

// Item is one entry of a Collection. Pending items were applied locally and
// have not been confirmed by a fetch yet.
type Item[T any] struct {
	Key     string
	Value   T
	Pending bool
}

// Collection is updated in two phases: local placeholders first, then a
// wholesale Replace from the next successful fetch. Fetched items are never
// merged field by field.
type Collection[T any] struct {
	items    []Item[T]
	keyOf    func(T) string
	previous map[string]T
}

// NewCollection keys fetched items with keyOf.
func NewCollection[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{keyOf: keyOf, previous: map[string]T{}}
}

// ApplyPlaceholder puts v on top of the collection under a fresh local key
// and returns that key.
func (c *Collection[T]) ApplyPlaceholder(v T) string {
	key := "local-" + uuid.NewString()
	c.items = append([]Item[T]{{Key: key, Value: v, Pending: true}}, c.items...)
	return key
}

// Stage swaps the value of an existing item and marks it pending. It
// reports false when no item has that key.
func (c *Collection[T]) Stage(key string, v T) bool {
	for i := range c.items {
		if c.items[i].Key != key {
			continue
		}
		if _, staged := c.previous[key]; !staged {
			c.previous[key] = c.items[i].Value
		}
		c.items[i].Value = v
		c.items[i].Pending = true
		return true
	}
	return false
}

// Revert undoes a placeholder or a staged change after the write failed.
func (c *Collection[T]) Revert(key string) {
	for i := range c.items {
		if c.items[i].Key != key {
			continue
		}
		if old, ok := c.previous[key]; ok {
			c.items[i] = Item[T]{Key: key, Value: old}
			delete(c.previous, key)
			return
		}
		if c.items[i].Pending {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return
	}
}

// Replace drops every local change and shows exactly the fetched values.
func (c *Collection[T]) Replace(values []T) {
	items := make([]Item[T], len(values))
	for i, v := range values {
		items[i] = Item[T]{Key: c.keyOf(v), Value: v}
	}
	c.items = items
	c.previous = map[string]T{}
}

func (c *Collection[T]) Items() []Item[T] {
	return append([]Item[T](nil), c.items...)
}

func (c *Collection[T]) Values() []T {
	out := make([]T, len(c.items))
	for i, it := range c.items {
		out[i] = it.Value
	}
	return out
}

func (c *Collection[T]) Len() int { return len(c.items) }

// HasPending reports whether a local change still awaits reconciliation.
func (c *Collection[T]) HasPending() bool {
	for _, it := range c.items {
		if it.Pending {
			return true
		}
	}
	return false
}
