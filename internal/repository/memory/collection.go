// Package memory holds the identity-keyed collections the planner store is
// built from. Collections are not safe for concurrent use; the owner serializes access.
package memory

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when inserting an id that is already present.
var ErrDuplicateID = errors.New("duplicate id")

// Collection is an insertion-ordered map of records keyed by id.
type Collection[T any] struct {
	order []string
	items map[string]*T
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]*T)}
}

// Len returns the number of records.
func (c *Collection[T]) Len() int { return len(c.order) }

// Has reports whether id is present.
func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Get returns the stored record. The pointer is owned by the collection.
func (c *Collection[T]) Get(id string) (*T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// Insert appends a record. Ids are immutable once inserted.
func (c *Collection[T]) Insert(id string, v *T) error {
	if id == "" {
		return fmt.Errorf("insert: empty id")
	}
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("insert %s: %w", id, ErrDuplicateID)
	}
	c.items[id] = v
	c.order = append(c.order, id)
	return nil
}

// Replace swaps the record stored under id, keeping its position.
// It returns false when id is unknown.
func (c *Collection[T]) Replace(id string, v *T) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = v
	return true
}

// Delete removes id and returns false when it was not present.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the stored records in insertion order.
func (c *Collection[T]) List() []*T {
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Filter returns the records for which keep returns true, in insertion order.
func (c *Collection[T]) Filter(keep func(*T) bool) []*T {
	var out []*T
	for _, id := range c.order {
		if v := c.items[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}
