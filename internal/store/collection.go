package store

import (
	"github.com/google/uuid"
)

// collection holds one entity kind in insertion order. The id accessors are
// supplied per kind so the same mutation rules apply to every collection.
type collection[E any] struct {
	items []E
	id    func(E) string
	setID func(*E, string)
}

// setAll replaces the whole collection with a copy of items, as given.
func (c *collection[E]) setAll(items []E) {
	c.items = append([]E(nil), items...)
}

// add appends e, assigning a fresh unique id when e carries none. Rows
// confirmed by the remote backend arrive with their persisted id and keep it.
func (c *collection[E]) add(e E) E {
	if c.id(e) == "" {
		c.setID(&e, uuid.New().String())
	}
	c.items = append(c.items, e)
	return e
}

// update applies apply to the entity matching id. An unknown id is a silent
// no-op; callers race with deletions and rely on that tolerance.
func (c *collection[E]) update(id string, apply func(*E)) bool {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			apply(&c.items[i])
			return true
		}
	}
	return false
}

// remove filters out the entity matching id. Unknown ids are a silent no-op.
func (c *collection[E]) remove(id string) bool {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// list returns a copy of the collection in insertion order.
func (c *collection[E]) list() []E {
	return append([]E(nil), c.items...)
}

func (c *collection[E]) get(id string) (E, bool) {
	for i := range c.items {
		if c.id(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero E
	return zero, false
}
