package linkedmap

import (
	"errors"
	"iter"
)

// ErrCursorInvalidated is reported by Cursor.Err once the map has been
// structurally modified after the cursor was created.
var ErrCursorInvalidated = errors.New("linkedmap: cursor invalidated by map mutation")

// Cursor walks a Map in insertion order without removing entries.
// It is bound to the map's shape at creation: any Insert or removal
// invalidates it. Value updates through GetMut or InsertOrGTCAS do not.
type Cursor[K comparable, V any] struct {
	m   *Map[K, V]
	gen uint64
	i   int
	err error
}

// Cursor returns a cursor positioned at the oldest entry.
func (m *Map[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{m: m, gen: m.gen, i: m.head.first}
}

// Next returns the entry under the cursor and advances it.
// ok is false when the cursor is exhausted or invalidated; check Err
// to tell the two apart.
func (c *Cursor[K, V]) Next() (k K, v V, ok bool) {
	if c.err != nil {
		return k, v, false
	}
	if c.gen != c.m.gen {
		c.err = ErrCursorInvalidated
		c.i = nilIdx
		return k, v, false
	}
	if c.i == nilIdx {
		return k, v, false
	}
	n := c.m.nodes.at(c.i)
	c.i = n.next
	return n.key, n.val, true
}

// Err returns ErrCursorInvalidated if the map changed under the cursor.
func (c *Cursor[K, V]) Err() error { return c.err }

// All returns an iterator over entries in insertion order.
// Modifying the map's structure inside the loop body panics; updating
// values through GetMut is allowed.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		gen := m.gen
		for i := m.head.first; i != nilIdx; {
			n := m.nodes.at(i)
			next := n.next
			if !yield(n.key, n.val) {
				return
			}
			if m.gen != gen {
				panic("linkedmap: map mutated during iteration")
			}
			i = next
		}
	}
}
