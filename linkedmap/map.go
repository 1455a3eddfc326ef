package linkedmap

import (
	"cmp"
	"fmt"
	"time"
)

// Map is a hash map whose entries are also kept in insertion order.
// Lookups are O(1) through the index; the list allows O(1) removal of the
// oldest entry and a TTL sweep over the oldest prefix.
//
// A Map is not safe for concurrent use. Callers that share one across
// goroutines must serialize access (one lock around the whole Map) or shard
// by key.
type Map[K comparable, V any] struct {
	index map[K]int // key -> arena slot; same slot set as the list
	nodes arena[K, V]
	head  header
	tail  int
	cur   int    // read cursor for PopCur
	gen   uint64 // bumped on every structural change

	opt Options[K, V]
}

// New constructs an empty Map for naturally ordered values.
// Defaults:
//   - nil Less     -> cmp.Less
//   - nil Clock    -> monotonic clock
//   - nil Metrics  -> NoopMetrics
func New[K comparable, V cmp.Ordered](opt Options[K, V]) *Map[K, V] {
	if opt.Less == nil {
		opt.Less = cmp.Less[V]
	}
	return newMap(opt)
}

// NewFunc constructs an empty Map that orders values with less.
// It panics if less is nil; opt.Less is ignored.
func NewFunc[K comparable, V any](less func(a, b V) bool, opt Options[K, V]) *Map[K, V] {
	if less == nil {
		panic("linkedmap: NewFunc requires a non-nil less")
	}
	opt.Less = less
	return newMap(opt)
}

// WithCapacity constructs an empty Map whose index is pre-sized for n keys.
func WithCapacity[K comparable, V cmp.Ordered](n int) *Map[K, V] {
	return New[K, V](Options[K, V]{Capacity: n})
}

func newMap[K comparable, V any](opt Options[K, V]) *Map[K, V] {
	if opt.Capacity < 0 {
		opt.Capacity = 0
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Clock == nil {
		opt.Clock = monoClock{base: time.Now()}
	}
	return &Map[K, V]{
		index: make(map[K]int, opt.Capacity),
		nodes: newArena[K, V](),
		head:  header{first: nilIdx},
		tail:  nilIdx,
		cur:   nilIdx,
		opt:   opt,
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.index) }

// ContainsKey reports whether k is present.
func (m *Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Insert stores k→v as the newest entry, stamped with the current time.
// If k is already present its entry is removed first (EvictReplaced), so a
// re-inserted key always moves to the newest position.
func (m *Map[K, V]) Insert(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.evict(i, EvictReplaced)
	}

	i := m.nodes.alloc()
	n := m.nodes.at(i)
	n.key, n.val, n.at = k, v, m.opt.Clock.NowUnixNano()
	m.index[k] = i
	m.attach(i)

	m.opt.Metrics.Insert()
	m.opt.Metrics.Size(len(m.index))
}

// DeleteFirst removes the oldest entry and returns it.
// ok is false if the map is empty.
func (m *Map[K, V]) DeleteFirst() (k K, v V, ok bool) {
	i := m.head.first
	if i == nilIdx {
		return k, v, false
	}
	k, v = m.evict(i, EvictOldest)
	return k, v, true
}

// Delete removes k if present and reports whether it existed.
func (m *Map[K, V]) Delete(k K) bool {
	i, ok := m.index[k]
	if !ok {
		return false
	}
	m.removeNode(i)
	// Note: explicit Delete is not counted as an eviction in metrics.
	return true
}

// Front returns the oldest entry without removing it.
func (m *Map[K, V]) Front() (k K, v V, ok bool) {
	if m.head.first == nilIdx {
		return k, v, false
	}
	n := m.nodes.at(m.head.first)
	return n.key, n.val, true
}

// Get returns the value for k and a presence flag.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if p := m.GetMut(k); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the stored value, or nil if k is absent.
// The pointer stays valid until the entry is removed; writing through it
// does not change the entry's position or timestamp.
func (m *Map[K, V]) GetMut(k K) *V {
	i, ok := m.index[k]
	if !ok {
		m.opt.Metrics.Miss()
		return nil
	}
	m.opt.Metrics.Hit()
	return &m.nodes.at(i).val
}

// ValueGT reports whether v would win a conditional overwrite of k:
// true if the stored value is less than v.
//
// An absent key also yields true, so the result does not distinguish
// "absent" from "stored value is smaller". Use ContainsKey when it matters.
func (m *Map[K, V]) ValueGT(k K, v V) bool {
	i, ok := m.index[k]
	if !ok {
		return true
	}
	return m.opt.Less(m.nodes.at(i).val, v)
}

// valueGTCAS overwrites the stored value with v if it is less than v and
// reports whether it did. k must be present: a missing key is a programming
// error and panics.
func (m *Map[K, V]) valueGTCAS(k K, v V) bool {
	i, ok := m.index[k]
	if !ok {
		panic(fmt.Sprintf("linkedmap: valueGTCAS on missing key %v (key must exist)", k))
	}
	n := m.nodes.at(i)
	if m.opt.Less(n.val, v) {
		n.val = v
		return true
	}
	return false
}

// InsertOrGTCAS inserts k→v if k is absent; otherwise it overwrites the
// stored value only if v is strictly greater. An overwrite keeps the entry's
// position and timestamp. Returns true if v was stored.
func (m *Map[K, V]) InsertOrGTCAS(k K, v V) bool {
	if m.ContainsKey(k) {
		return m.valueGTCAS(k, v)
	}
	m.Insert(k, v)
	return true
}

// PopCur returns the entry under the map's read cursor and advances it.
// Entries are not removed. The cursor only moves forward: deleting the entry
// under it advances it, and once exhausted it resumes at the next insert.
func (m *Map[K, V]) PopCur() (k K, v V, ok bool) {
	if m.cur == nilIdx {
		return k, v, false
	}
	n := m.nodes.at(m.cur)
	m.cur = n.next
	return n.key, n.val, true
}

// ReleaseTimeout removes entries older than maxAge, oldest first, and
// returns how many were removed. An entry is expired when
// now - insertedAt > maxAge; the sweep stops at the first entry that is not,
// since every later entry is younger.
func (m *Map[K, V]) ReleaseTimeout(maxAge time.Duration) int {
	now := m.opt.Clock.NowUnixNano()
	limit := int64(maxAge)

	removed := 0
	for m.head.first != nilIdx && now-m.head.oldest > limit {
		m.evict(m.head.first, EvictTTL)
		removed++
	}
	return removed
}

// -------------------- internals --------------------

// removeNode drops slot i from the index and the list, then frees it.
// Both structures are updated before the slot is released.
func (m *Map[K, V]) removeNode(i int) (K, V) {
	n := m.nodes.at(i)
	k, v := n.key, n.val
	delete(m.index, k)
	m.detach(i)
	m.nodes.release(i)
	m.opt.Metrics.Size(len(m.index))
	return k, v
}

// evict removes slot i, updates metrics and calls OnEvict.
func (m *Map[K, V]) evict(i int, reason EvictReason) (K, V) {
	k, v := m.removeNode(i)
	m.opt.Metrics.Evict(reason)
	if cb := m.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
	return k, v
}
