// Package linkedmap provides a generic hash map that also remembers
// insertion order, for cache-like workloads where entries are looked up by
// key but aged out oldest-first.
//
// Design
//
//   - Storage: entries live in an arena of fixed-size pages addressed by
//     integer slots, with a free list for reclaimed slots. The insertion
//     order is a doubly linked list threaded through slot indices, and the
//     index is a map[K]int from key to slot. Node addresses never move, so
//     pointers returned by GetMut stay valid until the entry is removed.
//
//   - Order: strictly insertion order. Lookups and value updates never
//     reorder entries. Inserting a key that is already present replaces the
//     old entry, and the new one becomes the newest.
//
//   - Header: the map tracks the first (oldest) entry and caches its
//     timestamp, which ReleaseTimeout compares against without touching
//     the node.
//
//   - Expiry: nothing expires on its own. DeleteFirst removes the oldest
//     entry; ReleaseTimeout(maxAge) sweeps the oldest prefix whose age
//     exceeds maxAge.
//
//   - Conditional writes: InsertOrGTCAS inserts a missing key or overwrites
//     the stored value only when the new value is strictly greater.
//
//   - Traversal: All ranges over entries; Cursor is an explicit iterator that
//     is invalidated by structural changes; PopCur is a forward-only read
//     cursor owned by the map that survives deletes.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Insert/Evict/Size signals.
//     By default NoopMetrics is used; see package metrics/prom.
//
// Basic usage
//
//	m := linkedmap.New[string, int64](linkedmap.Options[string, int64]{})
//	m.Insert("a", 1)
//	m.InsertOrGTCAS("a", 5) // true, value is now 5
//	m.InsertOrGTCAS("a", 3) // false, 3 is not greater
//	m.ReleaseTimeout(time.Minute)
//	for k, v := range m.All() {
//	    fmt.Println(k, v)
//	}
//
// Thread-safety & complexity
//
// A Map is not safe for concurrent use; wrap it in a mutex or shard maps by
// key. Every operation is O(1) expected, except ReleaseTimeout, which is O(1)
// per removed entry, and the traversals.
package linkedmap
