package linkedmap

import "time"

// EvictReason explains why an entry was removed by the map itself.
type EvictReason int

const (
	// EvictOldest: removed from the head by DeleteFirst.
	EvictOldest EvictReason = iota
	// EvictTTL: swept by ReleaseTimeout.
	EvictTTL
	// EvictReplaced: superseded by an Insert of the same key.
	EvictReplaced
)

// String returns a stable lowercase name, suitable as a metric label.
func (r EvictReason) String() string {
	switch r {
	case EvictOldest:
		return "oldest"
	case EvictTTL:
		return "ttl"
	case EvictReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Metrics exposes map-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Insert()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock provides time in UnixNano; useful for deterministic tests.
// Timestamps are assumed to be non-decreasing across calls.
type Clock interface{ NowUnixNano() int64 }

// monoClock reads the monotonic clock relative to a wall-clock base,
// so adjustments of the system time never reorder insertion timestamps.
type monoClock struct{ base time.Time }

func (c monoClock) NowUnixNano() int64 {
	return c.base.UnixNano() + int64(time.Since(c.base))
}

// Options configures a Map. Zero values are safe;
// defaults are applied in New/NewFunc:
//   - nil Less     => cmp.Less (New only)
//   - nil Clock    => monotonic clock
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity pre-sizes the hash index. It is a hint, not a limit,
	// and no list nodes are preallocated.
	Capacity int

	// Less orders values for ValueGT and InsertOrGTCAS.
	Less func(a, b V) bool

	// OnEvict is called after an entry has been removed by DeleteFirst,
	// ReleaseTimeout or a replacing Insert. It must not mutate the map.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Clock allows overriding the time source (tests).
	Clock Clock
}
