// Package util contains internal helpers for callers that shard maps by key.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"hash/maphash"
	"math/bits"
	"runtime"
)

// IsPowerOfTwo reports whether x is a power of two (> 0).
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && (x&(x-1)) == 0
}

// NextPow2 returns the smallest power of two >= x.
// x == 0 yields 1; results that would overflow are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	if x > 1<<63 {
		return 1 << 63
	}
	return 1 << bits.Len64(x-1)
}

// ReasonableShardCount picks a practical default shard count based on CPU
// parallelism. Heuristic: nextPow2(2*GOMAXPROCS), clamped to [1..256].
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n > 256 {
		n = 256
	}
	return n
}

// Sharder maps keys to one of a power-of-two number of shards.
// The seed is random per Sharder, so indices are stable only within
// one process.
type Sharder[K comparable] struct {
	seed maphash.Seed
	mask uint64
}

// NewSharder returns a Sharder over n shards, rounded up to a power of two.
// n <= 0 selects ReasonableShardCount.
func NewSharder[K comparable](n int) Sharder[K] {
	if n <= 0 {
		n = ReasonableShardCount()
	}
	return Sharder[K]{
		seed: maphash.MakeSeed(),
		mask: NextPow2(uint64(n)) - 1,
	}
}

// Count returns the number of shards.
func (s Sharder[K]) Count() int { return int(s.mask + 1) }

// Index returns the shard for k in [0, Count()).
func (s Sharder[K]) Index(k K) int {
	return int(maphash.Comparable(s.seed, k) & s.mask)
}
