package linkedmap

import (
	"strconv"
	"testing"
	"time"
)

// benchmarkQueue keeps a window of live entries: every insert is paired with
// a removal of the oldest, the steady state of a FIFO cache.
func benchmarkQueue(b *testing.B, window int) {
	m := WithCapacity[int, int](window)
	for i := 0; i < window; i++ {
		m.Insert(i, i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Insert(window+i, i)
		m.DeleteFirst()
	}
}

func BenchmarkMap_Queue_1k(b *testing.B)   { benchmarkQueue(b, 1_000) }
func BenchmarkMap_Queue_100k(b *testing.B) { benchmarkQueue(b, 100_000) }

// Conditional overwrites on a hot keyspace; strings include strconv cost.
func BenchmarkMap_InsertOrGTCAS(b *testing.B) {
	m := New[string, int](Options[string, int]{Capacity: 1 << 16})
	keys := make([]string, 1<<16)
	for i := range keys {
		keys[i] = "k:" + strconv.Itoa(i)
	}
	keyMask := len(keys) - 1

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.InsertOrGTCAS(keys[i&keyMask], i)
	}
}

// Sweep cost per expired entry, with a fake clock so every sweep expires
// exactly one batch.
func BenchmarkMap_ReleaseTimeout(b *testing.B) {
	clk := &fakeClock{}
	m := New[int, int](Options[int, int]{Clock: clk})
	const batch = 64

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < batch; j++ {
			m.Insert(i*batch+j, j)
		}
		clk.add(time.Second)
		m.ReleaseTimeout(time.Millisecond)
	}
}
