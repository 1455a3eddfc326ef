package prom

import (
	"testing"
	"time"

	"github.com/IvanBrykalov/queuemap/linkedmap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t int64 }

func (f *fakeClock) NowUnixNano() int64 { return f.t }

func TestAdapter_CountsMapSignals(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "linkedmap", "test", nil)

	clk := &fakeClock{}
	m := linkedmap.New[string, int](linkedmap.Options[string, int]{Metrics: a, Clock: clk})

	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)
	m.Insert("a", 4) // replaces a

	require.NotNil(t, m.GetMut("b"))
	require.Nil(t, m.GetMut("zzz"))

	_, _, ok := m.DeleteFirst() // b
	require.True(t, ok)

	clk.t += int64(time.Second)
	require.Equal(t, 2, m.ReleaseTimeout(time.Millisecond))

	require.Equal(t, 1.0, testutil.ToFloat64(a.hits))
	require.Equal(t, 1.0, testutil.ToFloat64(a.misses))
	require.Equal(t, 4.0, testutil.ToFloat64(a.inserts))
	require.Equal(t, 1.0, testutil.ToFloat64(a.evicts.WithLabelValues("replaced")))
	require.Equal(t, 1.0, testutil.ToFloat64(a.evicts.WithLabelValues("oldest")))
	require.Equal(t, 2.0, testutil.ToFloat64(a.evicts.WithLabelValues("ttl")))
	require.Equal(t, 0.0, testutil.ToFloat64(a.size))
}

// Explicit Delete shrinks the gauge but is not an eviction.
func TestAdapter_DeleteIsNotEviction(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "linkedmap", "test", nil)
	m := linkedmap.New[int, int](linkedmap.Options[int, int]{Metrics: a})

	m.Insert(1, 1)
	m.Insert(2, 2)
	require.Equal(t, 2.0, testutil.ToFloat64(a.size))

	require.True(t, m.Delete(1))
	require.Equal(t, 1.0, testutil.ToFloat64(a.size))
	require.Equal(t, 0, testutil.CollectAndCount(a.evicts))
}

// Adapters with distinct const labels can share one registry.
func TestAdapter_ConstLabelsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a0 := New(reg, "linkedmap", "shard", prometheus.Labels{"shard": "0"})
	a1 := New(reg, "linkedmap", "shard", prometheus.Labels{"shard": "1"})

	a0.Insert()
	a1.Insert()
	a1.Insert()

	require.Equal(t, 1.0, testutil.ToFloat64(a0.inserts))
	require.Equal(t, 2.0, testutil.ToFloat64(a1.inserts))
	n, err := testutil.GatherAndCount(reg, "linkedmap_shard_inserts_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
