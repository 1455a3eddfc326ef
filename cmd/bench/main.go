// Command bench runs a synthetic workload against key-sharded maps and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanBrykalov/queuemap/internal/util"
	"github.com/IvanBrykalov/queuemap/linkedmap"
	pmet "github.com/IvanBrykalov/queuemap/metrics/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// shard serializes access to one map; linkedmap itself is not goroutine-safe.
type shard struct {
	mu sync.Mutex
	m  *linkedmap.Map[string, int64]
}

func main() {
	// ---- Flags ----
	var (
		shards  = flag.Int("shards", 0, "number of shards (0=auto)")
		sizeHnt = flag.Int("cap", 100_000, "index capacity hint across all shards")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 60, "ValueGT percentage [0..100]")
		delPct   = flag.Int("deletes", 5, "Delete percentage [0..100]; the rest are InsertOrGTCAS")

		maxAge = flag.Duration("ttl", 2*time.Second, "ReleaseTimeout max age (0 = no sweeping)")
		sweep  = flag.Duration("sweep", 100*time.Millisecond, "sweep interval")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	if *readPct < 0 || *delPct < 0 || *readPct+*delPct > 100 {
		log.Fatalf("reads (%d) + deletes (%d) must be within [0..100]", *readPct, *delPct)
	}
	if *keys < 1 {
		log.Fatalf("keys must be >= 1, got %d", *keys)
	}

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Build shards, one metrics adapter per shard ----
	sharder := util.NewSharder[string](*shards)
	perShardCap := (*sizeHnt + sharder.Count() - 1) / sharder.Count()
	ss := make([]*shard, sharder.Count())
	for i := range ss {
		metrics := pmet.New(nil, "linkedmap", "bench", prometheus.Labels{"shard": strconv.Itoa(i)})
		ss[i] = &shard{m: linkedmap.New[string, int64](linkedmap.Options[string, int64]{
			Capacity: perShardCap,
			Metrics:  metrics,
		})}
	}
	shardOf := func(k string) *shard { return ss[sharder.Index(k)] }

	// ---- Prometheus metrics (on DefaultServeMux) ----
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Preload half capacity ----
	pl := *preload
	if pl == 0 {
		pl = *sizeHnt / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i%*keys)
		s := shardOf(k)
		s.m.Insert(k, int64(i))
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	delPctVal := *delPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, deletes, writes, stored, expired, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	// TTL sweeper: one pass over every shard per tick.
	if *maxAge > 0 && *sweep > 0 {
		age := *maxAge
		g.Go(func() error {
			t := time.NewTicker(*sweep)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
				}
				for _, s := range ss {
					s.mu.Lock()
					n := s.m.ReleaseTimeout(age)
					s.mu.Unlock()
					atomic.AddUint64(&expired, uint64(n))
				}
			}
		})
	}

	for w := 0; w < workersN; w++ {
		id := w
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			// Values grow over time so InsertOrGTCAS overwrites win most of the time.
			var seq int64
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				atomic.AddUint64(&total, 1)
				k := "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
				seq++
				v := seq*int64(workersN) + int64(id)
				s := shardOf(k)
				op := int(localR.Int31n(100))

				s.mu.Lock()
				switch {
				case op < readPctVal:
					s.m.ValueGT(k, v)
					s.mu.Unlock()
					atomic.AddUint64(&reads, 1)
				case op < readPctVal+delPctVal:
					s.m.Delete(k)
					s.mu.Unlock()
					atomic.AddUint64(&deletes, 1)
				default:
					ok := s.m.InsertOrGTCAS(k, v)
					s.mu.Unlock()
					atomic.AddUint64(&writes, 1)
					if ok {
						atomic.AddUint64(&stored, 1)
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("workload: %v", err)
	}
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	writesN := atomic.LoadUint64(&writes)
	storedN := atomic.LoadUint64(&stored)

	storeRate := 0.0
	if writesN > 0 {
		storeRate = float64(storedN) / float64(writesN) * 100
	}

	resident := 0
	for _, s := range ss {
		s.mu.Lock()
		resident += s.m.Len()
		s.mu.Unlock()
	}

	fmt.Printf("shards=%d workers=%d keys=%d ttl=%v dur=%v seed=%d\n",
		sharder.Count(), workersN, *keys, *maxAge, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  deletes=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&reads), atomic.LoadUint64(&deletes), writesN)
	fmt.Printf("stored=%d (%.2f%% of writes)  expired=%d\n", storedN, storeRate, atomic.LoadUint64(&expired))
	fmt.Printf("Len()=%d\n", resident)
}
