// Command eduauth-loadtest measures session store throughput under
// concurrent load.
//
// Each simulated device owns one store prefix. The read phase models
// rehydration (token + identity reads); the write phase models login
// (atomic two-slot writes). Results are reported as ops/sec with latency
// percentiles.
//
// Run against miniredis (default) or a real Redis:
//
//	go run ./cmd/eduauth-loadtest -devices 5000 -ops 100000
//	go run ./cmd/eduauth-loadtest -redis-addr localhost:6379
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/profblog/eduauth/identity"
	"github.com/profblog/eduauth/session"
)

func main() {
	var (
		devices     = flag.Int("devices", 10000, "number of device sessions to seed")
		concurrency = flag.Int("concurrency", 128, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "operations per phase (rehydrate + login)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
	)
	flag.Parse()

	if *devices <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "devices, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		cleanup = func() {}
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: *concurrency,
	})
	defer client.Close()

	stores := make([]*session.Store, *devices)
	fmt.Printf("seeding %d device sessions...\n", *devices)
	startSeed := time.Now()
	for i := 0; i < *devices; i++ {
		stores[i] = session.NewStore(client, fmt.Sprintf("lt:%d", i))
		if err := stores[i].SetAll(ctx, tokenFor(i), identityFor(i)); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	rehydrateStats := runRehydratePhase(ctx, stores, *ops, *concurrency)
	loginStats := runLoginPhase(ctx, stores, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("rehydrate", rehydrateStats)
	printStats("login", loginStats)
}

func tokenFor(i int) string {
	return fmt.Sprintf("header.payload-%d.signature", i)
}

func identityFor(i int) identity.Identity {
	pid := int64(i % 500)
	return identity.Identity{
		ID:          fmt.Sprintf("%d", i),
		Email:       fmt.Sprintf("user-%d@blog.edu", i),
		IsProfessor: i%2 == 0,
		ProfessorID: &pid,
	}
}

// runRehydratePhase reads both slots per op, the way a cold start does.
func runRehydratePhase(ctx context.Context, stores []*session.Store, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				store := stores[r.Intn(len(stores))]

				t0 := time.Now()
				_, errTok := store.Token(ctx)
				_, errIdent := store.Identity(ctx)
				d := time.Since(t0)

				if errTok != nil || errIdent != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

// runLoginPhase overwrites both slots per op, the way a fresh login does.
func runLoginPhase(ctx context.Context, stores []*session.Store, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(stores))

				t0 := time.Now()
				err := stores[idx].SetAll(ctx, tokenFor(idx+ops), identityFor(idx))
				d := time.Since(t0)

				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
