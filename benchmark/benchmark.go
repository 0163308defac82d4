package benchmark

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	xrand "golang.org/x/exp/rand"

	"ycsbgen/ack"
	"ycsbgen/generator"
	"ycsbgen/workload"
)

// Config is the harness-level configuration layered on top of the opaque
// workload.Workload: thread count, seed, and per-operation value size.
type Config struct {
	Threads        int
	Seed           uint64
	ValueSizeBytes int
}

// Runner spawns Config.Threads goroutines, each pairing its own
// workload.Loader and workload.Runner against a shared Store and a private
// *rand.Rand, and aggregates the resulting Result. Only the Acknowledged
// tracker and the Store are shared across goroutines.
type Runner struct {
	workload *workload.Workload
	acked    *ack.Acknowledged
	store    Store
	config   Config
}

// NewRunner builds a Runner. config.Threads is clamped to at least 1.
func NewRunner(w *workload.Workload, store Store, config Config) *Runner {
	if config.Threads <= 0 {
		config.Threads = 1
	}
	return &Runner{
		workload: w,
		acked:    ack.New(),
		store:    store,
		config:   config,
	}
}

// Run executes the load phase followed by the operation phase against the
// Store, then aggregates and prints a Result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log.Printf("Initializing store: %s", r.store.Name())
	if err := r.store.Init(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	defer r.store.Close(ctx)

	result := Result{StoreName: r.store.Name()}

	log.Printf("Loading %s records across %d threads...",
		humanize.Comma(int64(r.workload.RecordCount)), r.config.Threads)
	r.runLoadPhase(ctx)

	log.Printf("Running %s operations across %d threads...",
		humanize.Comma(int64(r.workload.OperationCount)), r.config.Threads)
	startTime := time.Now()
	r.runOperationPhase(ctx, &result)
	result.TotalDuration = time.Since(startTime)

	r.calculateFinalMetrics(&result)
	r.printResults(&result)

	return result, nil
}

func (r *Runner) runLoadPhase(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(r.config.Threads)
	for tid := 0; tid < r.config.Threads; tid++ {
		go func(tid int) {
			defer wg.Done()
			loader := r.workload.Loader(r.config.Threads, tid)
			value := generateValue(r.config.ValueSizeBytes)

			for {
				key, ok := loader.NextKey()
				if !ok {
					break
				}
				id := strconv.FormatUint(key.ID(), 10)
				for field := uint64(0); field < uint64(r.workload.FieldCount); field++ {
					if err := r.store.Insert(ctx, id, field, value); err != nil {
						log.Printf("load: insert %s field %d failed: %v", id, field, err)
					}
				}
			}
		}(tid)
	}
	wg.Wait()
}

func (r *Runner) runOperationPhase(ctx context.Context, result *Result) {
	opsPerThread := r.workload.OperationCount / uint64(r.config.Threads)

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(r.config.Threads)
	for tid := 0; tid < r.config.Threads; tid++ {
		go func(tid int) {
			defer wg.Done()

			wr, err := r.workload.Runner(r.acked)
			if err != nil {
				log.Printf("thread %d: failed to build runner: %v", tid, err)
				return
			}
			rng := xrand.New(xrand.NewSource(r.config.Seed + uint64(tid)))
			value := generateValue(r.config.ValueSizeBytes)

			latencies := make([]time.Duration, 0, opsPerThread)
			for i := uint64(0); i < opsPerThread; i++ {
				latencies = append(latencies, r.runOneOperation(ctx, wr, rng, value, result))
			}

			mu.Lock()
			result.Latencies = append(result.Latencies, latencies...)
			mu.Unlock()
		}(tid)
	}
	wg.Wait()

	result.TotalOperations = int64(len(result.Latencies))
}

func (r *Runner) runOneOperation(
	ctx context.Context, wr *workload.Runner, rng *generator.Rng, value string, result *Result,
) time.Duration {
	op := wr.NextOperation(rng)
	field := wr.NextField(rng)

	start := time.Now()
	var err error

	switch op {
	case workload.Read:
		key := wr.NextKeyRead(rng)
		var hit bool
		_, hit, err = r.store.Read(ctx, strconv.FormatUint(key.ID(), 10), field)
		if err == nil {
			if hit {
				atomic.AddInt64(&result.TotalHits, 1)
			} else {
				atomic.AddInt64(&result.TotalMisses, 1)
			}
		}
		atomic.AddInt64(&result.ReadCount, 1)
	case workload.Update:
		key := wr.NextKeyRead(rng)
		err = r.store.Update(ctx, strconv.FormatUint(key.ID(), 10), field, value)
		atomic.AddInt64(&result.UpdateCount, 1)
	case workload.Scan:
		key := wr.NextKeyRead(rng)
		length := wr.NextScanLength(rng)
		_, err = r.store.Scan(ctx, strconv.FormatUint(key.ID(), 10), length)
		atomic.AddInt64(&result.ScanCount, 1)
	case workload.Insert:
		key := wr.NextKeyInsert()
		err = r.store.Insert(ctx, strconv.FormatUint(key.ID(), 10), field, value)
		if err == nil {
			wr.Acknowledge(key)
		}
		atomic.AddInt64(&result.InsertCount, 1)
	case workload.ReadModifyWrite:
		key := wr.NextKeyRead(rng)
		_, err = r.store.ReadModifyWrite(ctx, strconv.FormatUint(key.ID(), 10), field, value)
		atomic.AddInt64(&result.ReadModifyWriteCount, 1)
	case workload.Delete:
		key := wr.NextKeyRead(rng)
		err = r.store.Delete(ctx, strconv.FormatUint(key.ID(), 10))
		atomic.AddInt64(&result.DeleteCount, 1)
	}

	if err != nil {
		atomic.AddInt64(&result.TotalErrors, 1)
	}

	return time.Since(start)
}

func (r *Runner) calculateFinalMetrics(result *Result) {
	if result.TotalHits+result.TotalMisses > 0 {
		result.HitRate = float64(result.TotalHits) / float64(result.TotalHits+result.TotalMisses)
	}
	if result.TotalDuration.Seconds() > 0 {
		result.OpsPerSecond = float64(result.TotalOperations) / result.TotalDuration.Seconds()
	}
}

func (r *Runner) printResults(result *Result) {
	log.Println("--- Benchmark Results ---")
	log.Printf("Store: %s", result.StoreName)
	log.Printf("Total Duration: %v", result.TotalDuration)
	log.Printf("Total Operations: %s", humanize.Comma(result.TotalOperations))
	log.Printf("Threads: %d", r.config.Threads)
	log.Printf("Ops/sec: %.2f", result.OpsPerSecond)
	log.Printf("Hit Rate: %.2f%%", result.HitRate*100)
	log.Printf("Reads: %s  Updates: %s  Scans: %s  Inserts: %s  RMWs: %s  Deletes: %s",
		humanize.Comma(result.ReadCount), humanize.Comma(result.UpdateCount),
		humanize.Comma(result.ScanCount), humanize.Comma(result.InsertCount),
		humanize.Comma(result.ReadModifyWriteCount), humanize.Comma(result.DeleteCount))
	log.Printf("Errors: %s", humanize.Comma(result.TotalErrors))
	log.Println("-------------------------")
}

func generateValue(size int) string {
	b := make([]byte, size)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
