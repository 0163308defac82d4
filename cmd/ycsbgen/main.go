// Command ycsbgen runs a YCSB-style workload against a configurable store.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"ycsbgen/benchmark"
	"ycsbgen/implementations"
	"ycsbgen/workload"
)

func main() {
	var (
		preset    = pflag.StringP("preset", "p", "A", "named workload preset: A, B, C, or D")
		threads   = pflag.IntP("threads", "t", 8, "number of worker goroutines")
		records   = pflag.Uint64P("records", "r", 10000, "number of pre-loaded records")
		ops       = pflag.Uint64P("operations", "o", 100000, "number of operations to run")
		seed      = pflag.Uint64P("seed", "s", 1, "base RNG seed")
		store     = pflag.String("store", "ristretto", "store to benchmark: ristretto or rueidis")
		redisAddr = pflag.String("redis-addr", "127.0.0.1:6379", "address of the backing Redis instance")
		valueSize = pflag.IntP("value-size", "v", 64, "bytes per value")
	)
	pflag.Parse()

	w, err := presetWorkload(*preset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	w.RecordCount = *records
	w.OperationCount = *ops

	s, err := buildStore(*store, *redisAddr, *valueSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runner := benchmark.NewRunner(w, s, benchmark.Config{
		Threads:        *threads,
		Seed:           *seed,
		ValueSizeBytes: *valueSize,
	})

	if _, err := runner.Run(context.Background()); err != nil {
		log.Fatalf("benchmark run failed: %v", err)
	}
}

func presetWorkload(name string) (*workload.Workload, error) {
	switch name {
	case "A", "a":
		return workload.PresetA(), nil
	case "B", "b":
		return workload.PresetB(), nil
	case "C", "c":
		return workload.PresetC(), nil
	case "D", "d":
		return workload.PresetD(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q: expected A, B, C, or D", name)
	}
}

func buildStore(name, redisAddr string, valueSize int) (benchmark.Store, error) {
	// Budget the client-side/L1 cache for roughly a 1GB working set.
	estimatedKeyCount := (1 << 30) / (valueSize + 50)

	switch name {
	case "ristretto":
		return implementations.NewRistrettoStore(1<<30, redisAddr), nil
	case "rueidis":
		return implementations.NewRueidisStore(redisAddr, estimatedKeyCount), nil
	default:
		return nil, fmt.Errorf("unknown store %q: expected ristretto or rueidis", name)
	}
}
