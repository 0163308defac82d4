// Package benchmark is the harness that drives workload.Runner/workload.Loader
// pairs against a concrete Store and aggregates the resulting statistics.
// The storage engine under test and the statistics it produces are handled
// entirely by this separate harness layer, decoupled from the key-selection,
// acknowledgement, and Zipfian sampling core in the workload package.
package benchmark

import (
	"context"
	"time"
)

// Store is the collaborator interface a harness issues concrete operations
// against. field addresses one of a record's FieldCount fields; key is the
// store-visible id a keycodec.Key.ID() produces.
type Store interface {
	// Name identifies the store for reporting.
	Name() string
	// Init prepares the store for the benchmark (clients, listeners, ...).
	Init(ctx context.Context) error
	// Close releases any resources Init acquired.
	Close(ctx context.Context) error

	Read(ctx context.Context, key string, field uint64) (value string, hit bool, err error)
	Update(ctx context.Context, key string, field uint64, value string) error
	Insert(ctx context.Context, key string, field uint64, value string) error
	// Scan reads up to count records starting at startKey, in id order.
	Scan(ctx context.Context, startKey string, count uint64) (values []string, err error)
	ReadModifyWrite(ctx context.Context, key string, field uint64, value string) (old string, err error)
	Delete(ctx context.Context, key string) error
}

// Result holds the aggregate statistics from a single benchmark run: a
// hit/miss/error tally alongside a per-operation breakdown across all six
// operation kinds.
type Result struct {
	StoreName       string
	TotalOperations int64

	ReadCount            int64
	UpdateCount          int64
	ScanCount            int64
	InsertCount          int64
	ReadModifyWriteCount int64
	DeleteCount          int64

	TotalHits   int64
	TotalMisses int64
	TotalErrors int64

	TotalDuration time.Duration
	HitRate       float64
	OpsPerSecond  float64
	Latencies     []time.Duration
}
