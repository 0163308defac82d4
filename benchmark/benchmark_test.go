package benchmark

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ycsbgen/workload"
)

// memStore is an in-process Store used to exercise benchmark.Runner without
// a real cache or Redis instance.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Name() string                { return "mem" }
func (m *memStore) Init(context.Context) error  { return nil }
func (m *memStore) Close(context.Context) error { return nil }

func (m *memStore) Read(_ context.Context, key string, field uint64) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key+":"+strconv.FormatUint(field, 10)]
	return v, ok, nil
}

func (m *memStore) Update(_ context.Context, key string, field uint64, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key+":"+strconv.FormatUint(field, 10)] = value
	return nil
}

func (m *memStore) Insert(ctx context.Context, key string, field uint64, value string) error {
	return m.Update(ctx, key, field, value)
}

func (m *memStore) Scan(_ context.Context, startKey string, count uint64) ([]string, error) {
	start, err := strconv.ParseUint(startKey, 10, 64)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var values []string
	for i := uint64(0); i < count; i++ {
		if v, ok := m.data[strconv.FormatUint(start+i, 10)+":0"]; ok {
			values = append(values, v)
		}
	}
	return values, nil
}

func (m *memStore) ReadModifyWrite(ctx context.Context, key string, field uint64, value string) (string, error) {
	old, _, _ := m.Read(ctx, key, field)
	return old, m.Update(ctx, key, field, value)
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key+":0")
	return nil
}

func TestRunnerDrivesAllConfiguredOperations(t *testing.T) {
	w := workload.NewBuilder().
		ReadProportionOf(0.5).
		UpdateProportionOf(0.5).
		Fields(1).
		Records(50).
		Operations(200).
		Build()

	store := newMemStore()
	runner := NewRunner(w, store, Config{Threads: 4, Seed: 1, ValueSizeBytes: 8})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(200), result.TotalOperations)
	assert.Equal(t, int64(0), result.TotalErrors)
	assert.Greater(t, result.ReadCount, int64(0))
	assert.Greater(t, result.UpdateCount, int64(0))
	assert.Len(t, result.Latencies, 200)
}

func TestRunnerPropagatesInitError(t *testing.T) {
	w := workload.NewBuilder().Build()
	store := &failingInitStore{}
	runner := NewRunner(w, store, Config{Threads: 1})

	_, err := runner.Run(context.Background())
	require.Error(t, err)
}

type failingInitStore struct{ memStore }

func (failingInitStore) Init(context.Context) error {
	return assert.AnError
}
