package ack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextWriteDistinctAcrossThreads(t *testing.T) {
	a := New()

	const threads = 8
	const perThread = 1000

	var wg sync.WaitGroup
	results := make([][]uint64, threads)
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			indices := make([]uint64, perThread)
			for i := 0; i < perThread; i++ {
				indices[i] = a.NextWrite()
			}
			results[t] = indices
		}(t)
	}
	wg.Wait()

	seen := make(map[uint64]bool, threads*perThread)
	for _, indices := range results {
		for _, idx := range indices {
			require.False(t, seen[idx], "index %d returned twice", idx)
			seen[idx] = true
		}
	}
	require.Len(t, seen, threads*perThread)
	for i := uint64(0); i < threads*perThread; i++ {
		require.True(t, seen[i], "missing index %d", i)
	}

	// Acknowledge in reverse per-thread order.
	var ackWg sync.WaitGroup
	for t := 0; t < threads; t++ {
		ackWg.Add(1)
		go func(t int) {
			defer ackWg.Done()
			indices := results[t]
			for i := len(indices) - 1; i >= 0; i-- {
				a.Acknowledge(indices[i])
			}
		}(t)
	}
	ackWg.Wait()

	assert.Equal(t, uint64(threads*perThread), a.NextRead())
}

func TestPartialAcknowledgement(t *testing.T) {
	a := New()
	for _, i := range []uint64{0, 1, 2, 4, 5} {
		a.Acknowledge(i)
	}
	assert.Equal(t, uint64(3), a.NextRead())

	a.Acknowledge(3)
	assert.Equal(t, uint64(6), a.NextRead())
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	a := New()
	a.Acknowledge(5)
	a.Acknowledge(5)
	assert.Equal(t, uint64(0), a.NextRead())

	for i := uint64(0); i < 6; i++ {
		a.Acknowledge(i)
	}
	before := a.NextRead()
	a.Acknowledge(3)
	assert.Equal(t, before, a.NextRead())
}

func TestEmptyTrackerReadsZero(t *testing.T) {
	a := New()
	assert.Equal(t, uint64(0), a.NextRead())
	assert.Equal(t, uint64(0), a.Max())
}

func TestNextWriteIsMonotonicSingleThreaded(t *testing.T) {
	a := New()
	var last uint64
	for i := 0; i < 1000; i++ {
		v := a.NextWrite()
		if i > 0 {
			assert.Greater(t, v, last)
		}
		last = v
	}
}
