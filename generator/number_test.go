package generator

import (
	"testing"

	xrand "golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantAlwaysReturnsValue(t *testing.T) {
	n := NewConstant(42)
	rng := xrand.New(xrand.NewSource(1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, uint64(42), n.Next(rng))
	}
}

func TestNewUniformRejectsZero(t *testing.T) {
	_, err := NewUniform(0)
	require.Error(t, err)
}

func TestUniformAlwaysInRange(t *testing.T) {
	n, err := NewUniform(10)
	require.NoError(t, err)

	rng := xrand.New(xrand.NewSource(7))
	for i := 0; i < 10000; i++ {
		v := n.Next(rng)
		assert.Less(t, v, uint64(10))
	}
}

func TestNewZipfianRejectsZero(t *testing.T) {
	_, err := NewZipfian(0)
	require.Error(t, err)
}

func TestZipfianMostlyInRange(t *testing.T) {
	n, err := NewZipfian(1000)
	require.NoError(t, err)

	rng := xrand.New(xrand.NewSource(99))
	outOfRange := 0
	const draws = 100000
	for i := 0; i < draws; i++ {
		if n.Next(rng) >= 1000 {
			outOfRange++
		}
	}
	// The closed-form approximation is not guaranteed to stay in range; the
	// runner-level rejection loop handles the tail. Here we only assert the
	// overflow rate stays small.
	assert.Less(t, outOfRange, draws/100)
}

func TestZipfianIsSkewed(t *testing.T) {
	n, err := NewZipfian(10000)
	require.NoError(t, err)

	rng := xrand.New(xrand.NewSource(123))
	const draws = 100000
	counts := make(map[uint64]int)
	for i := 0; i < draws; i++ {
		v := n.Next(rng)
		if v < 10000 {
			counts[v]++
		}
	}

	type kv struct {
		key   uint64
		count int
	}
	all := make([]kv, 0, len(counts))
	for k, v := range counts {
		all = append(all, kv{k, v})
	}
	// Sort descending by count.
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[j].count > all[i].count {
				all[i], all[j] = all[j], all[i]
			}
		}
	}

	top1Percent := len(all) / 100
	if top1Percent == 0 {
		top1Percent = 1
	}
	var topSum int
	for _, e := range all[:top1Percent] {
		topSum += e.count
	}
	assert.GreaterOrEqual(t, float64(topSum)/float64(draws), 0.20)
}
