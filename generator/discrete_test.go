package generator

import (
	"testing"

	xrand "golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscreteRejectsAllZeroWeights(t *testing.T) {
	_, err := NewDiscrete([]Choice[int]{
		{Value: 1, Weight: 0},
		{Value: 2, Weight: 0},
	})
	require.Error(t, err)
}

func TestNewDiscreteRejectsNegativeWeight(t *testing.T) {
	_, err := NewDiscrete([]Choice[int]{
		{Value: 1, Weight: -0.5},
		{Value: 2, Weight: 1},
	})
	require.Error(t, err)
}

func TestNewDiscreteRejectsEmpty(t *testing.T) {
	_, err := NewDiscrete([]Choice[int]{})
	require.Error(t, err)
}

func TestDiscreteConvergesToWeightRatios(t *testing.T) {
	d, err := NewDiscrete([]Choice[string]{
		{Value: "a", Weight: 1},
		{Value: "b", Weight: 3},
	})
	require.NoError(t, err)

	rng := xrand.New(xrand.NewSource(42))
	const n = 100000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[d.Next(rng)]++
	}

	ratio := float64(counts["b"]) / float64(counts["a"])
	assert.InDelta(t, 3.0, ratio, 0.3)
}

func TestDiscreteSingleChoiceAlwaysReturnsIt(t *testing.T) {
	d, err := NewDiscrete([]Choice[int]{{Value: 7, Weight: 1}})
	require.NoError(t, err)

	rng := xrand.New(xrand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 7, d.Next(rng))
	}
}
