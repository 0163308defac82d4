package generator

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Choice pairs a value with its selection weight.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Discrete samples one of a fixed set of values with probability
// proportional to its weight. Construction fails if every weight is zero or
// any weight is negative or NaN.
type Discrete[T any] struct {
	values     []T
	cumWeights []float64
}

// NewDiscrete builds a Discrete chooser over choices, preserving insertion
// order for tie-breaking.
func NewDiscrete[T any](choices []Choice[T]) (*Discrete[T], error) {
	if len(choices) == 0 {
		return nil, errors.New("generator: discrete chooser requires at least one choice")
	}

	values := make([]T, len(choices))
	cumWeights := make([]float64, len(choices))
	var total float64
	for i, c := range choices {
		if math.IsNaN(c.Weight) || c.Weight < 0 {
			return nil, errors.Errorf("generator: discrete weight %v is negative or NaN", c.Weight)
		}
		total += c.Weight
		values[i] = c.Value
		cumWeights[i] = total
	}
	if total <= 0 {
		return nil, errors.New("generator: discrete weights sum to zero")
	}

	return &Discrete[T]{values: values, cumWeights: cumWeights}, nil
}

// Next returns one of the configured values, sampled proportionally to its
// weight.
func (d *Discrete[T]) Next(rng *Rng) T {
	total := d.cumWeights[len(d.cumWeights)-1]
	target := rng.Float64() * total

	idx := sort.Search(len(d.cumWeights), func(i int) bool {
		return d.cumWeights[i] > target
	})
	if idx == len(d.cumWeights) {
		idx = len(d.cumWeights) - 1
	}
	return d.values[idx]
}
