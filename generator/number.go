package generator

import (
	"math"

	"github.com/pkg/errors"
)

// zipfianTheta is the skew parameter, fixed at 0.99 for comparability across
// benchmark runs; it must not be varied.
const zipfianTheta = 0.99

// Number is an integer generator: Constant, Uniform, or Zipfian.
type Number = Generator[uint64]

// constantNumber always returns the same value.
type constantNumber struct {
	value uint64
}

// NewConstant builds a Number that always returns value.
func NewConstant(value uint64) Number {
	return constantNumber{value: value}
}

func (c constantNumber) Next(*Rng) uint64 {
	return c.value
}

// uniformNumber draws uniformly from [0, count).
type uniformNumber struct {
	count uint64
}

// NewUniform builds a Number uniform over [0, count). Fails if count is zero.
func NewUniform(count uint64) (Number, error) {
	if count == 0 {
		return nil, errors.New("generator: uniform count must be positive")
	}
	return uniformNumber{count: count}, nil
}

func (u uniformNumber) Next(rng *Rng) uint64 {
	return uint64(rng.Int63n(int64(u.count)))
}

// zipfianNumber is the approximate Zipfian sampler described in "Quickly
// Generating Billion-Record Synthetic Databases" (Gray et al., SIGMOD 1994),
// with the precomputed zeta terms the YCSB family uses to avoid an O(n)
// recomputation on every draw.
type zipfianNumber struct {
	count   float64
	cutoff1 float64
	alpha   float64
	eta     float64
	zetaN   float64
}

// NewZipfian builds a Zipfian Number over [0, count) with the fixed skew
// parameter theta = 0.99. Fails if count is zero.
func NewZipfian(count uint64) (Number, error) {
	if count == 0 {
		return nil, errors.New("generator: zipfian count must be positive")
	}

	theta := zipfianTheta
	alpha := 1.0 / (1.0 - theta)
	zetaN := zeta(count, theta)
	zeta2 := zeta(2, theta)
	eta := (1.0 - math.Pow(2.0/float64(count), 1.0-theta)) / (1.0 - zeta2/zetaN)

	return &zipfianNumber{
		count:   float64(count),
		cutoff1: 1.0 + math.Pow(0.5, theta),
		alpha:   alpha,
		eta:     eta,
		zetaN:   zetaN,
	}, nil
}

func (z *zipfianNumber) Next(rng *Rng) uint64 {
	u := rng.Float64()
	uz := u * z.zetaN

	if uz < 1.0 {
		return 0
	}
	if uz < z.cutoff1 {
		return 1
	}
	return uint64(z.count * math.Pow(z.eta*(u-1.0)+1.0, z.alpha))
}

// zeta computes zeta(n, theta) = sum_{i=1..n} i^-theta from scratch.
func zeta(n uint64, theta float64) float64 {
	var sum float64
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}
