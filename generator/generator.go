// Package generator provides the small integer and categorical samplers
// that the workload package composes into operation, key, field, and
// scan-length selection.
package generator

import xrand "golang.org/x/exp/rand"

// Rng is the random source every generator draws from. Each worker thread
// owns a private *xrand.Rand — generators never touch a shared or global
// source.
type Rng = xrand.Rand

// Generator produces a stream of values of type T from an Rng.
type Generator[T any] interface {
	Next(rng *Rng) T
}
