// Package ack implements a lock-free tracker for the acknowledged prefix of
// a monotonically growing stream of insert indices: "what is the largest M
// such that every insert with index in [0, M) has been durably acknowledged
// by the store?"
package ack

import (
	"math/bits"
	"sync/atomic"
)

// CapacityWords is the number of 64-bit words backing the bitmap, giving
// CapacityBits = CapacityWords * 64 pending insert indices before the
// tracker is exhausted. A construction-time parameter would need a slice in
// place of the array below and would give up the single static allocation
// this type is built around; the fixed size is a deliberate tradeoff.
const (
	CapacityWords = 1 << 20
	CapacityBits  = CapacityWords * 64
)

// Acknowledged is a fixed-capacity concurrent bitmap: one bit per insert
// index, plus two atomic counters — next (monotonic index assignment) and
// hint (a memoized lower bound for the first-unacknowledged-bit scan).
//
// The tracker relies only on each load, store and compare-and-swap being
// atomic, not on any ordering between them. That is safe because Acknowledged only
// ever reports a non-decreasing lower bound on the acknowledged prefix;
// callers that need a happens-before relationship with whatever payload an
// index refers to must establish it themselves, e.g. by publishing the
// payload before calling Acknowledge.
//
// The zero value is not usable; construct with New.
type Acknowledged struct {
	next  atomic.Uint64
	hint  atomic.Uint64
	words [CapacityWords]uint64
}

// New allocates an Acknowledged tracker. This is a single ~8 MiB allocation
// (CapacityWords uint64 words, accessed atomically) and is intended to be called once per
// benchmark run and shared by reference across worker goroutines.
func New() *Acknowledged {
	return &Acknowledged{}
}

// NextWrite mints a fresh, monotonically increasing insert index. It is the
// only synchronization a caller needs between minting an index and
// eventually calling Acknowledge with it.
func (a *Acknowledged) NextWrite() uint64 {
	return a.next.Add(1) - 1
}

// Acknowledge marks index as durably acknowledged and advances hint, the
// memoized floor for the next NextRead scan, if possible. Acknowledging the
// same index more than once is a no-op past the first call.
func (a *Acknowledged) Acknowledge(index uint64) {
	word := index / 64
	bit := index % 64
	if word >= CapacityWords {
		panic("ack: index exceeds Acknowledged capacity")
	}

	mask := uint64(1) << bit
	for {
		old := atomic.LoadUint64(&a.words[word])
		updated := old | mask
		if updated == old || atomic.CompareAndSwapUint64(&a.words[word], old, updated) {
			break
		}
	}

	newHint, _ := a.frontier()
	for {
		cur := a.hint.Load()
		if newHint <= cur || a.hint.CompareAndSwap(cur, newHint) {
			return
		}
	}
}

// NextRead returns the largest M such that every index in [0, M) has been
// acknowledged.
func (a *Acknowledged) NextRead() uint64 {
	i, j := a.frontier()
	return i*64 + j
}

// Max is an alias of NextRead.
func (a *Acknowledged) Max() uint64 {
	return a.NextRead()
}

// frontier scans words from hint upward for the first word that is not all
// ones, returning its index and the index of its first zero bit. hint
// amortizes repeated scans to O(words advanced since the last call).
func (a *Acknowledged) frontier() (wordIndex, bitIndex uint64) {
	for i := a.hint.Load(); i < CapacityWords; i++ {
		word := atomic.LoadUint64(&a.words[i])
		if word == ^uint64(0) {
			continue
		}
		return i, uint64(bits.TrailingZeros64(^word))
	}
	panic("ack: acknowledgement array exhausted")
}
