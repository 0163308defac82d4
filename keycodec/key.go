// Package keycodec packs a workload key's insert sequence and its
// insert-order flavor into a single 64-bit value, and derives the stable
// external id a store actually sees.
package keycodec

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// InsertOrder selects how a sequence maps onto the id space a store sees.
type InsertOrder int

const (
	// Ordered keys keep their sequence as the id, giving good locality
	// against the pre-load order — useful for exercising range scans.
	Ordered InsertOrder = iota
	// Hashed keys scramble their sequence with a 64-bit hash, spreading
	// them pseudorandomly across the store's keyspace.
	Hashed
)

// hashedBit marks a key as Hashed; the remaining 63 bits hold the sequence.
const hashedBit uint64 = 1 << 63

// Key is a 64-bit value encoding a 63-bit sequence and a 1-bit hashed flag.
// Two keys with the same sequence but different InsertOrder are distinct
// values.
type Key uint64

// New packs sequence under order. sequence must be a small non-negative
// integer far below 1<<63.
func New(order InsertOrder, sequence uint64) Key {
	if order == Hashed {
		return Key(sequence | hashedBit)
	}
	return Key(sequence)
}

// Sequence strips the hashed flag, returning the packed sequence.
func (k Key) Sequence() uint64 {
	return uint64(k) &^ hashedBit
}

// Hashed reports whether k was constructed with InsertOrder Hashed.
func (k Key) Hashed() bool {
	return uint64(k)&hashedBit != 0
}

// ID returns the id a store should see for this key: the hash of the
// sequence when Hashed, or the sequence itself otherwise.
func (k Key) ID() uint64 {
	if !k.Hashed() {
		return k.Sequence()
	}
	return HashUint64(k.Sequence())
}

// HashUint64 hashes a 64-bit sequence with xxhash, standing in for the
// rapid_hash family: both are non-cryptographic 64-bit hashes with strong
// avalanche, scrambling sequential insert order into a key distribution
// that looks uniformly random to the store under test.
func HashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}
