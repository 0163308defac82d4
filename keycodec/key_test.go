package keycodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceRoundTrips(t *testing.T) {
	for _, order := range []InsertOrder{Ordered, Hashed} {
		for _, seq := range []uint64{0, 1, 42, 1 << 40, (1 << 63) - 1} {
			k := New(order, seq)
			assert.Equal(t, seq, k.Sequence(), "order=%v seq=%d", order, seq)
			assert.Equal(t, order == Hashed, k.Hashed())
		}
	}
}

func TestIDOrderedIsSequence(t *testing.T) {
	k := New(Ordered, 12345)
	assert.Equal(t, uint64(12345), k.ID())
}

func TestIDHashedIsDeterministic(t *testing.T) {
	k1 := New(Hashed, 999)
	k2 := New(Hashed, 999)
	assert.Equal(t, k1.ID(), k2.ID())
	assert.NotEqual(t, uint64(999), k1.ID())
}

func TestSameSequenceDifferentOrderAreDistinctKeys(t *testing.T) {
	a := New(Ordered, 5)
	b := New(Hashed, 5)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Sequence(), b.Sequence())
}

func TestHashUint64DistinguishesAdjacentInputs(t *testing.T) {
	h1 := HashUint64(1)
	h2 := HashUint64(2)
	assert.NotEqual(t, h1, h2)
}
