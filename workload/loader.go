package workload

import "ycsbgen/keycodec"

// Loader mints sequential keys across a thread's disjoint sub-range of
// [0, RecordCount).
type Loader struct {
	insertOrder keycodec.InsertOrder
	nextKey     uint64
	lastKey     uint64
}

// Loader partitions [0, RecordCount) into threadCount equal-sized chunks and
// returns the Loader for threadID's chunk. record_count/thread_count
// truncates; any remainder is left unloaded, verbatim per the original
// implementation, rather than assigned to the last thread, so that loader
// partitioning is reproducible across re-implementations.
func (w *Workload) Loader(threadCount, threadID int) *Loader {
	insertCount := w.RecordCount / uint64(threadCount)
	insertStart := insertCount * uint64(threadID)
	return &Loader{
		insertOrder: w.InsertOrder,
		nextKey:     insertStart,
		lastKey:     insertStart + insertCount,
	}
}

// NextKey returns the next sequential key in this Loader's sub-range, or
// false once the sub-range is exhausted.
func (l *Loader) NextKey() (keycodec.Key, bool) {
	if l.nextKey >= l.lastKey {
		return 0, false
	}
	key := l.nextKey
	l.nextKey++
	return keycodec.New(l.insertOrder, key), true
}
