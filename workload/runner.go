package workload

import (
	"ycsbgen/ack"
	"ycsbgen/generator"
	"ycsbgen/keycodec"
)

// nextFieldLengthPlaceholder is a known rough edge: field-length sizing is
// owned by the surrounding harness, and this is a placeholder until a real
// distribution is specified.
const nextFieldLengthPlaceholder = 100

// Runner drives operation, key, field, and scan-length selection for one
// worker thread. It borrows the Workload it was built from and the shared
// Acknowledged tracker for its entire lifetime.
type Runner struct {
	workload *Workload
	acked    *ack.Acknowledged

	operationChooser  *generator.Discrete[Operation]
	keysTotal         uint64
	keyChooser        generator.Number
	fieldChooser      generator.Number
	scanLengthChooser generator.Number
}

// Runner builds the per-thread Runner for w, wiring its categorical and
// numeric choosers. It fails if the operation proportions are all zero or
// negative/NaN, if FieldCount is zero, or if MaxScanLength < MinScanLength —
// these are all construction-time misconfigurations that should be fatal
// rather than silently producing a Runner that can never sample anything.
func (w *Workload) Runner(acked *ack.Acknowledged) (*Runner, error) {
	operationChooser, err := generator.NewDiscrete([]generator.Choice[Operation]{
		{Value: Read, Weight: w.ReadProportion},
		{Value: Update, Weight: w.UpdateProportion},
		{Value: Scan, Weight: w.ScanProportion},
		{Value: Insert, Weight: w.InsertProportion},
		{Value: ReadModifyWrite, Weight: w.ReadModifyWriteProportion},
		{Value: Delete, Weight: w.DeleteProportion},
	})
	if err != nil {
		return nil, err
	}

	keyCountNew := uint64(w.InsertProportion * float64(w.OperationCount) * 2.0)
	keysTotal := w.RecordCount + keyCountNew

	var keyChooser generator.Number
	switch w.RequestDistribution {
	case Latest, Zipfian:
		keyChooser, err = generator.NewZipfian(keysTotal)
	default:
		keyChooser, err = generator.NewUniform(keysTotal)
	}
	if err != nil {
		return nil, err
	}

	fieldChooser, err := generator.NewUniform(uint64(w.FieldCount))
	if err != nil {
		return nil, err
	}

	if w.MaxScanLength < w.MinScanLength {
		return nil, errMaxScanLengthBelowMin(w.MaxScanLength, w.MinScanLength)
	}
	scanLengthCount := w.MaxScanLength - w.MinScanLength + 1
	var scanLengthChooser generator.Number
	if w.ScanLengthDistribution == ScanZipfian {
		scanLengthChooser, err = generator.NewZipfian(scanLengthCount)
	} else {
		scanLengthChooser, err = generator.NewUniform(scanLengthCount)
	}
	if err != nil {
		return nil, err
	}

	return &Runner{
		workload:          w,
		acked:             acked,
		operationChooser:  operationChooser,
		keysTotal:         keysTotal,
		keyChooser:        keyChooser,
		fieldChooser:      fieldChooser,
		scanLengthChooser: scanLengthChooser,
	}, nil
}

// NextOperation samples the next Operation from the configured proportions.
func (r *Runner) NextOperation(rng *generator.Rng) Operation {
	return r.operationChooser.Next(rng)
}

// FieldCount returns the workload's field count.
func (r *Runner) FieldCount() int {
	return r.workload.FieldCount
}

// NextScanLength samples a scan length in [MinScanLength, MaxScanLength].
func (r *Runner) NextScanLength(rng *generator.Rng) uint64 {
	return r.workload.MinScanLength + r.scanLengthChooser.Next(rng)
}

// NextKeyInsert mints a fresh insert key by reserving a new Acknowledged
// index. The returned key's sequence lies in the dynamic insert region,
// record_count + index.
func (r *Runner) NextKeyInsert() keycodec.Key {
	index := r.acked.NextWrite()
	return keycodec.New(r.workload.InsertOrder, r.workload.RecordCount+index)
}

// NextKeyRead samples a key from the live universe — the pre-loaded records
// plus everything acknowledged as inserted so far — under the configured
// request distribution.
func (r *Runner) NextKeyRead(rng *generator.Rng) keycodec.Key {
	max := r.workload.RecordCount + r.acked.NextRead() - 1

	for {
		var candidate uint64
		switch r.workload.RequestDistribution {
		case Latest:
			offset := r.keyChooser.Next(rng)
			if offset > max {
				continue
			}
			candidate = max - offset
		case Zipfian:
			z := r.keyChooser.Next(rng)
			candidate = keycodec.HashUint64(z) % r.keysTotal
		default: // Uniform
			candidate = r.keyChooser.Next(rng)
		}

		if candidate <= max {
			return keycodec.New(r.workload.InsertOrder, candidate)
		}
	}
}

// NextField samples a uniform field index in [0, FieldCount).
func (r *Runner) NextField(rng *generator.Rng) uint64 {
	return r.fieldChooser.Next(rng)
}

// Acknowledge reports that key's insert has been durably applied. Keys from
// the pre-loaded region (sequence < RecordCount) are implicitly
// acknowledged and ignored here.
func (r *Runner) Acknowledge(key keycodec.Key) {
	seq := key.Sequence()
	if seq < r.workload.RecordCount {
		return
	}
	r.acked.Acknowledge(seq - r.workload.RecordCount)
}

// NextFieldLength returns the rough-edge placeholder field length; see
// nextFieldLengthPlaceholder.
func (r *Runner) NextFieldLength(*generator.Rng) uint64 {
	return nextFieldLengthPlaceholder
}
