// Package workload implements the key-selection state machine at the heart
// of the driver: a Workload configuration record, a per-thread Loader for
// the initial data load, and a per-thread Runner that samples operations,
// keys, fields, and scan lengths for the run phase.
package workload

import "ycsbgen/keycodec"

// RequestDistribution selects how a Runner samples keys for read-class
// operations.
type RequestDistribution int

const (
	Uniform RequestDistribution = iota
	Zipfian
	Latest
)

// ScanLengthDistribution selects how a Runner samples the length of a Scan.
type ScanLengthDistribution int

const (
	ScanUniform ScanLengthDistribution = iota
	ScanZipfian
)

// Workload is an immutable workload configuration. Construct one with
// NewBuilder or one of the named presets.
type Workload struct {
	InsertOrder    keycodec.InsertOrder
	FieldCount     int
	RecordCount    uint64
	OperationCount uint64
	ReadAllFields  bool

	ReadProportion            float64
	UpdateProportion          float64
	ScanProportion            float64
	InsertProportion          float64
	ReadModifyWriteProportion float64
	DeleteProportion          float64

	RequestDistribution RequestDistribution

	MinScanLength          uint64
	MaxScanLength          uint64
	ScanLengthDistribution ScanLengthDistribution
}

// Builder assembles a Workload field by field, filling in YCSB-standard
// defaults for anything left unset. Chain calls fluently:
// NewBuilder().ReadProportionOf(0.5).Build().
type Builder struct {
	w Workload
}

// NewBuilder returns a Builder pre-populated with the YCSB-standard
// defaults: Hashed insert order, field_count 10, record_count 1000,
// operation_count 1000, read_all_fields true, 95/5 read/update split,
// Zipfian requests.
func NewBuilder() *Builder {
	return &Builder{w: Workload{
		InsertOrder:            keycodec.Hashed,
		FieldCount:             10,
		RecordCount:            1000,
		OperationCount:         1000,
		ReadAllFields:          true,
		ReadProportion:         0.95,
		UpdateProportion:       0.05,
		RequestDistribution:    Zipfian,
		MinScanLength:          1,
		MaxScanLength:          1000,
		ScanLengthDistribution: ScanUniform,
	}}
}

func (b *Builder) InsertOrderOf(order keycodec.InsertOrder) *Builder {
	b.w.InsertOrder = order
	return b
}

func (b *Builder) Fields(count int) *Builder {
	b.w.FieldCount = count
	return b
}

func (b *Builder) Records(count uint64) *Builder {
	b.w.RecordCount = count
	return b
}

func (b *Builder) Operations(count uint64) *Builder {
	b.w.OperationCount = count
	return b
}

func (b *Builder) ReadAllFieldsOf(v bool) *Builder {
	b.w.ReadAllFields = v
	return b
}

func (b *Builder) ReadProportionOf(p float64) *Builder {
	b.w.ReadProportion = p
	return b
}

func (b *Builder) UpdateProportionOf(p float64) *Builder {
	b.w.UpdateProportion = p
	return b
}

func (b *Builder) ScanProportionOf(p float64) *Builder {
	b.w.ScanProportion = p
	return b
}

func (b *Builder) InsertProportionOf(p float64) *Builder {
	b.w.InsertProportion = p
	return b
}

func (b *Builder) ReadModifyWriteProportionOf(p float64) *Builder {
	b.w.ReadModifyWriteProportion = p
	return b
}

func (b *Builder) DeleteProportionOf(p float64) *Builder {
	b.w.DeleteProportion = p
	return b
}

func (b *Builder) RequestDistributionOf(d RequestDistribution) *Builder {
	b.w.RequestDistribution = d
	return b
}

func (b *Builder) ScanLengthRange(min, max uint64) *Builder {
	b.w.MinScanLength = min
	b.w.MaxScanLength = max
	return b
}

func (b *Builder) ScanLengthDistributionOf(d ScanLengthDistribution) *Builder {
	b.w.ScanLengthDistribution = d
	return b
}

// Build returns the assembled Workload. Validation of the proportions,
// field count, and scan bounds is deferred to Runner, matching the original
// implementation's lazy construction-time checks.
func (b *Builder) Build() *Workload {
	w := b.w
	return &w
}

// PresetA is 50% read / 50% update, Zipfian requests.
func PresetA() *Workload {
	return NewBuilder().
		ReadProportionOf(0.50).
		UpdateProportionOf(0.50).
		Build()
}

// PresetB is 95% read / 5% update, Zipfian requests.
func PresetB() *Workload {
	return NewBuilder().
		ReadProportionOf(0.95).
		UpdateProportionOf(0.05).
		Build()
}

// PresetC is 100% read, Zipfian requests.
func PresetC() *Workload {
	return NewBuilder().
		ReadProportionOf(1.0).
		UpdateProportionOf(0.0).
		Build()
}

// PresetD is 95% read / 5% insert, Latest requests.
func PresetD() *Workload {
	return NewBuilder().
		ReadProportionOf(0.95).
		UpdateProportionOf(0.0).
		InsertProportionOf(0.05).
		RequestDistributionOf(Latest).
		Build()
}
