package workload

import "github.com/pkg/errors"

func errMaxScanLengthBelowMin(max, min uint64) error {
	return errors.Errorf("workload: max scan length %d is below min scan length %d", max, min)
}
