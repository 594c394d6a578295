//go:build linux

package SWE2D

import (
	perf "github.com/hodgesds/perf-utils"
)

// CountInstructions runs fn under the kernel performance counters and
// reports the retired instruction count.
func CountInstructions(fn func()) (count uint64, err error) {
	var (
		pv *perf.ProfileValue
	)
	if pv, err = perf.CPUInstructions(func() error {
		fn()
		return nil
	}); err != nil {
		return
	}
	count = pv.Value
	return
}

// CountCycles runs fn under the kernel performance counters and reports the
// consumed CPU cycle count.
func CountCycles(fn func()) (count uint64, err error) {
	var (
		pv *perf.ProfileValue
	)
	if pv, err = perf.CPUCycles(func() error {
		fn()
		return nil
	}); err != nil {
		return
	}
	count = pv.Value
	return
}
