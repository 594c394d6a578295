//go:build !linux

package SWE2D

import (
	"fmt"
)

func CountInstructions(fn func()) (count uint64, err error) {
	fn()
	err = fmt.Errorf("hardware performance counters require linux")
	return
}

func CountCycles(fn func()) (count uint64, err error) {
	fn()
	err = fmt.Errorf("hardware performance counters require linux")
	return
}
