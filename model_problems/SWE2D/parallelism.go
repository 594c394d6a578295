package SWE2D

import (
	"runtime"

	"github.com/notargets/goswe/utils"
)

/*
SetParallelDegree partitions the interior cell rows and the two wider row
extents used by the y direction kernels across the requested number of go
routines. A zero ProcLimit takes all available processors.
*/
func (sw *SWE2D) SetParallelDegree(ProcLimit int) {
	var (
		Ny = sw.Grid.Ny
	)
	if ProcLimit != 0 {
		sw.ParallelDegree = ProcLimit
	} else {
		sw.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	if sw.ParallelDegree > Ny {
		sw.ParallelDegree = 1
	}
	sw.Partitions = utils.NewPartitionMap(sw.ParallelDegree, Ny)
	sw.PartitionsYFace = utils.NewPartitionMap(sw.ParallelDegree, Ny+1)
	sw.PartitionsYSlope = utils.NewPartitionMap(sw.ParallelDegree, Ny+2)
}
