package SWE2D

import (
	"math"
	"sync"

	"github.com/notargets/goswe/utils"
)

/*
RHS evaluates the semi discrete right side of
	dQ/dt = -div(F,G) + S
into RHSQ for the given padded conservative state: source terms, then the
four reconstruction stages, then face fluxes and the per cell flux
divergence. Result entries smaller than tol in magnitude are snapped to zero
so a lake at rest stays exactly at rest. The returned maxDt is the largest
stable step for the current state, min(dx/(4 amax), dy/(4 bmax)).
*/
func (sw *SWE2D) RHS(Q [3]utils.Matrix) (maxDt float64) {
	sw.ComputeSources(Q)
	sw.ReconstructFaces(Q)
	amax, bmax := sw.ComputeFluxes()
	sw.divergence()
	maxDt = math.Min(0.25*sw.Grid.Dx/amax, 0.25*sw.Grid.Dy/bmax)
	return
}

func (sw *SWE2D) divergence() {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.divergenceRows(jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) divergenceRows(jmin, jmax int) {
	var (
		Nx   = sw.Grid.Nx
		ncf  = Nx + 1
		oodx = 1. / sw.Grid.Dx
		oody = 1. / sw.Grid.Dy
	)
	for n := 0; n < 3; n++ {
		var (
			xfD  = sw.XFaces.Flux[n].DataP
			yfD  = sw.YFaces.Flux[n].DataP
			srcD = sw.SRC[n].DataP
			rhsD = sw.RHSQ[n].DataP
		)
		for j := jmin; j < jmax; j++ {
			for i := 0; i < Nx; i++ {
				idx := j*Nx + i
				r := (xfD[j*ncf+i]-xfD[j*ncf+i+1])*oodx +
					(yfD[idx]-yfD[idx+Nx])*oody + srcD[idx]
				if r > -sw.Tol && r < sw.Tol {
					r = 0
				}
				rhsD[idx] = r
			}
		}
	}
}
