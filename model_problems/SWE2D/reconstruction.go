package SWE2D

import (
	"math"
	"sync"

	"github.com/notargets/goswe/utils"
)

/*
	Face reconstruction proceeds in four stages, each consuming the previous
	stage's output:
		1) limited slopes per cell, per direction
		2) extrapolation of the conservative state to both sides of every face
		3) depth extraction and the wet/dry positivity fix
		4) velocity recovery and recombination of the conservative face state
	The conservative input array is read only throughout. Stage 3 redistributes
	negative face depths against the cell center depth so the pair of interior
	facing depths of a corrected cell still averages to the center depth.
*/
func (sw *SWE2D) ReconstructFaces(Q [3]utils.Matrix) {
	sw.ComputeSlopes(Q)
	sw.ExtrapolateFaces(Q)
	sw.CorrectDepths(Q)
	sw.RecombineFaces(Q)
}

/*
limitedSlope returns half the limited variation of the center cell given three
consecutive cell averages s1, s2, s3 along one direction, using the
generalized minmod limiter. Theta in [1,2] trades dissipation against
steepness, 1 is classic minmod. A forward difference at or below tol in
magnitude is treated as locally flat and yields a zero slope.
*/
func limitedSlope(s1, s2, s3, theta, tol float64) (slope float64) {
	var (
		d = s3 - s2
	)
	if math.Abs(d) <= tol {
		return
	}
	r := (s2 - s1) / d
	slope = math.Min(r*theta, 0.5*(1.+r))
	slope = math.Min(slope, theta)
	slope = math.Max(slope, 0.)
	slope *= 0.5 * d
	return
}

// ComputeSlopes fills SlopeX and SlopeY from the padded conservative state.
// Slopes are produced for the interior cells plus one ghost cell on each
// side, the extent needed to extrapolate every face including the boundary.
func (sw *SWE2D) ComputeSlopes(Q [3]utils.Matrix) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.slopeRowsX(Q, jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			sjmin, sjmax := sw.PartitionsYSlope.GetBucketRange(np)
			sw.slopeRowsY(Q, sjmin, sjmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) slopeRowsX(Q [3]utils.Matrix, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		ncs = Nx + 2
	)
	for n := 0; n < 3; n++ {
		qD, sD := Q[n].DataP, sw.SlopeX[n].DataP
		for j := jmin; j < jmax; j++ {
			qRow := qD[(j+2)*NxP:]
			sRow := sD[j*ncs:]
			for si := 0; si < ncs; si++ {
				pc := si + 1
				sRow[si] = limitedSlope(qRow[pc-1], qRow[pc], qRow[pc+1], sw.Theta, sw.Tol)
			}
		}
	}
}

func (sw *SWE2D) slopeRowsY(Q [3]utils.Matrix, sjmin, sjmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
	)
	for n := 0; n < 3; n++ {
		qD, sD := Q[n].DataP, sw.SlopeY[n].DataP
		for sj := sjmin; sj < sjmax; sj++ {
			pr := sj + 1
			for i := 0; i < Nx; i++ {
				pc := i + 2
				sD[sj*Nx+i] = limitedSlope(qD[(pr-1)*NxP+pc], qD[pr*NxP+pc], qD[(pr+1)*NxP+pc],
					sw.Theta, sw.Tol)
			}
		}
	}
}

// ExtrapolateFaces produces the one sided conservative values at every face.
// The minus side of a face extends the cell below/left of it upward, the plus
// side extends the cell above/right of it downward.
func (sw *SWE2D) ExtrapolateFaces(Q [3]utils.Matrix) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.extrapRowsX(Q, jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			fjmin, fjmax := sw.PartitionsYFace.GetBucketRange(np)
			sw.extrapRowsY(Q, fjmin, fjmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) extrapRowsX(Q [3]utils.Matrix, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		ncf = Nx + 1
		ncs = Nx + 2
	)
	for n := 0; n < 3; n++ {
		qD, sD := Q[n].DataP, sw.SlopeX[n].DataP
		qmD, qpD := sw.XFaces.Minus.Q[n].DataP, sw.XFaces.Plus.Q[n].DataP
		for j := jmin; j < jmax; j++ {
			qRow := qD[(j+2)*NxP:]
			sRow := sD[j*ncs:]
			for fi := 0; fi < ncf; fi++ {
				qmD[j*ncf+fi] = qRow[fi+1] + sRow[fi]
				qpD[j*ncf+fi] = qRow[fi+2] - sRow[fi+1]
			}
		}
	}
}

func (sw *SWE2D) extrapRowsY(Q [3]utils.Matrix, fjmin, fjmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
	)
	for n := 0; n < 3; n++ {
		qD, sD := Q[n].DataP, sw.SlopeY[n].DataP
		qmD, qpD := sw.YFaces.Minus.Q[n].DataP, sw.YFaces.Plus.Q[n].DataP
		for fj := fjmin; fj < fjmax; fj++ {
			for i := 0; i < Nx; i++ {
				pc := i + 2
				qmD[fj*Nx+i] = qD[(fj+1)*NxP+pc] + sD[fj*Nx+i]
				qpD[fj*Nx+i] = qD[(fj+2)*NxP+pc] - sD[(fj+1)*Nx+i]
			}
		}
	}
}

/*
CorrectDepths extracts the water depth at cell centers and at all four face
arrays, then repairs negative face depths. For each cell, the pair of face
depths approached from inside the cell is redistributed so a negative member
is zeroed while the other takes twice the center depth, keeping the pair
average equal to the center depth. When both members are negative both are
zeroed, which forfeits that balance in an already dry cell. The outermost
domain faces have no owning cell outside and are clamped to zero without
compensation. Depths below tol are snapped to exactly zero afterward.
*/
func (sw *SWE2D) CorrectDepths(Q [3]utils.Matrix) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.centerDepthRows(Q, jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.faceDepthRowsX(jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			fjmin, fjmax := sw.PartitionsYFace.GetBucketRange(np)
			sw.faceDepthRowsY(fjmin, fjmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.fixDepthPairsX(jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.fixDepthPairsY(jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	sw.clampBoundaryFacesY()
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.snapDepthRowsX(jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			fjmin, fjmax := sw.PartitionsYFace.GetBucketRange(np)
			sw.snapDepthRowsY(fjmin, fjmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) centerDepthRows(Q [3]utils.Matrix, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		qD  = Q[0].DataP
		bD  = sw.Topo.Centers.DataP
		hD  = sw.H.DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			hD[j*Nx+i] = qD[(j+2)*NxP+i+2] - bD[j*Nx+i]
		}
	}
}

func (sw *SWE2D) faceDepthRowsX(jmin, jmax int) {
	var (
		ncf = sw.Grid.Nx + 1
		bD  = sw.Topo.XFcenters.DataP
	)
	for _, fs := range []*FaceSide{&sw.XFaces.Minus, &sw.XFaces.Plus} {
		wD, hD := fs.Q[0].DataP, fs.H.DataP
		for i := jmin * ncf; i < jmax*ncf; i++ {
			hD[i] = wD[i] - bD[i]
		}
	}
}

func (sw *SWE2D) faceDepthRowsY(fjmin, fjmax int) {
	var (
		Nx = sw.Grid.Nx
		bD = sw.Topo.YFcenters.DataP
	)
	for _, fs := range []*FaceSide{&sw.YFaces.Minus, &sw.YFaces.Plus} {
		wD, hD := fs.Q[0].DataP, fs.H.DataP
		for i := fjmin * Nx; i < fjmax*Nx; i++ {
			hD[i] = wD[i] - bD[i]
		}
	}
}

func (sw *SWE2D) fixDepthPairsX(jmin, jmax int) {
	var (
		Nx     = sw.Grid.Nx
		ncf    = Nx + 1
		hD     = sw.H.DataP
		plusD  = sw.XFaces.Plus.H.DataP
		minusD = sw.XFaces.Minus.H.DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			var (
				hW = plusD[j*ncf+i]    // west face of the cell, approached from inside
				hE = minusD[j*ncf+i+1] // east face of the cell, approached from inside
				hc = hD[j*Nx+i]
			)
			switch {
			case hW < 0 && hE < 0:
				hW, hE = 0, 0
			case hW < 0:
				hW, hE = 0, 2*hc
			case hE < 0:
				hW, hE = 2*hc, 0
			}
			plusD[j*ncf+i], minusD[j*ncf+i+1] = hW, hE
		}
		// Domain boundary faces, no owning cell on the outside
		if minusD[j*ncf] < 0 {
			minusD[j*ncf] = 0
		}
		if plusD[j*ncf+Nx] < 0 {
			plusD[j*ncf+Nx] = 0
		}
	}
}

// fixDepthPairsY buckets by cell row. A cell row j writes the plus side of
// face row j and the minus side of face row j+1, so adjacent buckets never
// touch the same face entries.
func (sw *SWE2D) fixDepthPairsY(jmin, jmax int) {
	var (
		Nx     = sw.Grid.Nx
		hD     = sw.H.DataP
		plusD  = sw.YFaces.Plus.H.DataP
		minusD = sw.YFaces.Minus.H.DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			var (
				hS = plusD[j*Nx+i]      // south face of the cell, approached from inside
				hN = minusD[(j+1)*Nx+i] // north face of the cell, approached from inside
				hc = hD[j*Nx+i]
			)
			switch {
			case hS < 0 && hN < 0:
				hS, hN = 0, 0
			case hS < 0:
				hS, hN = 0, 2*hc
			case hN < 0:
				hS, hN = 2*hc, 0
			}
			plusD[j*Nx+i], minusD[(j+1)*Nx+i] = hS, hN
		}
	}
}

func (sw *SWE2D) clampBoundaryFacesY() {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		minusD = sw.YFaces.Minus.H.DataP
		plusD  = sw.YFaces.Plus.H.DataP
	)
	for i := 0; i < Nx; i++ {
		if minusD[i] < 0 {
			minusD[i] = 0
		}
		if plusD[Ny*Nx+i] < 0 {
			plusD[Ny*Nx+i] = 0
		}
	}
}

func (sw *SWE2D) snapDepthRowsX(jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		ncf = Nx + 1
		hD  = sw.H.DataP
	)
	for i := jmin * Nx; i < jmax*Nx; i++ {
		if hD[i] < sw.Tol {
			hD[i] = 0
		}
	}
	for _, fs := range []*FaceSide{&sw.XFaces.Minus, &sw.XFaces.Plus} {
		fD := fs.H.DataP
		for i := jmin * ncf; i < jmax*ncf; i++ {
			if fD[i] < sw.Tol {
				fD[i] = 0
			}
		}
	}
}

func (sw *SWE2D) snapDepthRowsY(fjmin, fjmax int) {
	var (
		Nx = sw.Grid.Nx
	)
	for _, fs := range []*FaceSide{&sw.YFaces.Minus, &sw.YFaces.Plus} {
		fD := fs.H.DataP
		for i := fjmin * Nx; i < fjmax*Nx; i++ {
			if fD[i] < sw.Tol {
				fD[i] = 0
			}
		}
	}
}

/*
RecombineFaces recovers velocity from the corrected depth, forcing exactly
zero velocity below the dry tolerance, then reassembles the conservative face
state from depth, velocity and topography. The reassembly reestablishes
w = h + b and momentum = h * velocity at every face after the depth fix, so
the face state handed to the flux stage is internally consistent. Center
velocities are refreshed the same way for the source terms and diagnostics.
*/
func (sw *SWE2D) RecombineFaces(Q [3]utils.Matrix) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(3)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.centerVelocityRows(Q, jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			ncf := sw.Grid.Nx + 1
			recombineSide(&sw.XFaces.Minus, sw.Topo.XFcenters.DataP, jmin*ncf, jmax*ncf, sw.DryTol)
			recombineSide(&sw.XFaces.Plus, sw.Topo.XFcenters.DataP, jmin*ncf, jmax*ncf, sw.DryTol)
			wg.Done()
		}(np)
		go func(np int) {
			fjmin, fjmax := sw.PartitionsYFace.GetBucketRange(np)
			Nx := sw.Grid.Nx
			recombineSide(&sw.YFaces.Minus, sw.Topo.YFcenters.DataP, fjmin*Nx, fjmax*Nx, sw.DryTol)
			recombineSide(&sw.YFaces.Plus, sw.Topo.YFcenters.DataP, fjmin*Nx, fjmax*Nx, sw.DryTol)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) centerVelocityRows(Q [3]utils.Matrix, jmin, jmax int) {
	var (
		Nx       = sw.Grid.Nx
		NxP      = Nx + 4
		huD, hvD = Q[1].DataP, Q[2].DataP
		hD       = sw.H.DataP
		uD, vD   = sw.U.DataP, sw.V.DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			var (
				idx = j*Nx + i
				h   = hD[idx]
			)
			if h < sw.DryTol {
				uD[idx], vD[idx] = 0, 0
				continue
			}
			uD[idx] = huD[(j+2)*NxP+i+2] / h
			vD[idx] = hvD[(j+2)*NxP+i+2] / h
		}
	}
}

func recombineSide(fs *FaceSide, bD []float64, imin, imax int, drytol float64) {
	var (
		wD       = fs.Q[0].DataP
		huD, hvD = fs.Q[1].DataP, fs.Q[2].DataP
		hD       = fs.H.DataP
		uD, vD   = fs.U.DataP, fs.V.DataP
	)
	for i := imin; i < imax; i++ {
		h := hD[i]
		if h < drytol {
			uD[i], vD[i] = 0, 0
		} else {
			uD[i], vD[i] = huD[i]/h, hvD[i]/h
		}
		wD[i] = h + bD[i]
		huD[i] = h * uD[i]
		hvD[i] = h * vD[i]
	}
}
