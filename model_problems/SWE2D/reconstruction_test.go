package SWE2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstruction(t *testing.T) {
	{ // Slope limiter unit behavior
		theta, tol := 1.3, 1.e-10
		// Uniform ramp: slope is half the cell to cell difference
		assert.True(t, near(0.5, limitedSlope(0, 1, 2, theta, tol), 1.e-12))
		// Local extremum gives a zero slope
		assert.True(t, limitedSlope(0, 1, 0, theta, tol) == 0)
		assert.True(t, limitedSlope(1, 0, 1, theta, tol) == 0)
		// A forward difference at or below tol is treated as flat
		assert.True(t, limitedSlope(0, 5, 5+5.e-11, theta, tol) == 0)
		// Theta caps the steepening of a sharpening profile
		d := -0.5 - 0.01
		assert.True(t, near(theta*(0.5*d), limitedSlope(1, 0.01, -0.5, theta, tol), 1.e-12))
		// Theta = 1 is classic minmod, half the backward difference when the
		// profile flattens ahead
		assert.True(t, near(0.25, limitedSlope(1, 1.5, 2.1, 1.0, tol), 1.e-12))
	}
	{ // Five cell wetting front, traced by hand through all four stages
		sw := reconSolver()
		var (
			Nx  = sw.Grid.Nx
			NxP = Nx + 4
			wD  = sw.Q[0].DataP
		)
		for i, w := range []float64{1, 1, 1, 0.01, -0.5} {
			wD[2*NxP+i+2] = w
		}
		sw.UpdateGhosts(sw.Q)
		qSaved := make([]float64, len(wD))
		copy(qSaved, wD)
		sw.ComputeSlopes(sw.Q)
		sw.ExtrapolateFaces(sw.Q)
		var (
			s   = 1.3 * (0.5 * (-0.5 - 0.01)) // the only nonzero limited slope
			qm4 = 0.01 + s
			qp3 = 0.01 - s
		)
		assert.True(t, nearVec([]float64{1, 1, 1, 1, qm4, -0.5}, sw.XFaces.Minus.Q[0].DataP, 1.e-12))
		assert.True(t, nearVec([]float64{1, 1, 1, qp3, -0.5, -0.5}, sw.XFaces.Plus.Q[0].DataP, 1.e-12))
		// After the positivity fix the cell 3 pair is redistributed to keep
		// its average at the center depth, and cell 4 goes fully dry
		sw.CorrectDepths(sw.Q)
		assert.True(t, nearVec([]float64{1, 1, 1, 1, 0, 0}, sw.XFaces.Minus.H.DataP, 1.e-12))
		assert.True(t, nearVec([]float64{1, 1, 1, 0.02, 0, 0}, sw.XFaces.Plus.H.DataP, 1.e-12))
		// Negative center depth is snapped to exactly zero
		assert.True(t, nearVec([]float64{1, 1, 1, 0.01, 0}, sw.H.DataP, 1.e-12))
		// Recombination rebuilds w = h + b on the flat bed
		sw.RecombineFaces(sw.Q)
		assert.True(t, nearVec(sw.XFaces.Minus.H.DataP, sw.XFaces.Minus.Q[0].DataP, 1.e-12))
		assert.True(t, nearVec(sw.XFaces.Plus.H.DataP, sw.XFaces.Plus.Q[0].DataP, 1.e-12))
		// The conservative input is never modified
		assert.True(t, nearVec(qSaved, wD, 1.e-15))
		// Cross direction faces carry no negative depths either
		for _, fD := range [][]float64{sw.YFaces.Minus.H.DataP, sw.YFaces.Plus.H.DataP} {
			for _, h := range fD {
				assert.True(t, h >= 0)
			}
		}
	}
	{ // Depth below the dry tolerance kills velocity and momentum
		sw := reconSolver()
		setInterior(sw, 0, func(x, y float64) float64 { return 0.0005 })
		setInterior(sw, 1, func(x, y float64) float64 { return 1 })
		sw.UpdateGhosts(sw.Q)
		sw.ReconstructFaces(sw.Q)
		for _, fs := range []*FaceSide{&sw.XFaces.Minus, &sw.XFaces.Plus} {
			for i := range fs.H.DataP {
				assert.True(t, near(0.0005, fs.H.DataP[i], 1.e-12))
				assert.True(t, fs.U.DataP[i] == 0)
				assert.True(t, fs.Q[1].DataP[i] == 0)
			}
		}
		for i := range sw.U.DataP {
			assert.True(t, sw.U.DataP[i] == 0)
		}
		// The center momentum itself is left alone
		assert.True(t, near(1, sw.Q[1].DataP[2*(sw.Grid.Nx+4)+2], 1.e-15))
	}
}

func reconSolver() (sw *SWE2D) {
	sw = testSolver(`
title: reconstruction unit
spatial:
  domain: [0, 5, 0, 1]
  discretization: [5, 1]
temporal:
  output: ["t_start t_end no save", 0, 1]
initial:
  values: [0, 0, 0]
parameters:
  theta: 1.3
  dryTol: 0.001
  tol: 1.0e-10
`+outflowBCs, "")
	return
}
