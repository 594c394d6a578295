package SWE2D

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/dam_break"
)

const outflowBCs = `
boundary:
  west: {types: [outflow, outflow, outflow]}
  east: {types: [outflow, outflow, outflow]}
  south: {types: [outflow, outflow, outflow]}
  north: {types: [outflow, outflow, outflow]}
`

const periodicBCs = `
boundary:
  west: {types: [periodic, periodic, periodic]}
  east: {types: [periodic, periodic, periodic]}
  south: {types: [periodic, periodic, periodic]}
  north: {types: [periodic, periodic, periodic]}
`

func TestSWE2D(t *testing.T) {
	pm := &PlotMeta{Plot: false, StepsBeforePlot: 100}
	{ // A lake at rest over an uneven bed stays exactly at rest
		var (
			caseDir = t.TempDir()
			Nx, Ny  = 20, 20
			dx      = 0.05
		)
		writeBumpRaster(filepath.Join(caseDir, "topo.asc"), Nx, Ny, dx)
		sw := testSolver(`
title: lake at rest
spatial:
  domain: [0, 1, 0, 1]
  discretization: [20, 20]
temporal:
  output: ["t_start t_end no save", 0, 0.1]
initial:
  values: [0.5, 0, 0]
topography:
  file: topo.asc
`+outflowBCs, caseDir)
		sw.UpdateGhosts(sw.Q)
		maxDt := sw.RHS(sw.Q)
		assert.True(t, maxDt > 0 && !math.IsInf(maxDt, 1))
		for n := 0; n < 3; n++ {
			assert.True(t, sw.RHSQ[n].Max() == 0 && sw.RHSQ[n].Min() == 0)
		}
		sw.Solve(pm)
		assert.True(t, sw.Time == 0.1)
		var (
			NxP = Nx + 4
			wD  = sw.Q[0].DataP
		)
		for j := 0; j < Ny; j++ {
			for i := 0; i < Nx; i++ {
				assert.True(t, near(0.5, wD[(j+2)*NxP+i+2], 1.e-12))
			}
		}
	}
	{ // Dam break over a dry bed against Ritter's solution
		sw := damBreakSolver(t, 0)
		sw.Solve(pm)
		db := dam_break.NewDamBreak(sw.Gravity, 1, 0, 0)
		H, _ := db.Profile(sw.Grid.X.DataP, sw.Time)
		meanErr, minH := profileError(sw, H)
		fmt.Printf("Ritter mean depth error = %v\n", meanErr)
		assert.True(t, meanErr < 0.02)
		assert.True(t, minH >= 0) // positivity across the wetting front
		// Far field on both sides is undisturbed
		assert.True(t, near(1, interiorW(sw, 0, 5), 1.e-6))
		assert.True(t, math.Abs(interiorW(sw, 0, sw.Grid.Nx-5)) <= 1.e-12)
	}
	{ // Dam break onto standing water against Stoker's solution
		sw := damBreakSolver(t, 0.1)
		sw.Solve(pm)
		db := dam_break.NewDamBreak(sw.Gravity, 1, 0.1, 0)
		H, _ := db.Profile(sw.Grid.X.DataP, sw.Time)
		meanErr, _ := profileError(sw, H)
		fmt.Printf("Stoker mean depth error = %v, bore at x = %v\n", meanErr, db.Bore*sw.Time)
		assert.True(t, meanErr < 0.02)
		// The computed bore sits within a few cells of the exact front
		var xNum float64
		half := 0.5 * (db.Hm + db.Hr)
		for i := sw.Grid.Nx - 1; i >= 0; i-- {
			if interiorW(sw, 0, i) > half {
				xNum = sw.Grid.X.DataP[i]
				break
			}
		}
		assert.True(t, math.Abs(xNum-db.Bore*sw.Time) < 0.2)
	}
	{ // Periodic box conserves volume to rounding
		sw := testSolver(`
title: conservation
spatial:
  domain: [0, 1, 0, 1]
  discretization: [20, 20]
temporal:
  adaptive: false
  dt: 0.001
  output: ["t_start n_steps no save", 0, 20]
initial:
  values: [0.1, 0, 0]
`+periodicBCs, "")
		setInterior(sw, 0, func(x, y float64) float64 {
			r2 := (x-0.5)*(x-0.5) + (y-0.5)*(y-0.5)
			return 0.1 + 0.05*math.Exp(-r2/0.01)
		})
		vol0 := sw.TotalVolume()
		sw.Solve(pm)
		assert.True(t, sw.TotalSteps == 20)
		assert.True(t, sw.Time == sw.Times.T[1])
		assert.True(t, near(vol0, sw.TotalVolume(), 1.e-10))
	}
	{ // A restarted run reproduces the uninterrupted one
		var (
			caseDir  = t.TempDir()
			caseYAML = `
title: restart
spatial:
  domain: [0, 1, 0, 1]
  discretization: [20, 20]
temporal:
  output: ["at", [0, 0.1, 0.2]]
initial:
  values: [0, 0, 0]
` + outflowBCs
			step = func(x, y float64) float64 {
				if x < 0.5 {
					return 0.4
				}
				return 0.1
			}
		)
		swA := testSolver(caseYAML, caseDir)
		setInterior(swA, 0, step)
		swA.Solve(pm)
		for k := 0; k <= 2; k++ {
			_, err := os.Stat(filepath.Join(caseDir, fmt.Sprintf("save_%04d.bin", k)))
			assert.True(t, err == nil)
		}
		swB := testSolver(caseYAML, caseDir)
		swB.RestartFrom(0.1)
		swB.Solve(pm)
		for n := 0; n < 3; n++ {
			assert.True(t, nearVec(swA.Q[n].DataP, swB.Q[n].DataP, 1.e-12))
		}
	}
}

func damBreakSolver(t *testing.T, hr float64) (sw *SWE2D) {
	sw = testSolver(`
title: dam break
spatial:
  domain: [-5, 5, 0, 1]
  discretization: [200, 4]
temporal:
  output: ["t_start t_end no save", 0, 0.5]
initial:
  values: [0, 0, 0]
`+outflowBCs, t.TempDir())
	setInterior(sw, 0, func(x, y float64) float64 {
		if x < 0 {
			return 1
		}
		return hr
	})
	return
}

// profileError reports the mean absolute depth error against an exact
// profile along the first interior row, plus the smallest depth seen.
func profileError(sw *SWE2D, H []float64) (meanErr, minH float64) {
	var (
		Nx = sw.Grid.Nx
	)
	minH = math.Inf(1)
	for i := 0; i < Nx; i++ {
		h := interiorW(sw, 0, i) // flat bed, depth equals surface
		meanErr += math.Abs(h - H[i])
		if h < minH {
			minH = h
		}
	}
	meanErr /= float64(Nx)
	return
}

func interiorW(sw *SWE2D, j, i int) float64 {
	return sw.Q[0].DataP[(j+2)*(sw.Grid.Nx+4)+i+2]
}

func setInterior(sw *SWE2D, n int, f func(x, y float64) float64) {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		NxP    = Nx + 4
		qD     = sw.Q[n].DataP
	)
	for j := 0; j < Ny; j++ {
		for i := 0; i < Nx; i++ {
			qD[(j+2)*NxP+i+2] = f(sw.Grid.X.DataP[i], sw.Grid.Y.DataP[j])
		}
	}
}

func testSolver(yamlCase, caseDir string) (sw *SWE2D) {
	ip := &InputParameters.InputParameters2D{}
	if err := ip.Parse([]byte(yamlCase)); err != nil {
		panic(err)
	}
	sw = NewSWE2D(ip, caseDir, 1, false)
	return
}

// writeBumpRaster emits a vertex registered Esri ASCII raster of a smooth
// bump reaching 0.3 at the domain center.
func writeBumpRaster(fileName string, Nx, Ny int, d float64) {
	file, err := os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	fmt.Fprintf(file, "ncols %d\nnrows %d\n", Nx+1, Ny+1)
	fmt.Fprintf(file, "xllcorner %v\nyllcorner %v\ncellsize %v\n", -0.5*d, -0.5*d, d)
	for r := Ny; r >= 0; r-- {
		y := float64(r) * d
		for c := 0; c <= Nx; c++ {
			x := float64(c) * d
			r2 := (x-0.5)*(x-0.5) + (y-0.5)*(y-0.5)
			fmt.Fprintf(file, " %.10f", 0.3*math.Exp(-r2/0.02))
		}
		fmt.Fprintf(file, "\n")
	}
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			fmt.Printf("Diff = %v, Left[%d] = %v, Right[%d] = %v\n",
				math.Abs(val-b[i]), i, val, i, b[i])
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
