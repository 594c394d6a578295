package SWE2D

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/notargets/goswe/FV2D"
	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/utils"
	"github.com/stretchr/testify/assert"
)

func TestTimeMarching(t *testing.T) {
	pm := &PlotMeta{Plot: false, StepsBeforePlot: 100}
	{ // Scheme keyword parsing
		assert.Equal(t, MARCH_Euler, NewMarchType("Euler"))
		assert.Equal(t, MARCH_SSPRK2, NewMarchType("SSP-RK2"))
		assert.Equal(t, MARCH_SSPRK3, NewMarchType("ssp-rk3"))
		assert.Equal(t, "SSP-RK3", MARCH_SSPRK3.Print())
	}
	{ // Step count driven marching takes exactly the requested fixed steps
		// and lands on the nominal interval end time
		sw := testSolver(`
title: fixed steps
spatial:
  domain: [0, 1, 0, 1]
  discretization: [10, 10]
temporal:
  dt: 0.001
  adaptive: false
  scheme: Euler
  output: ["t_start n_steps no save", 0, 10]
initial:
  values: [0.2, 0, 0]
`+periodicBCs, "")
		sw.Solve(pm)
		assert.Equal(t, 10, sw.TotalSteps)
		assert.True(t, sw.Time == sw.Times.T[1])
	}
	{ // Adaptive marching clips the last step to land exactly on the target
		sw := testSolver(`
title: exact arrival
spatial:
  domain: [-1, 1, 0, 1]
  discretization: [40, 4]
temporal:
  output: ["t_start t_end no save", 0, 0.05]
initial:
  values: [0, 0, 0]
`+outflowBCs, "")
		setInterior(sw, 0, func(x, y float64) float64 {
			if x < 0 {
				return 0.4
			}
			return 0.1
		})
		sw.Solve(pm)
		assert.True(t, sw.Time == 0.05)
		assert.True(t, sw.TotalSteps > 1)
	}
	{ // Third order scheme marches the wetting front without negative depths
		sw := testSolver(`
title: rk3 dam break
spatial:
  domain: [-1, 1, 0, 1]
  discretization: [40, 4]
temporal:
  scheme: SSP-RK3
  output: ["t_start t_end no save", 0, 0.1]
initial:
  values: [0, 0, 0]
`+outflowBCs, "")
		setInterior(sw, 0, func(x, y float64) float64 {
			if x < 0 {
				return 0.5
			}
			return 0
		})
		sw.Solve(pm)
		var (
			Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
			bD     = sw.Topo.Centers.DataP
			minH   = math.Inf(1)
		)
		for j := 0; j < Ny; j++ {
			for i := 0; i < Nx; i++ {
				h := interiorW(sw, j, i) - bD[j*Nx+i]
				if h < minH {
					minH = h
				}
			}
		}
		assert.True(t, minH >= 0)
		assert.True(t, near(0.5, interiorW(sw, 1, 2), 1.e-6)) // upstream untouched
	}
	{ // Point source rate schedule and the step ceiling after each transition
		g := FV2D.NewUniformGrid(0, 1, 0, 1, 10, 10)
		pc := &InputParameters.PointSourceConfig{
			Location:  [2]float64{0.55, 0.55},
			Times:     []float64{0.5},
			Rates:     []float64{2, 0},
			InitialDT: 1.e-3,
		}
		ps := NewPointSource(pc, g)
		assert.True(t, ps.I == 5 && ps.J == 5)
		srcW := make([]float64, g.Nx*g.Ny)
		dtCap := ps.Apply(0, srcW, g)
		assert.True(t, near(2/(g.Dx*g.Dy), srcW[5*g.Nx+5], 1.e-12))
		assert.True(t, dtCap == 1.e-3) // fresh at the start
		srcW[5*g.Nx+5] = 0
		dtCap = ps.Apply(0.1, srcW, g)
		assert.True(t, math.IsInf(dtCap, 1))
		srcW[5*g.Nx+5] = 0
		dtCap = ps.Apply(0.6, srcW, g) // past Times[0], rate drops to zero
		assert.True(t, ps.IRate == 1)
		assert.True(t, srcW[5*g.Nx+5] == 0)
		assert.True(t, dtCap == 1.e-3)
	}
	{ // Discharge integrates to an exact volume gain while the filling wave
		// stays clear of the boundary
		sw := testSolver(`
title: point source volume
spatial:
  domain: [0, 1, 0, 1]
  discretization: [20, 20]
temporal:
  output: ["t_start t_end no save", 0, 0.1]
initial:
  values: [0.1, 0, 0]
pointSource:
  location: [0.5, 0.5]
  times: [0.5]
  rates: [2, 0]
`+outflowBCs, "")
		vol0 := sw.TotalVolume()
		sw.Solve(pm)
		assert.True(t, near(vol0+2*0.1, sw.TotalVolume(), 1.e-10))
	}
	{ // Manning friction divides the momentum semi implicitly each step
		sw := testSolver(`
title: friction decay
spatial:
  domain: [0, 1, 0, 1]
  discretization: [8, 8]
temporal:
  dt: 0.01
  adaptive: false
  scheme: Euler
  output: ["t_start n_steps no save", 0, 1]
initial:
  values: [1, 1, 0]
friction:
  manningCoef: 0.03
`+periodicBCs, "")
		sw.Solve(pm)
		var (
			NxP   = sw.Grid.Nx + 4
			huD   = sw.Q[1].DataP
			denom = 1. + 0.01*9.81*0.03*0.03
		)
		assert.True(t, near(1., interiorW(sw, 1, 1), 1.e-14))
		assert.True(t, near(1./denom, huD[3*NxP+3], 1.e-12))
	}
	{ // Spatially varying roughness comes from a cell centered Esri raster
		var (
			dir      = t.TempDir()
			caseYAML = `
title: roughness raster
spatial:
  domain: [0, 1, 0, 1]
  discretization: [8, 8]
temporal:
  dt: 0.01
  adaptive: false
  scheme: Euler
  output: ["t_start n_steps no save", 0, 1]
initial:
  values: [1, 1, 0]
` + periodicBCs
		)
		sw := testSolver(caseYAML, dir)
		nM := utils.NewMatrix(8, 8)
		for j := 0; j < 8; j++ {
			for i := 0; i < 8; i++ {
				nM.DataP[j*8+i] = 0.01 + 0.001*float64(i)
			}
		}
		sw.ExportEsriASCII(nM, filepath.Join(dir, "manning.asc"))
		sw = testSolver(caseYAML+`
friction:
  file: manning.asc
`, dir)
		sw.Solve(pm)
		var (
			NxP = sw.Grid.Nx + 4
			huD = sw.Q[1].DataP
		)
		// Uniform flow leaves the fluxes balanced, so each column keeps the
		// decay factor of its own roughness
		for _, i := range []int{0, 5} {
			n := 0.01 + 0.001*float64(i)
			denom := 1. + 0.01*9.81*n*n
			assert.True(t, near(1./denom, huD[3*NxP+i+2], 1.e-12))
		}
	}
}
