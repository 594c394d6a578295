package SWE2D

import (
	"fmt"
	"math"
	"sync"

	"github.com/notargets/goswe/FV2D"
	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/readfiles"
	"github.com/notargets/goswe/utils"
)

/*
ComputeSources fills SRC with the explicit source terms: the bed slope terms
in the momentum equations and, when configured, the point source discharge
into the mass equation. The bed slope term pairs the center depth of the
current state with the precomputed topography gradients, whose linear bed
reconstruction matches the face extrapolation, so a lake at rest yields an
exactly zero residual.
*/
func (sw *SWE2D) ComputeSources(Q [3]utils.Matrix) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.sourceRows(Q, jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	if sw.PtSrc != nil {
		dtCap := sw.PtSrc.Apply(sw.Time, sw.SRC[0].DataP, sw.Grid)
		if dtCap < sw.dtCeiling {
			sw.dtCeiling = dtCap
		}
	}
}

func (sw *SWE2D) sourceRows(Q [3]utils.Matrix, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		g   = sw.Gravity
		wD  = Q[0].DataP
		bD  = sw.Topo.Centers.DataP
		gxD = sw.Topo.GradX.DataP
		gyD = sw.Topo.GradY.DataP
		s0D = sw.SRC[0].DataP
		s1D = sw.SRC[1].DataP
		s2D = sw.SRC[2].DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			var (
				idx = j*Nx + i
				h   = wD[(j+2)*NxP+i+2] - bD[idx]
			)
			s0D[idx] = 0
			s1D[idx] = -g * h * gxD[idx]
			s2D[idx] = -g * h * gyD[idx]
		}
	}
}

/*
PointSource injects a prescribed volumetric discharge into the mass equation
at the cell containing its location. Rates holds one more entry than Times:
rate k applies until Times[k] and the last rate applies forever after. The
first step after every rate transition, the start included, is capped at
InitDT so the adaptive stepper resolves the new discharge instead of leaping
over it.
*/
type PointSource struct {
	X, Y   float64
	I, J   int // owning interior cell
	Times  []float64
	Rates  []float64
	IRate  int
	InitDT float64
	fresh  bool
}

func NewPointSource(pc *InputParameters.PointSourceConfig, g *FV2D.UniformGrid) (ps *PointSource) {
	i, j, ok := g.CellIndex(pc.Location[0], pc.Location[1])
	if !ok {
		panic(fmt.Errorf("point source location (%v, %v) is outside the domain",
			pc.Location[0], pc.Location[1]))
	}
	ps = &PointSource{
		X: pc.Location[0], Y: pc.Location[1],
		I: i, J: j,
		Times:  pc.Times,
		Rates:  pc.Rates,
		InitDT: pc.InitialDT,
		fresh:  true,
	}
	return
}

/*
Apply adds the active discharge, converted to a rate of surface rise over the
owning cell, into the mass source field and returns the step size ceiling:
InitDT on the first call after a rate transition, +Inf otherwise.
*/
func (ps *PointSource) Apply(t float64, srcW []float64, g *FV2D.UniformGrid) (dtCap float64) {
	for ps.IRate < len(ps.Times) && t >= ps.Times[ps.IRate] {
		ps.IRate++
		ps.fresh = true
	}
	srcW[ps.J*g.Nx+ps.I] += ps.Rates[ps.IRate] / (g.Dx * g.Dy)
	dtCap = math.Inf(1)
	if ps.fresh {
		dtCap = ps.InitDT
		ps.fresh = false
	}
	return
}

/*
FrictionModel applies Manning bed friction to the momentum, folded in as a
semi implicit update after each completed step,

	hu <- hu / (1 + dt g n^2 |u| / h^(4/3))

which is stable for any step size and leaves dry cells untouched. The
roughness n is held per interior cell, either one constant everywhere or a
cell centered Esri raster aligned with the grid.
*/
type FrictionModel struct {
	N2 []float64 // Manning coefficient squared per interior cell
}

func NewFrictionModel(n float64, ncells int) (fm *FrictionModel) {
	fm = &FrictionModel{N2: utils.ConstArray(ncells, n*n)}
	return
}

func NewFrictionFromRaster(fileName string, g *FV2D.UniformGrid) (fm *FrictionModel) {
	var (
		eg  = readfiles.ReadEsriASCII(fileName, false)
		tol = 1.e-6 * math.Min(g.Dx, g.Dy)
	)
	if eg.Ncols != g.Nx || eg.Nrows != g.Ny {
		panic(fmt.Errorf("roughness raster is %dx%d, want the cell extents %dx%d",
			eg.Ncols, eg.Nrows, g.Nx, g.Ny))
	}
	if math.Abs(eg.Cellsize-g.Dx) > tol || math.Abs(eg.Cellsize-g.Dy) > tol {
		panic(fmt.Errorf("roughness raster cellsize %v does not match the grid spacing %v x %v",
			eg.Cellsize, g.Dx, g.Dy))
	}
	if math.Abs(eg.Xll-g.West) > tol || math.Abs(eg.Yll-g.South) > tol {
		panic(fmt.Errorf("roughness raster origin (%v, %v) does not match the domain corner (%v, %v)",
			eg.Xll, eg.Yll, g.West, g.South))
	}
	fm = &FrictionModel{N2: make([]float64, g.Nx*g.Ny)}
	for i, n := range eg.Values.DataP {
		if n < 0 {
			panic(fmt.Errorf("roughness raster holds a negative coefficient %v", n))
		}
		fm.N2[i] = n * n
	}
	return
}

func (sw *SWE2D) ApplyFriction(dt float64) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.frictionRows(dt, jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) frictionRows(dt float64, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		g   = sw.Gravity
		n2D = sw.Friction.N2
		wD  = sw.Q[0].DataP
		huD = sw.Q[1].DataP
		hvD = sw.Q[2].DataP
		bD  = sw.Topo.Centers.DataP
	)
	for j := jmin; j < jmax; j++ {
		for i := 0; i < Nx; i++ {
			var (
				pidx = (j+2)*NxP + i + 2
				h    = wD[pidx] - bD[j*Nx+i]
			)
			if h < sw.DryTol {
				continue
			}
			u, v := huD[pidx]/h, hvD[pidx]/h
			denom := 1. + dt*g*n2D[j*Nx+i]*math.Sqrt(u*u+v*v)/math.Pow(h, 4./3.)
			huD[pidx] /= denom
			hvD[pidx] /= denom
		}
	}
}
