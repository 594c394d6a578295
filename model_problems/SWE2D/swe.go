package SWE2D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/goswe/FV2D"
	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/utils"
)

/*
	The solver state lives on three stacked layouts:
		- Cell centers, ghost padded: conservative variables w, hu, hv
		- Cell centers, interior only: depth, velocity, sources and the RHS
		- Cell faces, one set per direction: the two one sided states plus fluxes
	Each residual evaluation rebuilds the face sets from the padded centers via
	slope limiting, extrapolation, the wet/dry depth fix and recombination. The
	face sets carry no state between evaluations.
*/
type SWE2D struct {
	// Input parameters
	CaseDir          string
	IP               *InputParameters.InputParameters2D
	Grid             *FV2D.UniformGrid
	Topo             *FV2D.Topography
	Gravity, Theta   float64
	DryTol, Tol, CFL float64
	FluxCalcAlgo     FluxType
	TimeScheme       MarchType
	Times            InputParameters.Timeline
	MaxIterations    int
	LogSteps         int
	ParallelDegree   int                 // Number of go routines to use for parallel execution
	Partitions       *utils.PartitionMap // Interior cell rows, Ny
	PartitionsYFace  *utils.PartitionMap // Y direction face rows, Ny+1
	PartitionsYSlope *utils.PartitionMap // Y direction slope rows, Ny+2
	// Conservative state at cell centers, ghost padded to (Ny+4)x(Nx+4)
	Q [3]utils.Matrix // w, hu, hv
	// Derived state at interior cell centers, Ny x Nx
	H, U, V utils.Matrix
	SRC     [3]utils.Matrix
	RHSQ    [3]utils.Matrix
	// Limited slopes, x: Ny x (Nx+2), y: (Ny+2) x Nx
	SlopeX, SlopeY [3]utils.Matrix
	// One sided face states, x: Ny x (Nx+1), y: (Ny+1) x Nx
	XFaces, YFaces *FaceBundle
	// Compiled ghost cell updaters in edge order west, east, south, north
	ghUpdaters  []ghostUpdater
	NumFluxCalc func(qm, qp, fm, fp [3]float64, am, ap float64) (flux [3]float64)
	PtSrc       *PointSource
	Friction    *FrictionModel
	Probes      *ProbeSet
	chart       ChartState
	Time        float64
	TotalSteps  int
	tidx        int     // current index into Times.T
	dtCeiling   float64 // step size cap imposed by the point source
}

// FaceSide holds the state reconstructed at a set of faces approached from
// one side, plus the physical flux evaluated from that state.
type FaceSide struct {
	Q    [3]utils.Matrix // w, hu, hv
	H    utils.Matrix
	U, V utils.Matrix
	Flux [3]utils.Matrix
}

// FaceBundle pairs the two one sided states at the faces in one direction
// with the local wave speed bounds and the single valued numerical flux.
type FaceBundle struct {
	Minus, Plus FaceSide
	Am, Ap      utils.Matrix // wave speed bounds, Am <= 0 <= Ap
	Flux        [3]utils.Matrix
}

func NewFaceBundle(nr, nc int) (fb *FaceBundle) {
	fb = &FaceBundle{}
	for _, fs := range []*FaceSide{&fb.Minus, &fb.Plus} {
		for n := 0; n < 3; n++ {
			fs.Q[n] = utils.NewMatrix(nr, nc)
			fs.Flux[n] = utils.NewMatrix(nr, nc)
		}
		fs.H = utils.NewMatrix(nr, nc)
		fs.U = utils.NewMatrix(nr, nc)
		fs.V = utils.NewMatrix(nr, nc)
	}
	fb.Am = utils.NewMatrix(nr, nc)
	fb.Ap = utils.NewMatrix(nr, nc)
	for n := 0; n < 3; n++ {
		fb.Flux[n] = utils.NewMatrix(nr, nc)
	}
	return
}

func NewSWE2D(ip *InputParameters.InputParameters2D, caseDir string, ProcLimit int, verbose bool) (sw *SWE2D) {
	ip.Validate()
	sw = &SWE2D{
		CaseDir:       caseDir,
		IP:            ip,
		Gravity:       ip.Parameters.Gravity,
		Theta:         ip.Parameters.Theta,
		DryTol:        ip.Parameters.DryTol,
		Tol:           ip.Parameters.Tol,
		CFL:           ip.Parameters.CFL,
		LogSteps:      ip.Parameters.LogSteps,
		MaxIterations: ip.Temporal.MaxIterations,
		FluxCalcAlgo:  NewFluxType(ip.Parameters.FluxType),
		TimeScheme:    NewMarchType(ip.Temporal.Scheme),
		dtCeiling:     math.Inf(1),
	}
	sw.Times = ip.Temporal.BuildTimeline()
	sw.Time = sw.Times.T[0]

	d := ip.Spatial
	sw.Grid = FV2D.NewUniformGrid(d.Domain[0], d.Domain[1], d.Domain[2], d.Domain[3],
		d.Discretization[0], d.Discretization[1])

	sw.SetParallelDegree(ProcLimit)

	sw.allocateStorage()
	sw.InitializeTopography(verbose)
	sw.InitializeSolution(verbose)
	sw.SetupBCs()

	switch sw.FluxCalcAlgo {
	case FLUX_CentralUpwind:
		sw.NumFluxCalc = sw.CentralUpwindFlux
	case FLUX_Rusanov:
		sw.NumFluxCalc = sw.RusanovFlux
	}

	if ip.PointSource != nil {
		sw.PtSrc = NewPointSource(ip.PointSource, sw.Grid)
	}
	if fr := ip.Friction; fr != nil {
		if fr.File != "" {
			sw.Friction = NewFrictionFromRaster(sw.resolvePath(fr.File), sw.Grid)
		} else {
			sw.Friction = NewFrictionModel(fr.ManningCoef, sw.Grid.Nx*sw.Grid.Ny)
		}
	}
	if ip.Probes != nil {
		sw.Probes = NewProbeSet(ip.Probes, sw.Grid, caseDir)
	}

	if verbose {
		fmt.Printf("Shallow Water Equations in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel\n", sw.ParallelDegree)
		fmt.Printf("Solving case [%s]\n", ip.Title)
		fmt.Printf("Algorithm: %s flux, %s time integration\n",
			sw.FluxCalcAlgo.Print(), sw.TimeScheme.Print())
		fmt.Printf("CFL = %8.4f, Theta = %8.4f, Num Cells = %d x %d\n\n\n",
			sw.CFL, sw.Theta, sw.Grid.Nx, sw.Grid.Ny)
	}
	return
}

func (sw *SWE2D) allocateStorage() {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
	)
	for n := 0; n < 3; n++ {
		sw.Q[n] = utils.NewMatrix(Ny+4, Nx+4)
		sw.SRC[n] = utils.NewMatrix(Ny, Nx)
		sw.RHSQ[n] = utils.NewMatrix(Ny, Nx)
		sw.SlopeX[n] = utils.NewMatrix(Ny, Nx+2)
		sw.SlopeY[n] = utils.NewMatrix(Ny+2, Nx)
	}
	sw.H = utils.NewMatrix(Ny, Nx)
	sw.U = utils.NewMatrix(Ny, Nx)
	sw.V = utils.NewMatrix(Ny, Nx)
	sw.XFaces = NewFaceBundle(Ny, Nx+1)
	sw.YFaces = NewFaceBundle(Ny+1, Nx)
}

func (sw *SWE2D) Solve(pm *PlotMeta) {
	var (
		T     = sw.Times.T
		steps int
	)
	sw.PrintInitialization()
	if !sw.Times.NoSave && sw.tidx == 0 {
		sw.WriteSnapshot()
	}
	mr := sw.NewTimeMarcher()

	elapsed := time.Duration(0)
	var start time.Time
	for _, nextT := range T[sw.tidx+1:] {
		start = time.Now()
		steps += mr.MarchTo(sw, nextT, pm)
		elapsed += time.Now().Sub(start)
		sw.tidx++
		if !sw.Times.NoSave {
			sw.WriteSnapshot()
		}
		if sw.TotalSteps >= sw.MaxIterations {
			break
		}
	}
	if sw.Probes != nil {
		sw.Probes.Close()
	}
	sw.PrintFinal(elapsed, steps)
}

// TotalVolume is the water volume over the interior, a conservation check.
func (sw *SWE2D) TotalVolume() (vol float64) {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		NxP    = Nx + 4
		wD     = sw.Q[0].DataP
		bD     = sw.Topo.Centers.DataP
	)
	for j := 0; j < Ny; j++ {
		for i := 0; i < Nx; i++ {
			vol += wD[(j+2)*NxP+i+2] - bD[j*Nx+i]
		}
	}
	vol *= sw.Grid.Dx * sw.Grid.Dy
	return
}

func (sw *SWE2D) PrintInitialization() {
	var (
		T = sw.Times.T
	)
	fmt.Printf("Solving from T=%8.5f to T=%8.5f\n", T[sw.tidx], T[len(T)-1])
	fmt.Printf("    iter    time      dt")
	fmt.Printf("       Res0       Res1       Res2")
	fmt.Printf("     Volume\n")
}

func (sw *SWE2D) PrintUpdate(dt float64) {
	format := "%11.4e"
	fmt.Printf("%8d%8.5f%8.5f", sw.TotalSteps, sw.Time, dt)
	for n := 0; n < 3; n++ {
		fmt.Printf(format, sw.RHSQ[n].Max())
	}
	fmt.Printf(format, sw.TotalVolume())
	fmt.Printf("\n")
}

func (sw *SWE2D) PrintFinal(elapsed time.Duration, steps int) {
	if steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / (float64(sw.Grid.Nx*sw.Grid.Ny) * float64(steps))
	fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, steps)
}
