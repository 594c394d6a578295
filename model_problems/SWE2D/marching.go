package SWE2D

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/notargets/goswe/utils"
)

type MarchType uint

const (
	MARCH_Euler MarchType = iota
	MARCH_SSPRK2
	MARCH_SSPRK3
)

var (
	MarchNames = map[string]MarchType{
		"euler":   MARCH_Euler,
		"ssp-rk2": MARCH_SSPRK2,
		"ssp-rk3": MARCH_SSPRK3,
	}
	MarchPrintNames = []string{"Euler", "SSP-RK2", "SSP-RK3"}
)

func (mt MarchType) Print() (txt string) {
	txt = MarchPrintNames[mt]
	return
}

func NewMarchType(label string) (mt MarchType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if mt, ok = MarchNames[label]; !ok {
		err = fmt.Errorf("unable to use time marching scheme named %s", label)
		panic(err)
	}
	return
}

/*
TimeMarcher owns the intermediate stage storage for the strong stability
preserving schemes. Q1 is ghost padded like Q so the boundary updaters and
the reconstruction run on intermediate states unchanged.
*/
type TimeMarcher struct {
	Scheme MarchType
	Q1     [3]utils.Matrix
}

func (sw *SWE2D) NewTimeMarcher() (mr *TimeMarcher) {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
	)
	mr = &TimeMarcher{Scheme: sw.TimeScheme}
	if mr.Scheme != MARCH_Euler {
		for n := 0; n < 3; n++ {
			mr.Q1[n] = utils.NewMatrix(Ny+4, Nx+4)
		}
	}
	return
}

/*
MarchTo advances the solution to the output instant nextT, returning the
number of steps taken. Step count driven timelines run a fixed number of
fixed size steps per interval instead of comparing times, then land on the
nominal instant so the snapshot labels stay exact.
*/
func (mr *TimeMarcher) MarchTo(sw *SWE2D, nextT float64, pm *PlotMeta) (steps int) {
	var (
		stepsPer = sw.Times.StepsPerInterval
		dt       float64
	)
	for {
		if sw.TotalSteps >= sw.MaxIterations {
			return
		}
		if stepsPer > 0 && steps >= stepsPer {
			break
		}
		if stepsPer == 0 && sw.Time >= nextT {
			break
		}
		dt = mr.Step(sw, nextT)
		steps++
		sw.TotalSteps++
		if sw.Probes != nil && sw.TotalSteps%sw.Probes.SaveEvery == 0 {
			sw.RecordProbes()
		}
		if pm.Plot && (sw.TotalSteps%pm.StepsBeforePlot == 0 || sw.TotalSteps == 1) {
			sw.PlotSolution(pm)
		}
		if sw.TotalSteps%sw.LogSteps == 0 || sw.TotalSteps == 1 {
			sw.PrintUpdate(dt)
		}
	}
	if stepsPer > 0 {
		sw.Time = nextT
	}
	return
}

/*
Step advances one full multi stage step and returns the step size used. Every
stage refreshes the ghost cells of the state it evaluates, and the step size
is chosen once, from the wave speeds of the first stage.
*/
func (mr *TimeMarcher) Step(sw *SWE2D, nextT float64) (dt float64) {
	var (
		Q, Q1 = sw.Q, mr.Q1
		last  bool
	)
	sw.dtCeiling = math.Inf(1)
	sw.UpdateGhosts(Q)
	maxDt := sw.RHS(Q)
	dt, last = sw.timestep(maxDt, nextT)
	switch mr.Scheme {
	case MARCH_Euler:
		sw.advance(Q, Q, Q, 0, 1, dt)
	case MARCH_SSPRK2:
		sw.advance(Q1, Q, Q, 0, 1, dt)
		sw.UpdateGhosts(Q1)
		sw.RHS(Q1)
		sw.advance(Q, Q, Q1, 0.5, 0.5, dt)
	case MARCH_SSPRK3:
		sw.advance(Q1, Q, Q, 0, 1, dt)
		sw.UpdateGhosts(Q1)
		sw.RHS(Q1)
		sw.advance(Q1, Q, Q1, 0.75, 0.25, dt)
		sw.UpdateGhosts(Q1)
		sw.RHS(Q1)
		sw.advance(Q, Q, Q1, 1./3., 2./3., dt)
	}
	if sw.Friction != nil {
		sw.ApplyFriction(dt)
	}
	if last {
		sw.Time = nextT
	} else {
		sw.Time += dt
	}
	return
}

/*
timestep picks the step size: the CFL bound in adaptive runs, the configured
DT otherwise, in both cases honoring the point source ceiling. last reports
that the step lands on nextT, where the time is assigned exactly rather than
accumulated.
*/
func (sw *SWE2D) timestep(maxDt, nextT float64) (dt float64, last bool) {
	if sw.IP.Temporal.Adaptive {
		dt = sw.CFL * maxDt
	} else {
		dt = sw.IP.Temporal.DT
	}
	if dt > sw.dtCeiling {
		dt = sw.dtCeiling
	}
	if sw.Times.StepsPerInterval > 0 {
		return // step count driven, no clipping to the instant
	}
	if sw.Time+dt >= nextT {
		dt = nextT - sw.Time
		last = true
	}
	return
}

// advance writes qout = ca*qa + cb*(qb + dt*RHSQ) over the interior cells,
// which covers the forward Euler update and every SSP stage combination.
func (sw *SWE2D) advance(qout, qa, qb [3]utils.Matrix, ca, cb, dt float64) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			sw.advanceRows(qout, qa, qb, ca, cb, dt, jmin, jmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}

func (sw *SWE2D) advanceRows(qout, qa, qb [3]utils.Matrix, ca, cb, dt float64, jmin, jmax int) {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
	)
	for n := 0; n < 3; n++ {
		var (
			oD = qout[n].DataP
			aD = qa[n].DataP
			bD = qb[n].DataP
			rD = sw.RHSQ[n].DataP
		)
		for j := jmin; j < jmax; j++ {
			for i := 0; i < Nx; i++ {
				pidx := (j+2)*NxP + i + 2
				oD[pidx] = ca*aD[pidx] + cb*(bD[pidx]+dt*rD[j*Nx+i])
			}
		}
	}
}
