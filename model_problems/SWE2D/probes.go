package SWE2D

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/notargets/goswe/FV2D"
	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/utils"
)

/*
ProbeSet samples point time histories of the solution. Each probe bilinearly
interpolates its variable from the four surrounding cell centers. The
interpolation weights are assembled once into a sparse matrix with one row
per probe, so a sample is a matrix vector product per variable. Variables 3-5
are the primitive depth and velocities, derived from the conservative state
at sampling time. Output is a CSV file in the case folder, one row per sample.
*/
type ProbeSet struct {
	FileName   string
	SaveEvery  int
	Fields     []int // variable index per probe, 0-5 = w, hu, hv, h, u, v
	Weights    utils.CSR
	scratch    [][]float64 // interior fields, w hu hv and the derived h u v
	values     [][]float64 // Weights times scratch, per variable
	file       *os.File
	appendMode bool
	header     string
}

func NewProbeSet(pc *InputParameters.ProbesConfig, g *FV2D.UniformGrid, caseDir string) (pb *ProbeSet) {
	var (
		Nx, Ny = g.Nx, g.Ny
		nProbe = len(pc.Locations)
	)
	pb = &ProbeSet{
		FileName:  filepath.Join(caseDir, pc.File),
		SaveEvery: pc.SaveEvery,
		Fields:    make([]int, nProbe),
	}
	d := utils.NewDOK(nProbe, Nx*Ny)
	pb.header = "# time"
	nVars := 3
	for k, loc := range pc.Locations {
		pb.Fields[k] = loc.Field
		if loc.Field >= 3 {
			nVars = 6
		}
		pb.header += fmt.Sprintf(",p%d[var=%d x=%v y=%v]", k, loc.Field, loc.X, loc.Y)
		// Fractional position of the probe among the cell centers
		gx := (loc.X-g.West)/g.Dx - 0.5
		gy := (loc.Y-g.South)/g.Dy - 0.5
		i0, j0 := int(math.Floor(gx)), int(math.Floor(gy))
		tx, ty := gx-float64(i0), gy-float64(j0)
		// Clamp the stencil to the interior, probes in the outer half cell
		// degrade to nearest cell sampling along that direction
		if i0 < 0 {
			i0, tx = 0, 0
		}
		if i0 > Nx-2 {
			i0, tx = Nx-2, 1
		}
		if j0 < 0 {
			j0, ty = 0, 0
		}
		if j0 > Ny-2 {
			j0, ty = Ny-2, 1
		}
		if Nx == 1 {
			i0, tx = 0, 0
		}
		if Ny == 1 {
			j0, ty = 0, 0
		}
		add := func(jj, ii int, wgt float64) {
			if wgt > 0 {
				d.Set(k, jj*Nx+ii, wgt)
			}
		}
		add(j0, i0, (1-tx)*(1-ty))
		add(j0, i0+1, tx*(1-ty))
		add(j0+1, i0, (1-tx)*ty)
		add(j0+1, i0+1, tx*ty)
	}
	pb.Weights = d.ToCSR()
	pb.scratch = make([][]float64, nVars)
	pb.values = make([][]float64, nVars)
	for n := 0; n < nVars; n++ {
		pb.scratch[n] = make([]float64, Nx*Ny)
		pb.values[n] = make([]float64, nProbe)
	}
	return
}

// open defers file creation until the first sample so a restarted run can
// flip the set into append mode before the history file is touched.
func (pb *ProbeSet) open() {
	var (
		err error
	)
	if pb.appendMode {
		pb.file, err = os.OpenFile(pb.FileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}
		return
	}
	if pb.file, err = os.Create(pb.FileName); err != nil {
		panic(err)
	}
	fmt.Fprintf(pb.file, "%s\n", pb.header)
}

// RecordProbes samples all probes from the current state and appends one CSV
// row, time first then one column per probe.
func (sw *SWE2D) RecordProbes() {
	var (
		pb     = sw.Probes
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		NxP    = Nx + 4
	)
	if pb.file == nil {
		pb.open()
	}
	for n := 0; n < 3; n++ {
		qD := sw.Q[n].DataP
		for j := 0; j < Ny; j++ {
			copy(pb.scratch[n][j*Nx:], qD[(j+2)*NxP+2:(j+2)*NxP+2+Nx])
		}
	}
	if len(pb.scratch) > 3 {
		var (
			bD         = sw.Topo.Centers.DataP
			w, hu, hv  = pb.scratch[0], pb.scratch[1], pb.scratch[2]
			hh, uu, vv = pb.scratch[3], pb.scratch[4], pb.scratch[5]
		)
		for i := range hh {
			hh[i] = w[i] - bD[i]
			if hh[i] < sw.DryTol {
				uu[i], vv[i] = 0, 0
				continue
			}
			uu[i], vv[i] = hu[i]/hh[i], hv[i]/hh[i]
		}
	}
	for n := range pb.scratch {
		pb.Weights.MulRawVec(pb.scratch[n], pb.values[n])
	}
	fmt.Fprintf(pb.file, "%.12e", sw.Time)
	for k, n := range pb.Fields {
		fmt.Fprintf(pb.file, ",%.12e", pb.values[n][k])
	}
	fmt.Fprintf(pb.file, "\n")
}

func (pb *ProbeSet) Close() {
	if pb.file != nil {
		pb.file.Close()
		pb.file = nil
	}
}
