package SWE2D

import (
	"fmt"
	"strings"
	"time"

	"github.com/notargets/goswe/utils"
)

type PlotField uint8

const (
	PLOT_Surface PlotField = iota
	PLOT_XMomentum
	PLOT_YMomentum
	PLOT_Depth
)

var (
	plotFieldNames = map[string]PlotField{
		"w":  PLOT_Surface,
		"hu": PLOT_XMomentum,
		"hv": PLOT_YMomentum,
		"h":  PLOT_Depth,
	}
	plotFieldPrintNames = []string{"w", "hu", "hv", "h"}
)

func NewPlotField(label string) (pf PlotField) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if pf, ok = plotFieldNames[label]; !ok {
		err = fmt.Errorf("unable to plot field named %s", label)
		panic(err)
	}
	return
}

// PlotMeta carries the interactive graphics request from the command line
// into the solve loop.
type PlotMeta struct {
	Plot            bool
	Field           PlotField
	FrameTime       time.Duration
	StepsBeforePlot int
}

type ChartState struct {
	chart *utils.LineChart
}

/*
PlotSolution draws the selected field along the domain centerline row
together with the bed elevation, one frame per call. The vertical range is
frozen on the first frame.
*/
func (sw *SWE2D) PlotSolution(pm *PlotMeta) {
	var (
		g      = sw.Grid
		Nx, Ny = g.Nx, g.Ny
		NxP    = Nx + 4
		j      = Ny / 2
		f      = make([]float64, Nx)
		b      = make([]float64, Nx)
		bD     = sw.Topo.Centers.DataP
	)
	switch pm.Field {
	case PLOT_Depth:
		wD := sw.Q[0].DataP
		for i := range f {
			f[i] = wD[(j+2)*NxP+i+2] - bD[j*Nx+i]
		}
	default:
		qD := sw.Q[pm.Field].DataP
		for i := range f {
			f[i] = qD[(j+2)*NxP+i+2]
		}
	}
	for i := range b {
		b[i] = bD[j*Nx+i]
	}
	if sw.chart.chart == nil {
		fmin, fmax := utils.MinMax(f)
		bmin, bmax := utils.MinMax(b)
		if bmin < fmin {
			fmin = bmin
		}
		if bmax > fmax {
			fmax = bmax
		}
		span := fmax - fmin
		if span == 0 {
			span = 1
		}
		sw.chart.chart = utils.NewLineChart(1920, 1080,
			g.West, g.East, fmin-0.1*span, fmax+0.1*span)
	}
	sw.chart.chart.Plot(0, g.X.DataP, b, -0.7, "bed")
	sw.chart.chart.Plot(pm.FrameTime, g.X.DataP, f, 0.7, plotFieldPrintNames[pm.Field])
}
