package FV2D

import (
	"fmt"
	"math"

	"github.com/notargets/goswe/readfiles"
	"github.com/notargets/goswe/utils"
)

/*
Topography carries the bottom elevation sampled at grid vertices and the
derived face center, cell center and gradient values the solver needs.

All derived values are averages of the vertex raster:
  - x-face centers average the vertex pair spanning the face
  - y-face centers average the vertex pair spanning the face
  - cell centers average the four surrounding vertices

so every cell center equals the mean of its opposing face pair in both
directions, which keeps a lake at rest exactly at rest after reconstruction.
*/
type Topography struct {
	Vertex    utils.Matrix // (Ny+1) x (Nx+1)
	XFcenters utils.Matrix // Ny x (Nx+1)
	YFcenters utils.Matrix // (Ny+1) x Nx
	Centers   utils.Matrix // Ny x Nx
	GradX     utils.Matrix // Ny x Nx, from x-face pair differences
	GradY     utils.Matrix // Ny x Nx, from y-face pair differences
}

func NewTopography(g *UniformGrid, vertex utils.Matrix) (tp *Topography) {
	var (
		nr, nc = vertex.Dims()
	)
	if nr != g.Ny+1 || nc != g.Nx+1 {
		panic(fmt.Errorf("vertex elevation raster is %d x %d, grid needs %d x %d",
			nr, nc, g.Ny+1, g.Nx+1))
	}
	utils.IsNanPanic(vertex)
	tp = &Topography{
		Vertex:    vertex,
		XFcenters: utils.NewMatrix(g.Ny, g.Nx+1),
		YFcenters: utils.NewMatrix(g.Ny+1, g.Nx),
		Centers:   utils.NewMatrix(g.Ny, g.Nx),
		GradX:     utils.NewMatrix(g.Ny, g.Nx),
		GradY:     utils.NewMatrix(g.Ny, g.Nx),
	}
	var (
		ncv        = g.Nx + 1
		vd         = vertex.DataP
		xf, yf, ce = tp.XFcenters.DataP, tp.YFcenters.DataP, tp.Centers.DataP
	)
	for j := 0; j < g.Ny; j++ {
		for i := 0; i <= g.Nx; i++ {
			xf[j*ncv+i] = 0.5 * (vd[j*ncv+i] + vd[(j+1)*ncv+i])
		}
	}
	for j := 0; j <= g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			yf[j*g.Nx+i] = 0.5 * (vd[j*ncv+i] + vd[j*ncv+i+1])
		}
	}
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			ce[j*g.Nx+i] = 0.25 * (vd[j*ncv+i] + vd[j*ncv+i+1] + vd[(j+1)*ncv+i] + vd[(j+1)*ncv+i+1])
			tp.GradX.DataP[j*g.Nx+i] = (xf[j*ncv+i+1] - xf[j*ncv+i]) / g.Dx
			tp.GradY.DataP[j*g.Nx+i] = (yf[(j+1)*g.Nx+i] - yf[j*g.Nx+i]) / g.Dy
		}
	}
	tp.Vertex.SetReadOnly("Topography.Vertex")
	tp.XFcenters.SetReadOnly("Topography.XFcenters")
	tp.YFcenters.SetReadOnly("Topography.YFcenters")
	tp.Centers.SetReadOnly("Topography.Centers")
	tp.GradX.SetReadOnly("Topography.GradX")
	tp.GradY.SetReadOnly("Topography.GradY")
	return
}

// NewFlatTopography builds a zero elevation bottom for cases that omit a
// topography section.
func NewFlatTopography(g *UniformGrid) (tp *Topography) {
	return NewTopography(g, utils.NewMatrix(g.Ny+1, g.Nx+1))
}

// NewTopographyFromFile reads an Esri ASCII raster of vertex elevations and
// checks it is aligned with the grid vertex lattice.
func NewTopographyFromFile(g *UniformGrid, filename string, verbose bool) (tp *Topography) {
	var (
		eg  = readfiles.ReadEsriASCII(filename, verbose)
		tol = 1.e-6 * math.Min(g.Dx, g.Dy)
	)
	if eg.Ncols != g.Nx+1 || eg.Nrows != g.Ny+1 {
		panic(fmt.Errorf("raster %s is %d x %d, grid vertices are %d x %d",
			filename, eg.Nrows, eg.Ncols, g.Ny+1, g.Nx+1))
	}
	if math.Abs(eg.Cellsize-g.Dx) > tol || math.Abs(eg.Cellsize-g.Dy) > tol {
		panic(fmt.Errorf("raster %s cellsize %f does not match grid spacing dx = %f, dy = %f, use an xyz cloud for anisotropic grids",
			filename, eg.Cellsize, g.Dx, g.Dy))
	}
	// A vertex registered raster extends half a cell beyond the domain corner
	if math.Abs(eg.Xll+0.5*eg.Cellsize-g.West) > tol || math.Abs(eg.Yll+0.5*eg.Cellsize-g.South) > tol {
		panic(fmt.Errorf("raster %s lower left corner (%f, %f) is not registered on the grid origin (%f, %f)",
			filename, eg.Xll, eg.Yll, g.West, g.South))
	}
	return NewTopography(g, eg.Values)
}

// NewTopographyFromCloud triangulates scattered elevation samples and
// interpolates them onto the grid vertex lattice.
func NewTopographyFromCloud(g *UniformGrid, filename string, verbose bool) (tp *Topography) {
	XY, Z := readfiles.ReadXYZ(filename, verbose)
	return NewTopography(g, InterpolateCloud(XY, Z, g.XV, g.YV))
}
