package FV2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/goswe/utils"
)

func TestGrid(t *testing.T) {
	{ // Coordinates and spacing
		g := NewUniformGrid(0, 4, -1, 1, 4, 2)
		assert.Equal(t, 1., g.Dx)
		assert.Equal(t, 1., g.Dy)
		assert.Equal(t, 2, g.Ngh)
		assert.True(t, nearVec([]float64{0.5, 1.5, 2.5, 3.5}, g.X.DataP, 1.e-12))
		assert.True(t, nearVec([]float64{0, 1, 2, 3, 4}, g.XV.DataP, 1.e-12))
		assert.True(t, nearVec([]float64{-1, 0, 1}, g.YV.DataP, 1.e-12))
	}
	{ // Cell location, boundary points belong to the closing cell
		g := NewUniformGrid(0, 4, 0, 2, 4, 2)
		i, j, ok := g.CellIndex(0.5, 0.5)
		assert.True(t, ok)
		assert.Equal(t, 0, i)
		assert.Equal(t, 0, j)
		i, j, ok = g.CellIndex(4, 2)
		assert.True(t, ok)
		assert.Equal(t, 3, i)
		assert.Equal(t, 1, j)
		_, _, ok = g.CellIndex(4.1, 1)
		assert.False(t, ok)
	}
}

func TestTopography(t *testing.T) {
	var (
		g     = NewUniformGrid(0, 2, 0, 1, 4, 2)
		slope = func(x, y float64) float64 { return 0.2*x + 0.1*y }
	)
	vertex := utils.NewMatrix(g.Ny+1, g.Nx+1)
	for j := 0; j <= g.Ny; j++ {
		for i := 0; i <= g.Nx; i++ {
			vertex.Set(j, i, slope(g.XV.AtVec(i), g.YV.AtVec(j)))
		}
	}
	tp := NewTopography(g, vertex)
	{ // Face and cell averages of a linear bottom are exact point samples
		for j := 0; j < g.Ny; j++ {
			for i := 0; i <= g.Nx; i++ {
				assert.True(t, near(slope(g.XV.AtVec(i), g.Y.AtVec(j)), tp.XFcenters.At(j, i), 1.e-12))
			}
		}
		for j := 0; j <= g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				assert.True(t, near(slope(g.X.AtVec(i), g.YV.AtVec(j)), tp.YFcenters.At(j, i), 1.e-12))
			}
		}
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				assert.True(t, near(slope(g.X.AtVec(i), g.Y.AtVec(j)), tp.Centers.At(j, i), 1.e-12))
			}
		}
	}
	{ // Cell centers sit midway between opposing face pairs in both directions
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				assert.True(t, near(0.5*(tp.XFcenters.At(j, i)+tp.XFcenters.At(j, i+1)), tp.Centers.At(j, i), 1.e-12))
				assert.True(t, near(0.5*(tp.YFcenters.At(j, i)+tp.YFcenters.At(j+1, i)), tp.Centers.At(j, i), 1.e-12))
			}
		}
	}
	{ // Gradients of a linear bottom are its slopes
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				assert.True(t, near(0.2, tp.GradX.At(j, i), 1.e-12))
				assert.True(t, near(0.1, tp.GradY.At(j, i), 1.e-12))
			}
		}
	}
}

func TestInterpolateCloud(t *testing.T) {
	var (
		plane = func(x, y float64) float64 { return 2*x + 3*y + 1 }
	)
	{ // Linear interpolation reproduces a planar cloud exactly inside the hull
		XY := [][2]float64{{0, 0}, {2, 0}, {0, 2}, {2, 2}, {1, 1}, {0.5, 1.5}}
		Z := make([]float64, len(XY))
		for n, p := range XY {
			Z[n] = plane(p[0], p[1])
		}
		g := NewUniformGrid(0, 2, 0, 2, 4, 4)
		vertex := InterpolateCloud(XY, Z, g.XV, g.YV)
		for j := 0; j <= g.Ny; j++ {
			for i := 0; i <= g.Nx; i++ {
				assert.True(t, near(plane(g.XV.AtVec(i), g.YV.AtVec(j)), vertex.At(j, i), 1.e-10))
			}
		}
	}
	{ // Lattice vertices outside the hull take the nearest sample
		XY := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
		Z := []float64{5, 6, 7, 8}
		XV := utils.NewVector(2, []float64{-1, 0.5})
		YV := utils.NewVector(1, []float64{-1})
		vertex := InterpolateCloud(XY, Z, XV, YV)
		assert.Equal(t, 5., vertex.At(0, 0))
	}
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
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
