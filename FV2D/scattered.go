package FV2D

import (
	"math"

	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/goswe/utils"
)

/*
InterpolateCloud resamples scattered elevation samples onto the grid vertex
lattice. The cloud is Delaunay triangulated, each lattice vertex is located
within a triangle and linearly interpolated with barycentric weights.
Vertices outside the convex hull of the cloud take the nearest sample value.
*/
func InterpolateCloud(XY [][2]float64, Z []float64, XV, YV utils.Vector) (vertex utils.Matrix) {
	var (
		tris = triangle.Delaunay(XY)
		nvx  = XV.Len()
		nvy  = YV.Len()
		last int // lattice vertices visit in row order, neighbors usually share a triangle
	)
	vertex = utils.NewMatrix(nvy, nvx)
	vd := vertex.DataP
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			vd[j*nvx+i] = interpPoint(XV.AtVec(i), YV.AtVec(j), XY, Z, tris, &last)
		}
	}
	return
}

func interpPoint(x, y float64, XY [][2]float64, Z []float64, tris [][3]int32, last *int) (z float64) {
	var (
		tol = 1.e-12
	)
	for n := 0; n < len(tris); n++ {
		tn := (n + *last) % len(tris)
		t := tris[tn]
		w0, w1, w2, ok := barycentric(x, y, XY[t[0]], XY[t[1]], XY[t[2]])
		if ok && w0 >= -tol && w1 >= -tol && w2 >= -tol {
			*last = tn
			z = w0*Z[t[0]] + w1*Z[t[1]] + w2*Z[t[2]]
			return
		}
	}
	z = nearestSample(x, y, XY, Z)
	return
}

func barycentric(x, y float64, p0, p1, p2 [2]float64) (w0, w1, w2 float64, ok bool) {
	det := (p1[1]-p2[1])*(p0[0]-p2[0]) + (p2[0]-p1[0])*(p0[1]-p2[1])
	if math.Abs(det) < 1.e-14 {
		return // degenerate triangle
	}
	w0 = ((p1[1]-p2[1])*(x-p2[0]) + (p2[0]-p1[0])*(y-p2[1])) / det
	w1 = ((p2[1]-p0[1])*(x-p2[0]) + (p0[0]-p2[0])*(y-p2[1])) / det
	w2 = 1 - w0 - w1
	ok = true
	return
}

func nearestSample(x, y float64, XY [][2]float64, Z []float64) (z float64) {
	var (
		dMin = math.MaxFloat64
	)
	for n, p := range XY {
		d := (p[0]-x)*(p[0]-x) + (p[1]-y)*(p[1]-y)
		if d < dMin {
			dMin = d
			z = Z[n]
		}
	}
	return
}
