package FV2D

import (
	"fmt"

	"github.com/notargets/goswe/utils"
)

/*
UniformGrid is a structured finite volume grid over a rectangular domain.
Cell (j,i) spans [west+i*dx, west+(i+1)*dx] x [south+j*dy, south+(j+1)*dy],
row index j increases northward. Two ghost layers surround the interior so
a five cell reconstruction stencil never runs off the stored data.
*/
type UniformGrid struct {
	West, East, South, North float64
	Nx, Ny                   int
	Ngh                      int
	Dx, Dy                   float64
	X, Y                     utils.Vector // interior cell center coordinates
	XV, YV                   utils.Vector // vertex line coordinates
}

func NewUniformGrid(west, east, south, north float64, nx, ny int) (g *UniformGrid) {
	if east <= west || north <= south {
		panic(fmt.Errorf("domain extents must be ordered, have west/east = %f, %f, south/north = %f, %f",
			west, east, south, north))
	}
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("grid dimensions must be positive, have nx = %d, ny = %d", nx, ny))
	}
	g = &UniformGrid{
		West: west, East: east, South: south, North: north,
		Nx:  nx,
		Ny:  ny,
		Ngh: 2,
		Dx:  (east - west) / float64(nx),
		Dy:  (north - south) / float64(ny),
	}
	g.XV = utils.NewVectorLinspace(west, east, nx+1)
	g.YV = utils.NewVectorLinspace(south, north, ny+1)
	g.X = utils.NewVectorLinspace(west+0.5*g.Dx, east-0.5*g.Dx, nx)
	g.Y = utils.NewVectorLinspace(south+0.5*g.Dy, north-0.5*g.Dy, ny)
	return
}

// CellIndex locates the cell containing (x, y). Points on the east or north
// domain edges belong to the last cell, points outside return ok false.
func (g *UniformGrid) CellIndex(x, y float64) (i, j int, ok bool) {
	if x < g.West || x > g.East || y < g.South || y > g.North {
		return
	}
	i = int((x - g.West) / g.Dx)
	j = int((y - g.South) / g.Dy)
	if i == g.Nx {
		i--
	}
	if j == g.Ny {
		j--
	}
	ok = true
	return
}
