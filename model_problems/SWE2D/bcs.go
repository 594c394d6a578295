package SWE2D

import (
	"fmt"

	"github.com/notargets/goswe/types"
	"github.com/notargets/goswe/utils"
)

type ghostUpdater func(Q [3]utils.Matrix)

/*
	The two ghost layers behind each domain edge are refilled before every
	residual evaluation by updaters compiled once from the case file, one per
	edge per conservative variable. Ghost strips span only the interior rows
	or columns, the corner ghosts are never read by the directional stencils.
	West and east run before south and north, so the horizontal strips cannot
	overwrite vertical ghost data.
*/
func (sw *SWE2D) SetupBCs() {
	for ef := types.Edge_West; ef <= types.Edge_North; ef++ {
		bc := sw.IP.Boundary.Edge(ef)
		for n := 0; n < 3; n++ {
			flag := types.NewBCFLAG(bc.Types[n])
			sw.ghUpdaters = append(sw.ghUpdaters, sw.compileBC(ef, n, flag, bc.Values[n]))
		}
	}
}

func (sw *SWE2D) UpdateGhosts(Q [3]utils.Matrix) {
	for _, update := range sw.ghUpdaters {
		update(Q)
	}
}

/*
compileBC builds the ghost updater for one edge and one conservative
variable. The index arguments of the strip builders are padded row or column
positions: g2 the outer ghost, g1 the inner ghost, c1 the edge cell, c2 the
next cell inward, and p2, p1 the periodic donors for g2 and g1.
*/
func (sw *SWE2D) compileBC(ef types.EdgeFLAG, n int, flag types.BCFLAG, value *float64) ghostUpdater {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
	)
	switch ef {
	case types.Edge_West:
		return sw.verticalBC(n, flag, value, 0, 1, 2, 3, Nx, Nx+1)
	case types.Edge_East:
		return sw.verticalBC(n, flag, value, Nx+3, Nx+2, Nx+1, Nx, 3, 2)
	case types.Edge_South:
		return sw.horizontalBC(n, flag, value, 0, 1, 2, 3, Ny, Ny+1)
	case types.Edge_North:
		return sw.horizontalBC(n, flag, value, Ny+3, Ny+2, Ny+1, Ny, 3, 2)
	}
	panic(fmt.Errorf("unable to compile boundary condition for edge %s", ef))
}

func (sw *SWE2D) verticalBC(n int, flag types.BCFLAG, value *float64,
	g2, g1, c1, c2, p2, p1 int) ghostUpdater {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		NxP    = Nx + 4
		bD     = sw.Topo.Centers.DataP
	)
	switch flag {
	case types.BC_Periodic:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for r := 2; r < Ny+2; r++ {
				qD[r*NxP+g2], qD[r*NxP+g1] = qD[r*NxP+p2], qD[r*NxP+p1]
			}
		}
	case types.BC_Outflow:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for r := 2; r < Ny+2; r++ {
				e := qD[r*NxP+c1]
				qD[r*NxP+g2], qD[r*NxP+g1] = e, e
			}
		}
	case types.BC_Extrap:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for r := 2; r < Ny+2; r++ {
				d := qD[r*NxP+c1] - qD[r*NxP+c2]
				qD[r*NxP+g1] = qD[r*NxP+c1] + d
				qD[r*NxP+g2] = qD[r*NxP+c1] + 2*d
			}
		}
	case types.BC_Const:
		v := *value
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for r := 2; r < Ny+2; r++ {
				qD[r*NxP+g2], qD[r*NxP+g1] = v, v
			}
		}
	case types.BC_Inflow:
		// The prescribed value is a velocity, the momentum follows the
		// instantaneous depth of the adjacent edge cell
		v := *value
		return func(Q [3]utils.Matrix) {
			var (
				qD = Q[n].DataP
				wD = Q[0].DataP
			)
			for r := 2; r < Ny+2; r++ {
				h := wD[r*NxP+c1] - bD[(r-2)*Nx+c1-2]
				if h < 0 {
					h = 0
				}
				qD[r*NxP+g2], qD[r*NxP+g1] = h*v, h*v
			}
		}
	}
	panic(fmt.Errorf("unable to compile boundary condition %v", flag))
}

func (sw *SWE2D) horizontalBC(n int, flag types.BCFLAG, value *float64,
	g2, g1, c1, c2, p2, p1 int) ghostUpdater {
	var (
		Nx  = sw.Grid.Nx
		NxP = Nx + 4
		bD  = sw.Topo.Centers.DataP
	)
	switch flag {
	case types.BC_Periodic:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for c := 2; c < Nx+2; c++ {
				qD[g2*NxP+c], qD[g1*NxP+c] = qD[p2*NxP+c], qD[p1*NxP+c]
			}
		}
	case types.BC_Outflow:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for c := 2; c < Nx+2; c++ {
				e := qD[c1*NxP+c]
				qD[g2*NxP+c], qD[g1*NxP+c] = e, e
			}
		}
	case types.BC_Extrap:
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for c := 2; c < Nx+2; c++ {
				d := qD[c1*NxP+c] - qD[c2*NxP+c]
				qD[g1*NxP+c] = qD[c1*NxP+c] + d
				qD[g2*NxP+c] = qD[c1*NxP+c] + 2*d
			}
		}
	case types.BC_Const:
		v := *value
		return func(Q [3]utils.Matrix) {
			qD := Q[n].DataP
			for c := 2; c < Nx+2; c++ {
				qD[g2*NxP+c], qD[g1*NxP+c] = v, v
			}
		}
	case types.BC_Inflow:
		v := *value
		return func(Q [3]utils.Matrix) {
			var (
				qD = Q[n].DataP
				wD = Q[0].DataP
			)
			for c := 2; c < Nx+2; c++ {
				h := wD[c1*NxP+c] - bD[(c1-2)*Nx+c-2]
				if h < 0 {
					h = 0
				}
				qD[g2*NxP+c], qD[g1*NxP+c] = h*v, h*v
			}
		}
	}
	panic(fmt.Errorf("unable to compile boundary condition %v", flag))
}
