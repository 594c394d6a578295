package dam_break

import (
	"fmt"
	"math"
)

/*
	Exact solutions of the one dimensional dam break over a flat frictionless
	bed, evaluated by self similar region in xi = (x - x0)/t. With a dry
	downstream bed the solution is Ritter's rarefaction running out to a dry
	front at xi = 2 sqrt(g hl). With water downstream the break drives a bore,
	and the constant state behind it comes from matching the rarefaction tail
	against the bore jump relations (Stoker's solution).
*/

type DamBreak struct {
	G      float64 // gravitational acceleration
	Hl, Hr float64 // upstream and downstream depths, Hl > Hr >= 0
	X0     float64 // dam location
	// Derived middle state for a wet downstream bed, zero when Hr = 0
	Hm, Um float64
	Bore   float64 // bore front speed
}

func NewDamBreak(g, hl, hr, x0 float64) (db *DamBreak) {
	if hl <= 0 || hr < 0 || hl <= hr {
		panic(fmt.Errorf("dam break requires hl > hr >= 0, have hl = %v, hr = %v", hl, hr))
	}
	db = &DamBreak{G: g, Hl: hl, Hr: hr, X0: x0}
	if hr > 0 {
		db.Hm = fzero(db.stoker_func, hr, hl)
		db.Um = 2 * (math.Sqrt(g*hl) - math.Sqrt(g*db.Hm))
		db.Bore = db.Um * db.Hm / (db.Hm - hr)
	}
	return
}

// stoker_func vanishes at the middle depth where the velocity behind the
// rarefaction tail equals the velocity behind the bore.
func (db *DamBreak) stoker_func(hm float64) (y float64) {
	var (
		g, hr = db.G, db.Hr
	)
	y = 2*(math.Sqrt(g*db.Hl)-math.Sqrt(g*hm)) -
		(hm-hr)*math.Sqrt(0.5*g*(hm+hr)/(hm*hr))
	return
}

// At evaluates depth and velocity at position x and time t > 0.
func (db *DamBreak) At(x, t float64) (h, u float64) {
	var (
		g, hl = db.G, db.Hl
		cl    = math.Sqrt(g * hl)
		xi    = (x - db.X0) / t
	)
	switch {
	case xi <= -cl:
		h, u = hl, 0
	case db.Hr == 0:
		if xi >= 2*cl {
			return // dry bed ahead of the front
		}
		c := (2*cl - xi) / 3.
		h, u = c*c/g, 2.*(xi+cl)/3.
	default:
		cm := math.Sqrt(g * db.Hm)
		switch {
		case xi < db.Um-cm:
			c := (2*cl - xi) / 3.
			h, u = c*c/g, 2.*(xi+cl)/3.
		case xi < db.Bore:
			h, u = db.Hm, db.Um
		default:
			h, u = db.Hr, 0
		}
	}
	return
}

// Profile evaluates the solution at the given positions.
func (db *DamBreak) Profile(x []float64, t float64) (H, U []float64) {
	H = make([]float64, len(x))
	U = make([]float64, len(x))
	for i, xx := range x {
		H[i], U[i] = db.At(xx, t)
	}
	return
}

// fzero locates the root of f inside (lo, hi) by bisection, f must change
// sign across the bracket.
func fzero(f func(h float64) (y float64), lo, hi float64) float64 {
	var (
		flo = f(lo)
	)
	for iter := 0; iter < 200; iter++ {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if math.Abs(fmid) < 1.e-14 || hi-lo < 1.e-15 {
			return mid
		}
		if flo*fmid > 0 {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}
