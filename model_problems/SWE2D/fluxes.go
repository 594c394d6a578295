package SWE2D

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

type FluxType uint

const (
	FLUX_CentralUpwind FluxType = iota
	FLUX_Rusanov
)

var (
	FluxNames = map[string]FluxType{
		"central-upwind": FLUX_CentralUpwind,
		"rusanov":        FLUX_Rusanov,
	}
	FluxPrintNames = []string{"Central Upwind", "Rusanov"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

/*
ComputeFluxes evaluates the local wave speed bounds, the one sided physical
fluxes and the single valued numerical flux at every face from the
reconstructed face states. The returned amax and bmax are the largest wave
speed magnitudes in x and y, the ingredients of the stable time step bound.
*/
func (sw *SWE2D) ComputeFluxes() (amax, bmax float64) {
	var (
		NP = sw.ParallelDegree
		wg = sync.WaitGroup{}
		aP = make([]float64, NP)
		bP = make([]float64, NP)
	)
	for np := 0; np < NP; np++ {
		wg.Add(2)
		go func(np int) {
			jmin, jmax := sw.Partitions.GetBucketRange(np)
			aP[np] = sw.fluxRowsX(jmin, jmax)
			wg.Done()
		}(np)
		go func(np int) {
			fjmin, fjmax := sw.PartitionsYFace.GetBucketRange(np)
			bP[np] = sw.fluxRowsY(fjmin, fjmax)
			wg.Done()
		}(np)
	}
	wg.Wait()
	for np := 0; np < NP; np++ {
		amax = math.Max(amax, aP[np])
		bmax = math.Max(bmax, bP[np])
	}
	return
}

func (sw *SWE2D) fluxRowsX(jmin, jmax int) (amax float64) {
	var (
		ncf      = sw.Grid.Nx + 1
		g        = sw.Gravity
		m, p     = &sw.XFaces.Minus, &sw.XFaces.Plus
		hmD, hpD = m.H.DataP, p.H.DataP
		umD, upD = m.U.DataP, p.U.DataP
		vmD, vpD = m.V.DataP, p.V.DataP
		amD, apD = sw.XFaces.Am.DataP, sw.XFaces.Ap.DataP
	)
	for idx := jmin * ncf; idx < jmax*ncf; idx++ {
		var (
			hm, hp = hmD[idx], hpD[idx]
			cm, cp = math.Sqrt(g * hm), math.Sqrt(g * hp)
		)
		ap := math.Max(math.Max(umD[idx]+cm, upD[idx]+cp), 0)
		am := math.Min(math.Min(umD[idx]-cm, upD[idx]-cp), 0)
		amD[idx], apD[idx] = am, ap
		if ap > amax {
			amax = ap
		}
		if -am > amax {
			amax = -am
		}
		// Physical flux F evaluated from each side
		qm := [3]float64{m.Q[0].DataP[idx], m.Q[1].DataP[idx], m.Q[2].DataP[idx]}
		qp := [3]float64{p.Q[0].DataP[idx], p.Q[1].DataP[idx], p.Q[2].DataP[idx]}
		fm := [3]float64{qm[1], qm[1]*umD[idx] + 0.5*g*hm*hm, qm[1] * vmD[idx]}
		fp := [3]float64{qp[1], qp[1]*upD[idx] + 0.5*g*hp*hp, qp[1] * vpD[idx]}
		for n := 0; n < 3; n++ {
			m.Flux[n].DataP[idx], p.Flux[n].DataP[idx] = fm[n], fp[n]
		}
		flux := sw.NumFluxCalc(qm, qp, fm, fp, am, ap)
		for n := 0; n < 3; n++ {
			sw.XFaces.Flux[n].DataP[idx] = flux[n]
		}
	}
	return
}

func (sw *SWE2D) fluxRowsY(fjmin, fjmax int) (bmax float64) {
	var (
		Nx       = sw.Grid.Nx
		g        = sw.Gravity
		m, p     = &sw.YFaces.Minus, &sw.YFaces.Plus
		hmD, hpD = m.H.DataP, p.H.DataP
		umD, upD = m.U.DataP, p.U.DataP
		vmD, vpD = m.V.DataP, p.V.DataP
		amD, apD = sw.YFaces.Am.DataP, sw.YFaces.Ap.DataP
	)
	for idx := fjmin * Nx; idx < fjmax*Nx; idx++ {
		var (
			hm, hp = hmD[idx], hpD[idx]
			cm, cp = math.Sqrt(g * hm), math.Sqrt(g * hp)
		)
		bp := math.Max(math.Max(vmD[idx]+cm, vpD[idx]+cp), 0)
		bm := math.Min(math.Min(vmD[idx]-cm, vpD[idx]-cp), 0)
		amD[idx], apD[idx] = bm, bp
		if bp > bmax {
			bmax = bp
		}
		if -bm > bmax {
			bmax = -bm
		}
		// Physical flux G evaluated from each side
		qm := [3]float64{m.Q[0].DataP[idx], m.Q[1].DataP[idx], m.Q[2].DataP[idx]}
		qp := [3]float64{p.Q[0].DataP[idx], p.Q[1].DataP[idx], p.Q[2].DataP[idx]}
		fm := [3]float64{qm[2], qm[2] * umD[idx], qm[2]*vmD[idx] + 0.5*g*hm*hm}
		fp := [3]float64{qp[2], qp[2] * upD[idx], qp[2]*vpD[idx] + 0.5*g*hp*hp}
		for n := 0; n < 3; n++ {
			m.Flux[n].DataP[idx], p.Flux[n].DataP[idx] = fm[n], fp[n]
		}
		flux := sw.NumFluxCalc(qm, qp, fm, fp, bm, bp)
		for n := 0; n < 3; n++ {
			sw.YFaces.Flux[n].DataP[idx] = flux[n]
		}
	}
	return
}

// CentralUpwindFlux is the Kurganov central upwind flux. A speed spread below
// tol means both sides are at rest and the flux is zero, which also avoids
// the divide by zero on dry faces.
func (sw *SWE2D) CentralUpwindFlux(qm, qp, fm, fp [3]float64, am, ap float64) (flux [3]float64) {
	var (
		d = ap - am
	)
	if d < sw.Tol {
		return
	}
	ood := 1. / d
	for n := 0; n < 3; n++ {
		flux[n] = (ap*fm[n] - am*fp[n] + ap*am*(qp[n]-qm[n])) * ood
	}
	return
}

// RusanovFlux is the local Lax Friedrichs flux using the largest of the two
// wave speed bounds.
func (sw *SWE2D) RusanovFlux(qm, qp, fm, fp [3]float64, am, ap float64) (flux [3]float64) {
	var (
		c = math.Max(ap, -am)
	)
	for n := 0; n < 3; n++ {
		flux[n] = 0.5*(fm[n]+fp[n]) - 0.5*c*(qp[n]-qm[n])
	}
	return
}
