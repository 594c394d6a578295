package SWE2D

import (
	"fmt"
	"path/filepath"

	"github.com/notargets/goswe/FV2D"
)

// resolvePath interprets case file references relative to the case folder.
func (sw *SWE2D) resolvePath(name string) (path string) {
	path = name
	if !filepath.IsAbs(name) && sw.CaseDir != "" {
		path = filepath.Join(sw.CaseDir, name)
	}
	return
}

// InitializeTopography builds the bed from the case file: an Esri ASCII
// raster of vertex elevations, a scattered xyz cloud triangulated onto the
// vertex lattice, or a flat bed when neither is given.
func (sw *SWE2D) InitializeTopography(verbose bool) {
	var (
		tc = sw.IP.Topography
	)
	switch {
	case tc.File != "":
		sw.Topo = FV2D.NewTopographyFromFile(sw.Grid, sw.resolvePath(tc.File), verbose)
	case tc.XYZFile != "":
		sw.Topo = FV2D.NewTopographyFromCloud(sw.Grid, sw.resolvePath(tc.XYZFile), verbose)
	default:
		sw.Topo = FV2D.NewFlatTopography(sw.Grid)
	}
}

/*
InitializeSolution fills the conservative state from the case file, either
constant values everywhere or a previously written binary snapshot. The
surface elevation is then clamped to the bed, w = max(w, b), so the run
starts from a non negative depth no matter what the file said.
*/
func (sw *SWE2D) InitializeSolution(verbose bool) {
	var (
		ic     = sw.IP.Initial
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		NxP    = Nx + 4
	)
	switch {
	case ic.Values != nil:
		vals := *ic.Values
		for n := 0; n < 3; n++ {
			qD := sw.Q[n].DataP
			for j := 0; j < Ny; j++ {
				for i := 0; i < Nx; i++ {
					qD[(j+2)*NxP+i+2] = vals[n]
				}
			}
		}
	case ic.File != "":
		sw.readSnapshotInto(sw.resolvePath(ic.File))
	}
	var (
		wD = sw.Q[0].DataP
		bD = sw.Topo.Centers.DataP
	)
	for j := 0; j < Ny; j++ {
		for i := 0; i < Nx; i++ {
			if wD[(j+2)*NxP+i+2] < bD[j*Nx+i] {
				wD[(j+2)*NxP+i+2] = bD[j*Nx+i]
			}
		}
	}
	if verbose {
		fmt.Printf("Initialized solution, total volume = %8.5f\n", sw.TotalVolume())
	}
}
