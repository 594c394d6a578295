package SWE2D

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/notargets/goswe/utils"
)

/*
	Snapshots are flat binary files, one per output instant, named
	save_NNNN.bin in the case folder. The header carries the interior extents
	and the exact output time so a continued run can verify it resumes from
	the instant it names, then w, hu, hv interior values in row major order.
	Byte order is little endian throughout.
*/

func (sw *SWE2D) snapshotName(tidx int) (fileName string) {
	fileName = filepath.Join(sw.CaseDir, fmt.Sprintf("save_%04d.bin", tidx))
	return
}

func (sw *SWE2D) WriteSnapshot() {
	var (
		err      error
		file     *os.File
		Nx, Ny   = sw.Grid.Nx, sw.Grid.Ny
		NxP      = Nx + 4
		fileName = sw.snapshotName(sw.tidx)
		irate    = int64(-1)
	)
	if file, err = os.Create(fileName); err != nil {
		panic(err)
	}
	defer file.Close()
	if sw.PtSrc != nil {
		irate = int64(sw.PtSrc.IRate)
	}
	binary.Write(file, binary.LittleEndian, int64(Nx))
	binary.Write(file, binary.LittleEndian, int64(Ny))
	binary.Write(file, binary.LittleEndian, sw.Times.T[sw.tidx])
	binary.Write(file, binary.LittleEndian, irate)
	row := make([]float64, Nx)
	for n := 0; n < 3; n++ {
		qD := sw.Q[n].DataP
		for j := 0; j < Ny; j++ {
			copy(row, qD[(j+2)*NxP+2:(j+2)*NxP+2+Nx])
			if err = binary.Write(file, binary.LittleEndian, row); err != nil {
				panic(err)
			}
		}
	}
	fmt.Printf("Wrote snapshot T=%8.5f to %s\n", sw.Times.T[sw.tidx], fileName)
}

func (sw *SWE2D) readSnapshotInto(fileName string) (t float64, irate int64) {
	var (
		err      error
		file     *os.File
		Nx, Ny   = sw.Grid.Nx, sw.Grid.Ny
		NxP      = Nx + 4
		nxF, nyF int64
	)
	if file, err = os.Open(fileName); err != nil {
		panic(err)
	}
	defer file.Close()
	binary.Read(file, binary.LittleEndian, &nxF)
	binary.Read(file, binary.LittleEndian, &nyF)
	if int(nxF) != Nx || int(nyF) != Ny {
		panic(fmt.Errorf("snapshot %s has extents %dx%d, want %dx%d",
			fileName, nxF, nyF, Nx, Ny))
	}
	binary.Read(file, binary.LittleEndian, &t)
	binary.Read(file, binary.LittleEndian, &irate)
	row := make([]float64, Nx)
	for n := 0; n < 3; n++ {
		qD := sw.Q[n].DataP
		for j := 0; j < Ny; j++ {
			if err = binary.Read(file, binary.LittleEndian, row); err != nil {
				panic(err)
			}
			copy(qD[(j+2)*NxP+2:], row)
		}
	}
	return
}

/*
RestartFrom resumes a run from a previously written snapshot. The requested
time must equal one of the timeline instants exactly, the same values the
snapshots were labeled with, so a resumed run reproduces the interrupted one.
*/
func (sw *SWE2D) RestartFrom(cont float64) {
	var (
		T    = sw.Times.T
		tidx = -1
	)
	for k, t := range T {
		if t == cont {
			tidx = k
			break
		}
	}
	if tidx < 0 {
		panic(fmt.Errorf("restart time %v was not found among the output times %v", cont, T))
	}
	if tidx == len(T)-1 {
		panic(fmt.Errorf("restart time %v is the final output time, nothing left to run", cont))
	}
	t, irate := sw.readSnapshotInto(sw.snapshotName(tidx))
	if t != cont {
		panic(fmt.Errorf("snapshot %s is labeled T=%v, want T=%v",
			sw.snapshotName(tidx), t, cont))
	}
	sw.tidx = tidx
	sw.Time = cont
	if sw.PtSrc != nil && irate >= 0 {
		sw.PtSrc.IRate = int(irate)
		sw.PtSrc.fresh = false
	}
	if sw.Probes != nil {
		sw.Probes.appendMode = true
	}
	fmt.Printf("Restarting from T=%8.5f (output index %d)\n", cont, tidx)
}

/*
ExportEsriASCII writes an interior cell centered field as an Esri ASCII
raster, rows north to south. The format carries a single cell size, so the
export requires square cells.
*/
func (sw *SWE2D) ExportEsriASCII(m utils.Matrix, fileName string) {
	var (
		g      = sw.Grid
		Nx, Ny = g.Nx, g.Ny
	)
	if math.Abs(g.Dx-g.Dy) > 1.e-12*math.Min(g.Dx, g.Dy) {
		panic("Esri ASCII export requires square cells")
	}
	file, err := os.Create(fileName)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	fmt.Fprintf(file, "ncols %d\n", Nx)
	fmt.Fprintf(file, "nrows %d\n", Ny)
	fmt.Fprintf(file, "xllcorner %v\n", g.West)
	fmt.Fprintf(file, "yllcorner %v\n", g.South)
	fmt.Fprintf(file, "cellsize %v\n", g.Dx)
	fmt.Fprintf(file, "NODATA_value -9999\n")
	mD := m.DataP
	for j := Ny - 1; j >= 0; j-- {
		for i := 0; i < Nx; i++ {
			if i > 0 {
				fmt.Fprintf(file, " ")
			}
			fmt.Fprintf(file, "%.8e", mD[j*Nx+i])
		}
		fmt.Fprintf(file, "\n")
	}
}
