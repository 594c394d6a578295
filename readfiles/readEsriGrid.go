package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/goswe/utils"
)

/*
EsriGrid holds an Esri ASCII raster. The file stores the northernmost row
first; Values stores the southernmost row first so that row index increases
with y, matching the solver's grid orientation.
*/
type EsriGrid struct {
	Ncols, Nrows       int
	Xll, Yll, Cellsize float64
	NoData             float64
	HasNoData          bool
	Values             utils.Matrix
}

func ReadEsriASCII(filename string, verbose bool) (eg EsriGrid) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading Esri ASCII file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	eg = readEsriRaster(bufio.NewReader(file))
	if verbose {
		fmt.Printf("Ncols = %d, Nrows = %d\nBounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			eg.Ncols, eg.Nrows,
			eg.Xll, eg.Xll+float64(eg.Ncols)*eg.Cellsize,
			eg.Yll, eg.Yll+float64(eg.Nrows)*eg.Cellsize)
	}
	return
}

func readEsriRaster(reader *bufio.Reader) (eg EsriGrid) {
	var (
		err              error
		line, key        string
		xCenter, yCenter bool
	)
	// Header lines are "keyword value" pairs, the raster body begins at the
	// first line whose leading token is not a keyword
HEADER:
	for {
		line = getLine(reader)
		if _, err = fmt.Sscanf(line, "%32s", &key); err != nil {
			panic(fmt.Errorf("badly formed line [%s]\n %s", line, err))
		}
		var val float64
		switch strings.ToLower(key) {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
			if _, err = fmt.Sscanf(line, "%32s %f", &key, &val); err != nil {
				panic(fmt.Errorf("badly formed header line [%s]\n %s", line, err))
			}
		default:
			break HEADER
		}
		switch strings.ToLower(key) {
		case "ncols":
			eg.Ncols = int(val)
		case "nrows":
			eg.Nrows = int(val)
		case "xllcorner":
			eg.Xll = val
		case "xllcenter":
			eg.Xll = val
			xCenter = true
		case "yllcorner":
			eg.Yll = val
		case "yllcenter":
			eg.Yll = val
			yCenter = true
		case "cellsize":
			eg.Cellsize = val
		case "nodata_value":
			eg.NoData = val
			eg.HasNoData = true
		}
	}
	if eg.Ncols <= 0 || eg.Nrows <= 0 || eg.Cellsize <= 0 {
		panic(fmt.Errorf("incomplete Esri header: ncols = %d, nrows = %d, cellsize = %f",
			eg.Ncols, eg.Nrows, eg.Cellsize))
	}
	// The center variants locate the lower left cell center rather than its corner
	if xCenter {
		eg.Xll -= 0.5 * eg.Cellsize
	}
	if yCenter {
		eg.Yll -= 0.5 * eg.Cellsize
	}

	var (
		total = eg.Nrows * eg.Ncols
		nRead int
	)
	eg.Values = utils.NewMatrix(eg.Nrows, eg.Ncols)
	data := eg.Values.DataP
	fill := func(s string) {
		var val float64
		for _, tok := range strings.Fields(s) {
			if val, err = strconv.ParseFloat(tok, 64); err != nil {
				panic(fmt.Errorf("bad raster value [%s]\n %s", tok, err))
			}
			if nRead == total {
				panic(fmt.Errorf("more raster values than nrows x ncols = %d", total))
			}
			r, c := nRead/eg.Ncols, nRead%eg.Ncols
			if eg.HasNoData && val == eg.NoData {
				panic(fmt.Errorf("NODATA value at row %d, col %d, raster must cover the domain", r, c))
			}
			data[(eg.Nrows-1-r)*eg.Ncols+c] = val
			nRead++
		}
	}
	fill(line)
	for nRead < total {
		fill(getLine(reader))
	}
	return
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			// Last line of a file without a trailing newline
			return strings.TrimRight(line, "\r\n")
		}
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
