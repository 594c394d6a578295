package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadXYZ reads a scattered cloud of "x y z" samples, one triplet per line.
// Blank lines and lines starting with # are skipped.
func ReadXYZ(filename string, verbose bool) (XY [][2]float64, Z []float64) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading XYZ point cloud named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	XY, Z = readXYZCloud(file)
	if verbose {
		fmt.Printf("Read %d scattered points\n", len(Z))
	}
	return
}

func readXYZCloud(r io.Reader) (XY [][2]float64, Z []float64) {
	var (
		err error
		n   int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		var x, y, z float64
		if n, err = fmt.Sscanf(line, "%f %f %f", &x, &y, &z); err != nil || n < 3 {
			if err == nil {
				err = fmt.Errorf("read fewer than 3 values, read %d", n)
			}
			panic(fmt.Errorf("bad point line [%s]\n %s", line, err))
		}
		XY = append(XY, [2]float64{x, y})
		Z = append(Z, z)
	}
	if err = scanner.Err(); err != nil {
		panic(err)
	}
	if len(Z) < 3 {
		panic(fmt.Errorf("point cloud has %d points, need at least 3 to triangulate", len(Z)))
	}
	return
}
