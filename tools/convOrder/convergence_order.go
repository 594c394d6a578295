package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a grid refinement study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	for _, cs := range studies {
		fmt.Printf("Title = %s, Scheme = %s, CFL = %5.2f\n", cs.title, cs.scheme, cs.CFL)
		for i := range cs.nx {
			fmt.Printf("%d, %v, %v, %v, %v, %v, %v\n",
				cs.nx[i], cs.wRMS[i], cs.huRMS[i], cs.hvRMS[i], cs.wMAX[i], cs.huMAX[i], cs.hvMAX[i])
		}
		for i, rate := range cs.Rates() {
			fmt.Printf("Observed order %d -> %d cells: %5.2f\n", cs.nx[i], cs.nx[i+1], rate)
		}
	}
}

type ConvergenceStudy struct {
	title              string
	scheme             string
	nx                 []int
	CFL                float64
	wRMS, huRMS, hvRMS []float64
	wMAX, huMAX, hvMAX []float64
}

func NewConvergenceStudy(title, scheme string, CFL float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:  title,
		scheme: scheme,
		CFL:    CFL,
	}
}

func (cs *ConvergenceStudy) Add(nx int, wRMS, huRMS, hvRMS, wMAX, huMAX, hvMAX float64) {
	cs.nx = append(cs.nx, nx)
	cs.wRMS = append(cs.wRMS, wRMS)
	cs.huRMS = append(cs.huRMS, huRMS)
	cs.hvRMS = append(cs.hvRMS, hvRMS)
	cs.wMAX = append(cs.wMAX, wMAX)
	cs.huMAX = append(cs.huMAX, huMAX)
	cs.hvMAX = append(cs.hvMAX, hvMAX)
}

// Rates returns the observed convergence order between successive
// refinements, from the surface height RMS error
func (cs *ConvergenceStudy) Rates() (r []float64) {
	for i := 1; i < len(cs.nx); i++ {
		r = append(r, math.Log(cs.wRMS[i-1]/cs.wRMS[i])/
			math.Log(float64(cs.nx[i])/float64(cs.nx[i-1])))
	}
	return
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records            [][]string
		err                error
		f                  *os.File
		ok                 bool
		cs                 *ConvergenceStudy
		cfl                float64
		wRMS, huRMS, hvRMS float64
		wMAX, huMAX, hvMAX float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, nxtxt, scheme, cfltxt := rec[0], rec[1], rec[2], rec[3]
		nx, _ := strconv.Atoi(nxtxt)
		_, _ = fmt.Sscanf(cfltxt, "%f", &cfl)
		combTitle := title + scheme
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, scheme, cfl)
			studies[combTitle] = cs
		}
		_, _ = fmt.Sscanf(rec[4], "%f", &wRMS)
		_, _ = fmt.Sscanf(rec[5], "%f", &huRMS)
		_, _ = fmt.Sscanf(rec[6], "%f", &hvRMS)
		_, _ = fmt.Sscanf(rec[7], "%f", &wMAX)
		_, _ = fmt.Sscanf(rec[8], "%f", &huMAX)
		_, _ = fmt.Sscanf(rec[9], "%f", &hvMAX)
		cs.Add(nx, wRMS, huRMS, hvRMS, wMAX, huMAX, hvMAX)
	}
	return
}
