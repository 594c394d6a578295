/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/notargets/goswe/InputParameters"
	"github.com/notargets/goswe/model_problems/SWE2D"
	"github.com/notargets/goswe/utils"
	"github.com/spf13/cobra"
)

// PerfCmd represents the perf command
var PerfCmd = &cobra.Command{
	Use:   "perf [case folder]",
	Short: "Measures the cost of the spatial operator on a case",
	Long: `
Times repeated right hand side evaluations of the case and, on Linux, reports
retired instruction and cycle counts from the hardware counters,

goswe perf mycase/ -n 100`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err  error
			data []byte
		)
		n, _ := cmd.Flags().GetInt("n")
		procs, _ := cmd.Flags().GetInt("procs")
		fileName := filepath.Join(args[0], "config.yaml")
		if data, err = os.ReadFile(fileName); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		ip := &InputParameters.InputParameters2D{}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
		sw := SWE2D.NewSWE2D(ip, args[0], procs, false)
		PerfCase(sw, n)
	},
}

func PerfCase(sw *SWE2D.SWE2D, n int) {
	var (
		Nx, Ny = sw.Grid.Nx, sw.Grid.Ny
		cells  = float64(n * Nx * Ny)
	)
	eval := func() {
		for i := 0; i < n; i++ {
			sw.UpdateGhosts(sw.Q)
			sw.RHS(sw.Q)
		}
	}
	start := time.Now()
	eval()
	elapsed := time.Since(start)
	fmt.Printf("%d RHS evaluations of %d x %d cells in %v, %v each\n",
		n, Nx, Ny, elapsed, elapsed/time.Duration(n))
	if instructions, err := SWE2D.CountInstructions(eval); err != nil {
		fmt.Printf("instruction count unavailable: %s\n", err.Error())
	} else {
		fmt.Printf("%d instructions, %8.1f per cell per evaluation\n",
			instructions, float64(instructions)/cells)
	}
	if cycles, err := SWE2D.CountCycles(eval); err == nil {
		fmt.Printf("%d cycles, %8.1f per cell per evaluation\n",
			cycles, float64(cycles)/cells)
	}
	fmt.Printf("%s\n", utils.GetMemUsage())
}

func init() {
	rootCmd.AddCommand(PerfCmd)
	PerfCmd.Flags().IntP("n", "n", 100, "number of right hand side evaluations to time")
	PerfCmd.Flags().Int("procs", 0, "number of row partitions, 0 uses all cores")
}
