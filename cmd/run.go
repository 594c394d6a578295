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
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type RunArgs struct {
	CaseDir   string
	Graph     bool
	PlotField string
	PlotSteps int
	Delay     time.Duration
	Procs     int
	Scheme    string
	Nx, Ny    int
	DT        float64
	MaxSteps  int
	ContinueT float64
	Profile   bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run [case folder]",
	Short: "Runs the shallow water solver on a case folder",
	Long: `
Runs the solver on a case folder holding a config.yaml with the domain,
boundary conditions and output timeline. Snapshots and probe histories are
written back into the folder,

goswe run mycase/`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ra := &RunArgs{CaseDir: args[0]}
		ra.Graph, _ = cmd.Flags().GetBool("graph")
		ra.PlotField, _ = cmd.Flags().GetString("plotField")
		ra.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		dr, _ := cmd.Flags().GetInt("delay")
		ra.Delay = time.Duration(dr) * time.Millisecond
		ra.Procs, _ = cmd.Flags().GetInt("procs")
		ra.Scheme, _ = cmd.Flags().GetString("tm")
		ra.Nx, _ = cmd.Flags().GetInt("nx")
		ra.Ny, _ = cmd.Flags().GetInt("ny")
		ra.DT, _ = cmd.Flags().GetFloat64("dt")
		ra.MaxSteps, _ = cmd.Flags().GetInt("maxSteps")
		ra.ContinueT, _ = cmd.Flags().GetFloat64("continue")
		ra.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processCase(ra)
		RunCase(ra, ip)
	},
}

func processCase(ra *RunArgs) (ip *InputParameters.InputParameters2D) {
	var (
		err  error
		data []byte
	)
	fileName := filepath.Join(ra.CaseDir, "config.yaml")
	if data, err = os.ReadFile(fileName); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
title: "Dam Break"
spatial:
  domain: [-5, 5, 0, 1]
  discretization: [200, 4]
temporal:
  output: ["t_start t_end n_saves", 0, 0.5, 10]
initial:
  values: [1, 0, 0]
boundary:
  west: {types: [outflow, outflow, outflow]}
  east: {types: [outflow, outflow, outflow]}
  south: {types: [outflow, outflow, outflow]}
  north: {types: [outflow, outflow, outflow]}
########################################
`
		fmt.Printf("Example config.yaml:%s\n", exampleFile)
		os.Exit(1)
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	// Command line overrides go in ahead of validation
	if ra.Nx > 0 {
		ip.Spatial.Discretization[0] = ra.Nx
	}
	if ra.Ny > 0 {
		ip.Spatial.Discretization[1] = ra.Ny
	}
	if ra.DT > 0 {
		ip.Temporal.DT = ra.DT
	}
	if len(ra.Scheme) != 0 {
		ip.Temporal.Scheme = ra.Scheme
	}
	if ra.MaxSteps > 0 {
		ip.Temporal.MaxIterations = ra.MaxSteps
	}
	ip.Print()
	return
}

func RunCase(ra *RunArgs, ip *InputParameters.InputParameters2D) {
	if ra.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	sw := SWE2D.NewSWE2D(ip, ra.CaseDir, ra.Procs, true)
	if ra.ContinueT >= 0 {
		sw.RestartFrom(ra.ContinueT)
	}
	pm := &SWE2D.PlotMeta{
		Plot:            ra.Graph,
		Field:           SWE2D.NewPlotField(ra.PlotField),
		FrameTime:       ra.Delay,
		StepsBeforePlot: ra.PlotSteps,
	}
	sw.Solve(pm)
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().BoolP("graph", "g", false, "display the solution cross section while computing")
	RunCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	RunCmd.Flags().IntP("plotSteps", "s", 10, "number of steps before plotting each frame")
	RunCmd.Flags().StringP("plotField", "q", "w", "which field should be displayed - w, hu, hv or h")
	RunCmd.Flags().String("tm", "", "override the time marching scheme - euler, ssp-rk2 or ssp-rk3")
	RunCmd.Flags().Int("nx", 0, "override the number of cells in x")
	RunCmd.Flags().Int("ny", 0, "override the number of cells in y")
	RunCmd.Flags().Float64("dt", 0, "override the fixed step size used with adaptive false")
	RunCmd.Flags().Int("maxSteps", 0, "override the iteration cap")
	RunCmd.Flags().Float64("continue", -1, "restart from the snapshot at this output time")
	RunCmd.Flags().Int("procs", 0, "number of row partitions, 0 uses all cores")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}
