package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/goswe/types"
)

/*
Parameters obtained from the YAML case file.

Key names must match the field names case insensitively, the yaml package
converts to JSON internally and binds by field name.
*/
type InputParameters2D struct {
	Title       string             `yaml:"title"`
	Spatial     SpatialConfig      `yaml:"spatial"`
	Temporal    TemporalConfig     `yaml:"temporal"`
	Boundary    BoundaryConfig     `yaml:"boundary"`
	Initial     InitialConfig      `yaml:"initial"`
	Topography  TopographyConfig   `yaml:"topography"`
	PointSource *PointSourceConfig `yaml:"pointSource"`
	Friction    *FrictionConfig    `yaml:"friction"`
	Probes      *ProbesConfig      `yaml:"probes"`
	Parameters  ParamConfig        `yaml:"parameters"`
}

type SpatialConfig struct {
	Domain         [4]float64 `yaml:"domain"` // west, east, south, north
	Discretization [2]int     `yaml:"discretization"`
}

type BoundaryConfig struct {
	West  SingleBCConfig `yaml:"west"`
	East  SingleBCConfig `yaml:"east"`
	South SingleBCConfig `yaml:"south"`
	North SingleBCConfig `yaml:"north"`
}

/*
SingleBCConfig holds the boundary treatment of one domain edge, one entry per
conservative variable (w, hu, hv). Values are required for the "const" and
"inflow" types; for "inflow" the value is a velocity rather than a discharge.
*/
type SingleBCConfig struct {
	Types  [3]string   `yaml:"types"`
	Values [3]*float64 `yaml:"values"`
}

type InitialConfig struct {
	File   string      `yaml:"file"` // binary snapshot, mutually exclusive with Values
	Values *[3]float64 `yaml:"values"`
}

type TopographyConfig struct {
	File    string `yaml:"file"`    // Esri ASCII raster of vertex elevations
	XYZFile string `yaml:"xyzFile"` // scattered samples, triangulated onto the lattice
}

type PointSourceConfig struct {
	Location  [2]float64 `yaml:"location"`
	Times     []float64  `yaml:"times"`
	Rates     []float64  `yaml:"rates"` // one more entry than Times
	InitialDT float64    `yaml:"initialDT"`
}

type FrictionConfig struct {
	ManningCoef float64 `yaml:"manningCoef"`
	File        string  `yaml:"file"` // Esri ASCII raster of cell centered roughness
}

type ProbesConfig struct {
	File      string          `yaml:"file"`
	SaveEvery int             `yaml:"saveEvery"` // steps between samples
	Locations []ProbeLocation `yaml:"locations"`
}

type ProbeLocation struct {
	Field int     `yaml:"field"` // 0-5 = w, hu, hv, h, u, v
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

type ParamConfig struct {
	Gravity  float64 `yaml:"gravity"`
	Theta    float64 `yaml:"theta"`
	DryTol   float64 `yaml:"dryTol"`
	Tol      float64 `yaml:"tol"`
	NGhost   int     `yaml:"nGhost"`
	CFL      float64 `yaml:"cfl"`
	LogSteps int     `yaml:"logSteps"`
	FluxType string  `yaml:"fluxType"`
}

func (ip *InputParameters2D) Parse(data []byte) error {
	ip.setDefaults()
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	if ip.PointSource != nil && ip.PointSource.InitialDT == 0 {
		ip.PointSource.InitialDT = 1.e-3
	}
	if ip.Probes != nil {
		if ip.Probes.SaveEvery == 0 {
			ip.Probes.SaveEvery = 1
		}
		if ip.Probes.File == "" {
			ip.Probes.File = "probes.csv"
		}
	}
	return nil
}

func (ip *InputParameters2D) setDefaults() {
	ip.Temporal.DT = 1.e-3
	ip.Temporal.Adaptive = true
	ip.Temporal.MaxIterations = 1000000
	ip.Temporal.Scheme = "SSP-RK2"
	ip.Parameters.Gravity = 9.81
	ip.Parameters.Theta = 1.3
	ip.Parameters.DryTol = 1.e-4
	ip.Parameters.Tol = 1.e-12
	ip.Parameters.NGhost = 2
	ip.Parameters.CFL = 1.0
	ip.Parameters.LogSteps = 100
	ip.Parameters.FluxType = "central-upwind"
}

// Edge returns the boundary section for one domain edge.
func (bc *BoundaryConfig) Edge(ef types.EdgeFLAG) SingleBCConfig {
	switch ef {
	case types.Edge_West:
		return bc.West
	case types.Edge_East:
		return bc.East
	case types.Edge_South:
		return bc.South
	default:
		return bc.North
	}
}

// Validate panics on an inconsistent case description, bad configs should
// fail loudly before any allocation happens.
func (ip *InputParameters2D) Validate() {
	var (
		d  = ip.Spatial.Domain
		nn = ip.Spatial.Discretization
	)
	if d[1] <= d[0] {
		panic(fmt.Errorf("domain[1] = %f must be greater than domain[0] = %f", d[1], d[0]))
	}
	if d[3] <= d[2] {
		panic(fmt.Errorf("domain[3] = %f must be greater than domain[2] = %f", d[3], d[2]))
	}
	if nn[0] < 1 || nn[1] < 1 {
		panic(fmt.Errorf("discretization must be positive, have %v", nn))
	}
	ip.validateBoundary()
	if (ip.Initial.File == "") == (ip.Initial.Values == nil) {
		panic("exactly one of initial.file or initial.values must be set")
	}
	if ip.Topography.File != "" && ip.Topography.XYZFile != "" {
		panic("only one of topography.file or topography.xyzFile can be set")
	}
	if ps := ip.PointSource; ps != nil {
		if len(ps.Times) == 0 {
			panic("pointSource.times must not be empty")
		}
		for i := 1; i < len(ps.Times); i++ {
			if ps.Times[i] <= ps.Times[i-1] {
				panic(fmt.Errorf("pointSource.times not increasing at entry %d: %f is not greater than %f",
					i, ps.Times[i], ps.Times[i-1]))
			}
		}
		if len(ps.Rates) != len(ps.Times)+1 {
			panic(fmt.Errorf("pointSource needs len(rates) = len(times)+1, have %d and %d",
				len(ps.Rates), len(ps.Times)))
		}
		for i, r := range ps.Rates {
			if r < 0 {
				panic(fmt.Errorf("pointSource.rates[%d] = %f must be non-negative", i, r))
			}
		}
		if ps.InitialDT <= 0 {
			panic(fmt.Errorf("pointSource.initialDT = %f must be positive", ps.InitialDT))
		}
	}
	if fr := ip.Friction; fr != nil {
		if fr.File == "" && fr.ManningCoef <= 0 {
			panic(fmt.Errorf("friction.manningCoef = %f must be positive", fr.ManningCoef))
		}
		if fr.File != "" && fr.ManningCoef != 0 {
			panic("friction takes either manningCoef or file, not both")
		}
	}
	if pr := ip.Probes; pr != nil {
		if len(pr.Locations) == 0 {
			panic("probes.locations must not be empty")
		}
		for n, loc := range pr.Locations {
			if loc.Field < 0 || loc.Field > 5 {
				panic(fmt.Errorf("probes.locations[%d].field = %d must lie in 0..5", n, loc.Field))
			}
		}
		if pr.SaveEvery < 1 {
			panic(fmt.Errorf("probes.saveEvery = %d must be positive", pr.SaveEvery))
		}
	}
	pm := ip.Parameters
	if pm.Gravity < 0 {
		panic(fmt.Errorf("gravity = %f must be non-negative", pm.Gravity))
	}
	if pm.Theta < 1 || pm.Theta > 2 {
		panic(fmt.Errorf("theta = %f must lie in [1, 2]", pm.Theta))
	}
	if pm.DryTol < 0 {
		panic(fmt.Errorf("dryTol = %f must be non-negative", pm.DryTol))
	}
	if pm.NGhost != 2 {
		panic(fmt.Errorf("nGhost = %d, the reconstruction stencil requires exactly 2 ghost layers", pm.NGhost))
	}
	if pm.CFL <= 0 {
		panic(fmt.Errorf("cfl = %f must be positive", pm.CFL))
	}
	if ip.Temporal.DT <= 0 {
		panic(fmt.Errorf("temporal.dt = %f must be positive", ip.Temporal.DT))
	}
	if ip.Temporal.MaxIterations < 1 {
		panic(fmt.Errorf("temporal.maxIterations = %d must be positive", ip.Temporal.MaxIterations))
	}
	ip.Temporal.BuildTimeline() // panics on a malformed output section
}

func (ip *InputParameters2D) validateBoundary() {
	var (
		edges = [4]types.EdgeFLAG{types.Edge_West, types.Edge_East, types.Edge_South, types.Edge_North}
	)
	for _, ef := range edges {
		sc := ip.Boundary.Edge(ef)
		var nPeriodic int
		for n := 0; n < 3; n++ {
			bf := types.NewBCFLAG(sc.Types[n]) // panics on unknown keywords
			switch bf {
			case types.BC_Periodic:
				nPeriodic++
			case types.BC_Const:
				if sc.Values[n] == nil {
					panic(fmt.Errorf("%s boundary: type \"const\" on component %d requires a value", ef, n))
				}
			case types.BC_Inflow:
				if n == 0 {
					panic(fmt.Errorf("%s boundary: type \"inflow\" makes no sense on the elevation component", ef))
				}
				if sc.Values[n] == nil {
					panic(fmt.Errorf("%s boundary: type \"inflow\" on component %d requires a velocity value", ef, n))
				}
			}
		}
		if nPeriodic != 0 && nPeriodic != 3 {
			panic(fmt.Errorf("%s boundary: if one component is periodic, all must be periodic", ef))
		}
	}
	// Periodic conditions must pair across opposing edges
	for n := 0; n < 3; n++ {
		wp := types.NewBCFLAG(ip.Boundary.West.Types[n]) == types.BC_Periodic
		ep := types.NewBCFLAG(ip.Boundary.East.Types[n]) == types.BC_Periodic
		if wp != ep {
			panic(fmt.Errorf("periodic boundary on component %d does not match across west/east", n))
		}
		sp := types.NewBCFLAG(ip.Boundary.South.Types[n]) == types.BC_Periodic
		np := types.NewBCFLAG(ip.Boundary.North.Types[n]) == types.BC_Periodic
		if sp != np {
			panic(fmt.Errorf("periodic boundary on component %d does not match across south/north", n))
		}
	}
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t= Domain (west, east, south, north)\n", ip.Spatial.Domain)
	fmt.Printf("%v\t\t= Discretization (nx, ny)\n", ip.Spatial.Discretization)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.Parameters.CFL)
	fmt.Printf("%8.5f\t\t= Gravity\n", ip.Parameters.Gravity)
	fmt.Printf("%8.5f\t\t= Theta\n", ip.Parameters.Theta)
	fmt.Printf("[%s]\t\t= Flux Type\n", ip.Parameters.FluxType)
	fmt.Printf("[%s]\t\t= Scheme\n", ip.Temporal.Scheme)
	edges := [4]types.EdgeFLAG{types.Edge_West, types.Edge_East, types.Edge_South, types.Edge_North}
	for _, ef := range edges {
		sc := ip.Boundary.Edge(ef)
		fmt.Printf("BCs[%s] = %v\n", ef, sc.Types)
	}
}
