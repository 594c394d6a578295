package InputParameters

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputParameters(t *testing.T) {
	var ip InputParameters2D
	assert.NoError(t, ip.Parse(caseFile))
	{ // Explicit fields
		assert.Equal(t, "dam break case", ip.Title)
		assert.Equal(t, [4]float64{0, 10, 0, 5}, ip.Spatial.Domain)
		assert.Equal(t, [2]int{100, 50}, ip.Spatial.Discretization)
		assert.Equal(t, 0.001, ip.Temporal.DT)
		assert.Equal(t, "SSP-RK3", ip.Temporal.Scheme)
		assert.Equal(t, [3]string{"periodic", "periodic", "periodic"}, ip.Boundary.South.Types)
		assert.NotNil(t, ip.Initial.Values)
		assert.Equal(t, [3]float64{1, 0, 0}, *ip.Initial.Values)
		assert.Equal(t, "topo.asc", ip.Topography.File)
		assert.Equal(t, 0.035, ip.Friction.ManningCoef)
		assert.Equal(t, 1.5, ip.Parameters.Theta)
		assert.Equal(t, 0.9, ip.Parameters.CFL)
		assert.Equal(t, 2, len(ip.Probes.Locations))
		assert.Equal(t, 2, ip.Probes.Locations[1].Field)
	}
	{ // Defaults fill everything the file leaves out
		assert.Equal(t, 1000000, ip.Temporal.MaxIterations)
		assert.Equal(t, 9.81, ip.Parameters.Gravity)
		assert.Equal(t, 1.e-4, ip.Parameters.DryTol)
		assert.Equal(t, 1.e-12, ip.Parameters.Tol)
		assert.Equal(t, 2, ip.Parameters.NGhost)
		assert.Equal(t, "central-upwind", ip.Parameters.FluxType)
		assert.Equal(t, 1.e-3, ip.PointSource.InitialDT)
		assert.Equal(t, 1, ip.Probes.SaveEvery)
		assert.Equal(t, "probes.csv", ip.Probes.File)
	}
	ip.Validate()
	{ // Boundary section accessors follow the edge ordering
		assert.Equal(t, [3]string{"outflow", "outflow", "outflow"}, ip.Boundary.West.Types)
	}
}

func TestTimeline(t *testing.T) {
	raws := func(ss ...string) (raw []json.RawMessage) {
		for _, s := range ss {
			raw = append(raw, json.RawMessage(s))
		}
		return
	}
	{ // Explicit instants
		tc := TemporalConfig{Adaptive: true, Output: raws(`"at"`, `[0, 0.5, 1.0]`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{0, 0.5, 1}, tl.T, 1.e-12))
		assert.False(t, tl.NoSave)
		assert.Equal(t, 0, tl.StepsPerInterval)
	}
	{ // Fixed seconds between saves
		tc := TemporalConfig{Adaptive: true, Output: raws(`"t_start every_seconds multiple"`, `1.0`, `0.25`, `4`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{1, 1.25, 1.5, 1.75, 2}, tl.T, 1.e-12))
	}
	{ // Fixed steps between saves, driven by the constant step size
		tc := TemporalConfig{DT: 0.1, Adaptive: false, Output: raws(`"t_start every_steps multiple"`, `0.0`, `10`, `3`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{0, 1, 2, 3}, tl.T, 1.e-12))
		assert.Equal(t, 10, tl.StepsPerInterval)
	}
	{ // Evenly spaced saves between start and end
		tc := TemporalConfig{Adaptive: true, Output: raws(`"t_start t_end n_saves"`, `0.0`, `1.0`, `4`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{0, 0.25, 0.5, 0.75, 1}, tl.T, 1.e-12))
	}
	{ // Run without snapshots
		tc := TemporalConfig{Adaptive: true, Output: raws(`"t_start t_end no save"`, `0.0`, `1.0`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{0, 1}, tl.T, 1.e-12))
		assert.True(t, tl.NoSave)
	}
	{ // Fixed step count without snapshots
		tc := TemporalConfig{DT: 0.05, Adaptive: false, Output: raws(`"t_start n_steps no save"`, `0.0`, `20`)}
		tl := tc.BuildTimeline()
		assert.True(t, nearVec([]float64{0, 1}, tl.T, 1.e-12))
		assert.True(t, tl.NoSave)
		assert.Equal(t, 20, tl.StepsPerInterval)
	}
}

var (
	caseFile = []byte(`title: dam break case
spatial:
  domain: [0, 10, 0, 5]
  discretization: [100, 50]
temporal:
  dt: 0.001
  adaptive: true
  output: ["t_start t_end n_saves", 0.0, 1.0, 4]
  scheme: SSP-RK3
boundary:
  west: {types: [outflow, outflow, outflow]}
  east: {types: [outflow, outflow, outflow]}
  south: {types: [periodic, periodic, periodic]}
  north: {types: [periodic, periodic, periodic]}
initial:
  values: [1.0, 0.0, 0.0]
topography:
  file: topo.asc
pointSource:
  location: [2.5, 2.5]
  times: [1.0, 2.0]
  rates: [0.5, 1.0, 0.0]
friction:
  manningCoef: 0.035
probes:
  locations:
    - {field: 0, x: 1.0, y: 1.0}
    - {field: 2, x: 9.0, y: 4.0}
parameters:
  theta: 1.5
  cfl: 0.9
`)
)

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			return false
		}
	}
	return true
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
