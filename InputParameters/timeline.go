package InputParameters

import (
	"encoding/json"
	"fmt"
)

/*
TemporalConfig controls time integration and output pacing.

Output takes one of six forms, the leading string selects the form:

	["at", [t1, t2, t3, ...]]                          save at the listed times
	["t_start every_seconds multiple", t0, dt, n]      from t0, save every dt seconds, n times
	["t_start every_steps multiple", t0, n0, n1]       from t0, save every n0 steps, n1 times
	["t_start t_end n_saves", t0, t1, n]               save n times evenly spaced up to t1
	["t_start t_end no save", t0, t1]                  run t0 to t1 without saving
	["t_start n_steps no save", t0, n]                 run n steps from t0 without saving

The step count driven forms march with the fixed step size DT and therefore
require Adaptive false.
*/
type TemporalConfig struct {
	DT            float64           `yaml:"dt"`
	Adaptive      bool              `yaml:"adaptive"`
	Output        []json.RawMessage `yaml:"output"`
	MaxIterations int               `yaml:"maxIterations"`
	Scheme        string            `yaml:"scheme"`
}

/*
Timeline is the expanded output schedule. T holds the save instants in
increasing order, T[0] is the simulation start time. For the step count
driven forms StepsPerInterval caps each interval at that many fixed steps.
*/
type Timeline struct {
	T                []float64
	NoSave           bool
	StepsPerInterval int
}

func (tc *TemporalConfig) BuildTimeline() (tl Timeline) {
	var (
		raw = tc.Output
		tag string
	)
	if len(raw) == 0 {
		panic("temporal.output must be set")
	}
	unmarshal(raw[0], &tag, "output[0]")
	switch tag {
	case "at":
		requireLen(raw, 2, tag)
		unmarshal(raw[1], &tl.T, "output[1]")
		if len(tl.T) < 2 {
			panic("output \"at\" needs at least two instants, a start and one target")
		}
		for i := 1; i < len(tl.T); i++ {
			if tl.T[i] <= tl.T[i-1] {
				panic(fmt.Errorf("output times are not monotonically increasing at entry %d", i))
			}
		}
	case "t_start every_seconds multiple":
		requireLen(raw, 4, tag)
		var (
			t0, dt float64
			n      int
		)
		unmarshal(raw[1], &t0, "output[1]")
		unmarshal(raw[2], &dt, "output[2]")
		unmarshal(raw[3], &n, "output[3]")
		if dt <= 0 || n < 1 {
			panic(fmt.Errorf("output %q needs a positive interval and count, have %f and %d", tag, dt, n))
		}
		tl.T = make([]float64, n+1)
		for k := 0; k <= n; k++ {
			tl.T[k] = t0 + float64(k)*dt
		}
	case "t_start every_steps multiple":
		requireLen(raw, 4, tag)
		var (
			t0     float64
			n0, n1 int
		)
		unmarshal(raw[1], &t0, "output[1]")
		unmarshal(raw[2], &n0, "output[2]")
		unmarshal(raw[3], &n1, "output[3]")
		if tc.Adaptive {
			panic(fmt.Errorf("output %q needs adaptive = false", tag))
		}
		if n0 < 1 || n1 < 1 {
			panic(fmt.Errorf("output %q needs positive step and save counts, have %d and %d", tag, n0, n1))
		}
		tl.T = make([]float64, n1+1)
		for k := 0; k <= n1; k++ {
			tl.T[k] = t0 + float64(k*n0)*tc.DT
		}
		tl.StepsPerInterval = n0
	case "t_start t_end n_saves":
		requireLen(raw, 4, tag)
		var (
			t0, t1 float64
			n      int
		)
		unmarshal(raw[1], &t0, "output[1]")
		unmarshal(raw[2], &t1, "output[2]")
		unmarshal(raw[3], &n, "output[3]")
		if t1 <= t0 {
			panic(fmt.Errorf("end time %f is not greater than start time %f", t1, t0))
		}
		if n < 1 {
			panic(fmt.Errorf("output %q needs a positive save count, have %d", tag, n))
		}
		tl.T = make([]float64, n+1)
		for k := 0; k <= n; k++ {
			tl.T[k] = t0 + float64(k)*(t1-t0)/float64(n)
		}
		tl.T[n] = t1
	case "t_start t_end no save":
		requireLen(raw, 3, tag)
		var t0, t1 float64
		unmarshal(raw[1], &t0, "output[1]")
		unmarshal(raw[2], &t1, "output[2]")
		if t1 <= t0 {
			panic(fmt.Errorf("end time %f is not greater than start time %f", t1, t0))
		}
		tl.T = []float64{t0, t1}
		tl.NoSave = true
	case "t_start n_steps no save":
		requireLen(raw, 3, tag)
		var (
			t0 float64
			n  int
		)
		unmarshal(raw[1], &t0, "output[1]")
		unmarshal(raw[2], &n, "output[2]")
		if tc.Adaptive {
			panic(fmt.Errorf("output %q needs adaptive = false", tag))
		}
		if n < 1 {
			panic(fmt.Errorf("output %q needs a positive step count, have %d", tag, n))
		}
		tl.T = []float64{t0, t0 + float64(n)*tc.DT}
		tl.NoSave = true
		tl.StepsPerInterval = n
	default:
		panic(fmt.Errorf("unknown output form %q", tag))
	}
	return
}

func unmarshal(raw json.RawMessage, v any, what string) {
	if err := json.Unmarshal(raw, v); err != nil {
		panic(fmt.Errorf("bad %s entry [%s]\n %s", what, string(raw), err))
	}
}

func requireLen(raw []json.RawMessage, n int, tag string) {
	if len(raw) != n {
		panic(fmt.Errorf("output %q needs %d entries, have %d", tag, n, len(raw)))
	}
}
