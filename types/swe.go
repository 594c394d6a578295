package types

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Periodic
	BC_Outflow
	BC_Extrap
	BC_Const
	BC_Inflow
)

var BCNameMap = map[string]BCFLAG{
	"periodic":      BC_Periodic,
	"outflow":       BC_Outflow,
	"extrap":        BC_Extrap,
	"extrapolation": BC_Extrap,
	"const":         BC_Const,
	"constant":      BC_Const,
	"inflow":        BC_Inflow,
}

var bcFlagNames = map[BCFLAG]string{
	BC_None:     "None",
	BC_Periodic: "Periodic",
	BC_Outflow:  "Outflow",
	BC_Extrap:   "Extrap",
	BC_Const:    "Const",
	BC_Inflow:   "Inflow",
}

func (bf BCFLAG) String() string {
	if name, ok := bcFlagNames[bf]; ok {
		return name
	}
	return "Unknown"
}

// NewBCFLAG parses a boundary keyword from a case configuration, matching
// case-insensitively. Unknown keywords panic, bad configs should fail loudly.
func NewBCFLAG(keyword string) (bf BCFLAG) {
	var (
		ok bool
	)
	if bf, ok = BCNameMap[strings.ToLower(strings.TrimSpace(keyword))]; !ok {
		panic("unknown boundary condition type: " + keyword)
	}
	return
}

// EdgeFLAG enumerates the four domain edges of a structured grid in the
// order boundary config sections are applied.
type EdgeFLAG uint8

const (
	Edge_West EdgeFLAG = iota
	Edge_East
	Edge_South
	Edge_North
)

var edgeFlagNames = map[EdgeFLAG]string{
	Edge_West:  "West",
	Edge_East:  "East",
	Edge_South: "South",
	Edge_North: "North",
}

func (ef EdgeFLAG) String() string {
	if name, ok := edgeFlagNames[ef]; ok {
		return name
	}
	return "Unknown"
}
