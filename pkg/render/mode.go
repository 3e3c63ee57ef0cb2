package render

import (
	"fmt"
	"strings"
)

// Mode selects which primitives are emitted per triangle.
type Mode int

const (
	ModeSolidWithEdges Mode = iota // Filled triangle followed by its outline
	ModeSolid                      // Filled triangle only
	ModeWireframe                  // Outline only
)

// String returns the config/CLI name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeWireframe:
		return "wireframe"
	case ModeSolid:
		return "solid"
	case ModeSolidWithEdges:
		return "solid-with-edges"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by String. Underscores and a
// camel-cased "solidWithEdges" are accepted too.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "wireframe", "wire":
		return ModeWireframe, nil
	case "solid":
		return ModeSolid, nil
	case "solid-with-edges", "solidwithedges", "edges", "":
		return ModeSolidWithEdges, nil
	}
	return ModeSolidWithEdges, fmt.Errorf("unknown render mode %q", s)
}

func (m Mode) fills() bool {
	return m == ModeSolid || m == ModeSolidWithEdges
}

func (m Mode) strokes() bool {
	return m == ModeWireframe || m == ModeSolidWithEdges
}
