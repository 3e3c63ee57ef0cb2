package render

import (
	"image/color"
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/math"
)

// DefaultAmbient is the light level of faces turned away from the light.
const DefaultAmbient = 0.3

// Palette holds the colours used by the draw stage.
type Palette struct {
	Surface      color.RGBA
	Selected     color.RGBA
	Hovered      color.RGBA
	Edge         color.RGBA
	SelectedEdge color.RGBA
	Grid         color.RGBA
	AxisX        color.RGBA
	AxisY        color.RGBA
	AxisZ        color.RGBA
}

// DefaultPalette returns the stock viewport colours.
func DefaultPalette() Palette {
	return Palette{
		Surface:      color.RGBA{R: 0x90, G: 0xA4, B: 0xAE, A: 0xFF},
		Selected:     color.RGBA{R: 0xFF, G: 0x98, B: 0x00, A: 0xFF},
		Hovered:      color.RGBA{R: 0x64, G: 0xB5, B: 0xF6, A: 0xFF},
		Edge:         color.RGBA{R: 0x37, G: 0x47, B: 0x4F, A: 0xFF},
		SelectedEdge: color.RGBA{R: 0xE6, G: 0x51, B: 0x00, A: 0xFF},
		Grid:         color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF},
		AxisX:        color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
		AxisY:        color.RGBA{R: 0x43, G: 0xA0, B: 0x47, A: 0xFF},
		AxisZ:        color.RGBA{R: 0x1E, G: 0x88, B: 0xE5, A: 0xFF},
	}
}

// LightDirection converts azimuth (around +Y, from +Z toward +X) and elevation
// above the XZ plane, both in degrees, to a unit vector pointing at the light.
func LightDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(math.Radians(azimuth))
	el := float64(math.Radians(elevation))

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// Intensity returns the Lambert + ambient shade factor in [0, 1].
func Intensity(normal, light math.Vec3, ambient float32) float32 {
	ndotl := normal.Dot(light)
	if ndotl < 0 {
		ndotl = 0
	}
	return clamp01(ambient + ndotl*(1-ambient))
}

// Shade scales the colour channels of base by intensity, rounding to the
// nearest integer. Alpha is kept.
func Shade(base color.RGBA, intensity float32) color.RGBA {
	scale := func(c uint8) uint8 {
		return uint8(gomath.Round(float64(float32(c) * intensity)))
	}
	return color.RGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: base.A}
}

// Selection carries the ids highlighted for one frame.
type Selection struct {
	SelectedID string
	HoveredID  string
}

// colors picks base and edge colours for a mesh. Selection wins over hover.
func (p Palette) colors(meshID string, sel Selection) (base, edge color.RGBA) {
	switch {
	case sel.SelectedID != "" && meshID == sel.SelectedID:
		return p.Selected, p.SelectedEdge
	case sel.HoveredID != "" && meshID == sel.HoveredID:
		return p.Hovered, p.Edge
	default:
		return p.Surface, p.Edge
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
