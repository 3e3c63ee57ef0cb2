package render

import (
	"image/color"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Size is a viewport size in pixels.
type Size struct {
	Width, Height float32
}

// Aspect returns width/height.
func (s Size) Aspect() float32 {
	return s.Width / s.Height
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Surface is a 2D drawing target. Coordinates are pixels with the origin at
// the top-left corner and Y pointing down. Commands are applied in call order.
type Surface interface {
	FillTriangle(a, b, c math.Vec2, fill color.RGBA)
	StrokeTriangle(a, b, c math.Vec2, stroke color.RGBA, width float32)
	StrokeLine(a, b math.Vec2, stroke color.RGBA, width float32)
}

// CommandKind identifies a recorded drawing command.
type CommandKind int

const (
	CommandFillTriangle CommandKind = iota
	CommandStrokeTriangle
	CommandStrokeLine
)

// Command is one recorded drawing call.
type Command struct {
	Kind   CommandKind
	Points []math.Vec2
	Color  color.RGBA
	Width  float32
}

// Recorder is a Surface that keeps every command in order.
type Recorder struct {
	Commands []Command
}

// FillTriangle records a filled triangle.
func (r *Recorder) FillTriangle(a, b, c math.Vec2, fill color.RGBA) {
	r.Commands = append(r.Commands, Command{Kind: CommandFillTriangle, Points: []math.Vec2{a, b, c}, Color: fill})
}

// StrokeTriangle records a triangle outline.
func (r *Recorder) StrokeTriangle(a, b, c math.Vec2, stroke color.RGBA, width float32) {
	r.Commands = append(r.Commands, Command{Kind: CommandStrokeTriangle, Points: []math.Vec2{a, b, c}, Color: stroke, Width: width})
}

// StrokeLine records a line segment.
func (r *Recorder) StrokeLine(a, b math.Vec2, stroke color.RGBA, width float32) {
	r.Commands = append(r.Commands, Command{Kind: CommandStrokeLine, Points: []math.Vec2{a, b}, Color: stroke, Width: width})
}

// Count returns how many commands of the given kind were recorded.
func (r *Recorder) Count(kind CommandKind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}
