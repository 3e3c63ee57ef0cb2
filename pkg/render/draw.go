package render

import (
	"image/color"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

// Render builds a frame and draws it on s. Nothing is drawn for an empty
// scene apart from the enabled overlays.
func (r *Renderer) Render(s Surface, size Size, meshes []*mesh.Mesh, cam *camera.Camera, mode Mode, sel Selection) Stats {
	frame := r.Build(size, meshes, cam, sel)
	r.Emit(s, frame, mode)
	return frame.Stats
}

// Emit draws a built frame: grid first, then triangles far to near, then axes.
func (r *Renderer) Emit(s Surface, frame Frame, mode Mode) {
	width := r.opts.EdgeWidth

	for _, l := range frame.Grid {
		s.StrokeLine(l.From, l.To, l.Color, width)
	}

	for _, t := range frame.Triangles {
		if mode.fills() {
			s.FillTriangle(t.Points[0], t.Points[1], t.Points[2], t.Fill)
		}
		if mode.strokes() {
			s.StrokeTriangle(t.Points[0], t.Points[1], t.Points[2], t.Edge, width)
		}
	}

	for _, l := range frame.Axes {
		s.StrokeLine(l.From, l.To, l.Color, width*2)
	}
}

// DrawGroundGrid draws a square grid in the XZ plane centred on the origin,
// gridSize units across with divisions cells per side.
func DrawGroundGrid(s Surface, size Size, viewProjection math.Mat4, gridSize float32, divisions int) {
	for _, l := range groundGrid(viewProjection, size, gridSize, divisions, DefaultPalette().Grid) {
		s.StrokeLine(l.From, l.To, l.Color, 1)
	}
}

// DrawAxes draws the X, Y and Z axes from the origin.
func DrawAxes(s Surface, size Size, viewProjection math.Mat4, length float32) {
	for _, l := range axes(viewProjection, size, length, DefaultPalette()) {
		s.StrokeLine(l.From, l.To, l.Color, 2)
	}
}

func groundGrid(vp math.Mat4, size Size, gridSize float32, divisions int, c color.RGBA) []Line {
	if gridSize <= 0 || divisions <= 0 {
		return nil
	}

	half := gridSize / 2
	step := gridSize / float32(divisions)
	lines := make([]Line, 0, 2*(divisions+1))
	for i := 0; i <= divisions; i++ {
		d := -half + float32(i)*step
		segments := [2][2]math.Vec3{
			{{X: d, Z: -half}, {X: d, Z: half}},
			{{X: -half, Z: d}, {X: half, Z: d}},
		}
		for _, seg := range segments {
			if l, ok := projectSegment(vp, size, seg[0], seg[1], c); ok {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

func axes(vp math.Mat4, size Size, length float32, p Palette) []Line {
	if length <= 0 {
		return nil
	}
	ends := []struct {
		to math.Vec3
		c  color.RGBA
	}{
		{math.Vec3{X: length}, p.AxisX},
		{math.Vec3{Y: length}, p.AxisY},
		{math.Vec3{Z: length}, p.AxisZ},
	}

	lines := make([]Line, 0, len(ends))
	for _, e := range ends {
		if l, ok := projectSegment(vp, size, math.Vec3{}, e.to, e.c); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// projectSegment drops the whole segment when either end is behind the camera.
func projectSegment(vp math.Mat4, size Size, a, b math.Vec3, c color.RGBA) (Line, bool) {
	pa, _, ok := project(vp, size, a)
	if !ok {
		return Line{}, false
	}
	pb, _, ok := project(vp, size, b)
	if !ok {
		return Line{}, false
	}
	return Line{From: pa, To: pb, Color: c}, true
}
