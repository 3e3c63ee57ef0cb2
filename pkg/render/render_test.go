package render

import (
	"image/color"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

var viewport = Size{Width: 800, Height: 600}

// frontCamera looks down -Z at the origin from z=5.
func frontCamera(t *testing.T) *camera.Camera {
	t.Helper()
	c, err := camera.New(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1}, 60, 0.1, 100)
	require.NoError(t, err)
	return c
}

func meshOf(t *testing.T, id string, positions []float32, indices []uint32) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(id, positions, nil, indices)
	require.NoError(t, err)
	return m
}

// quad returns a square facing +Z at depth z.
func quad(t *testing.T, id string, z float32) *mesh.Mesh {
	return meshOf(t, id, []float32{
		-1, -1, z,
		1, -1, z,
		1, 1, z,
		-1, 1, z,
	}, []uint32{0, 1, 2, 0, 2, 3})
}

func trianglesOnly() Options {
	opts := DefaultOptions()
	opts.ShowGrid = false
	opts.ShowAxes = false
	return opts
}

func TestRenderEmptyScene(t *testing.T) {
	r := New(DefaultOptions())
	rec := &Recorder{}

	assert.NotPanics(t, func() {
		r.Render(rec, viewport, nil, camera.Default(), ModeSolidWithEdges, Selection{})
	})
	assert.Zero(t, rec.Count(CommandFillTriangle))
	assert.Zero(t, rec.Count(CommandStrokeTriangle))
	assert.Equal(t, 2*11+3, rec.Count(CommandStrokeLine), "grid and axes are still drawn")
}

func TestRenderInvalidInputsDrawNothing(t *testing.T) {
	r := New(DefaultOptions())
	cube, err := mesh.Cube("cube", 1)
	require.NoError(t, err)

	broken := camera.Default()
	broken.Near = 0

	tests := []struct {
		name string
		size Size
		cam  *camera.Camera
	}{
		{"nil camera", viewport, nil},
		{"invalid camera", viewport, broken},
		{"zero size", Size{}, camera.Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			stats := r.Render(rec, tt.size, []*mesh.Mesh{cube}, tt.cam, ModeSolid, Selection{})
			assert.Empty(t, rec.Commands)
			assert.Zero(t, stats.Visible)
		})
	}
}

func TestCubeDefaultCamera(t *testing.T) {
	cube, err := mesh.Cube("cube", 1)
	require.NoError(t, err)

	r := New(trianglesOnly())
	rec := &Recorder{}
	stats := r.Render(rec, viewport, []*mesh.Mesh{cube}, camera.Default(), ModeSolidWithEdges, Selection{})

	fills := rec.Count(CommandFillTriangle)
	assert.LessOrEqual(t, fills, 12)
	assert.Equal(t, 6, fills, "three faces of a cube are visible from a corner")
	assert.Equal(t, fills, rec.Count(CommandStrokeTriangle))
	assert.Zero(t, stats.Degenerate)
	assert.Equal(t, 6, stats.BackFacing)

	// Fill then stroke per triangle.
	for i := 0; i < len(rec.Commands); i += 2 {
		assert.Equal(t, CommandFillTriangle, rec.Commands[i].Kind)
		assert.Equal(t, CommandStrokeTriangle, rec.Commands[i+1].Kind)
		assert.Equal(t, rec.Commands[i].Points, rec.Commands[i+1].Points)
	}
}

func TestDegenerateTrianglesAreSkipped(t *testing.T) {
	m := meshOf(t, "mixed", []float32{
		-1, -1, 0,
		1, -1, 0,
		0, 1, 0,
		2, 2, 0,
	}, []uint32{
		0, 1, 2,
		0, 1, 1, // repeated index
		0, 1, 3,
		1, 1, 1, // single point
	})

	r := New(trianglesOnly())
	frame := r.Build(viewport, []*mesh.Mesh{m}, frontCamera(t), Selection{})

	assert.Equal(t, 2, frame.Stats.Degenerate)
	for _, tri := range frame.Triangles {
		assert.NotContains(t, []int{1, 3}, tri.Index)
	}
}

func TestBackFacingTrianglesAreCulled(t *testing.T) {
	front := meshOf(t, "front", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	back := meshOf(t, "back", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 2, 1})

	r := New(trianglesOnly())
	frame := r.Build(viewport, []*mesh.Mesh{front, back}, frontCamera(t), Selection{})

	require.Len(t, frame.Triangles, 1)
	assert.Equal(t, "front", frame.Triangles[0].MeshID)
	assert.Equal(t, 1, frame.Stats.BackFacing)
}

func TestTrianglesBehindCameraAreDropped(t *testing.T) {
	// Faces the camera (normal -Z) but sits behind it at z=10.
	behind := meshOf(t, "behind", []float32{0, 0, 10, 0, 1, 10, 1, 0, 10}, []uint32{0, 1, 2})
	// Straddles the camera plane.
	straddle := meshOf(t, "straddle", []float32{-1, -1, 0, 1, -1, 0, 0, 3, 8}, []uint32{0, 1, 2})

	r := New(trianglesOnly())
	rec := &Recorder{}
	stats := r.Render(rec, viewport, []*mesh.Mesh{behind, straddle}, frontCamera(t), ModeSolid, Selection{})

	assert.Empty(t, rec.Commands)
	assert.Equal(t, 2, stats.BehindCamera)
}

func TestDepthOrder(t *testing.T) {
	near := quad(t, "near", 1)
	mid := quad(t, "mid", -2)
	far := quad(t, "far", -6)
	sphere, err := mesh.Sphere("sphere", 0.5, 8, 12)
	require.NoError(t, err)

	r := New(trianglesOnly())
	frame := r.Build(viewport, []*mesh.Mesh{near, sphere, far, mid}, frontCamera(t), Selection{})
	require.NotEmpty(t, frame.Triangles)

	for i := 1; i < len(frame.Triangles); i++ {
		assert.GreaterOrEqual(t, frame.Triangles[i-1].Depth, frame.Triangles[i].Depth,
			"triangle %d drawn before a farther one", i)
	}

	first := frame.Triangles[0].MeshID
	last := frame.Triangles[len(frame.Triangles)-1].MeshID
	assert.Equal(t, "far", first)
	assert.Equal(t, "near", last)
}

func TestNonFiniteGeometryKeepsDepthOrder(t *testing.T) {
	near := quad(t, "near", 1)
	nan := float32(gomath.NaN())
	bad := quad(t, "bad", -3).Transform("bad", math.Scale(1, 1, nan))
	far := quad(t, "far", -6)

	r := New(trianglesOnly())
	frame := r.Build(viewport, []*mesh.Mesh{near, bad, far}, frontCamera(t), Selection{})

	require.Len(t, frame.Triangles, 4)
	assert.Equal(t, 2, frame.Stats.Degenerate)
	assert.Equal(t, 4, frame.Stats.Visible)

	var order []string
	for _, tri := range frame.Triangles {
		order = append(order, tri.MeshID)
		for _, p := range tri.Points {
			assert.False(t, gomath.IsNaN(float64(p.X)) || gomath.IsNaN(float64(p.Y)))
		}
	}
	assert.Equal(t, []string{"far", "far", "near", "near"}, order)
}

func TestScreenMapping(t *testing.T) {
	vp, err := frontCamera(t).ViewProjection(viewport.Aspect())
	require.NoError(t, err)

	center, _, ok := project(vp, viewport, math.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, viewport.Width/2, center.X, 1e-3)
	assert.InDelta(t, viewport.Height/2, center.Y, 1e-3)

	above, _, ok := project(vp, viewport, math.Vec3{Y: 1})
	require.True(t, ok)
	assert.Less(t, above.Y, center.Y, "screen Y grows downward")

	right, _, ok := project(vp, viewport, math.Vec3{X: 1})
	require.True(t, ok)
	assert.Greater(t, right.X, center.X)
}

func TestModes(t *testing.T) {
	cube, err := mesh.Cube("cube", 1)
	require.NoError(t, err)
	r := New(trianglesOnly())

	tests := []struct {
		mode    Mode
		fills   bool
		strokes bool
	}{
		{ModeWireframe, false, true},
		{ModeSolid, true, false},
		{ModeSolidWithEdges, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			rec := &Recorder{}
			r.Render(rec, viewport, []*mesh.Mesh{cube}, camera.Default(), tt.mode, Selection{})
			assert.Equal(t, tt.fills, rec.Count(CommandFillTriangle) > 0)
			assert.Equal(t, tt.strokes, rec.Count(CommandStrokeTriangle) > 0)
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeWireframe, ModeSolid, ModeSolidWithEdges} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("solidWithEdges")
	require.NoError(t, err)
	assert.Equal(t, ModeSolidWithEdges, got)

	_, err = ParseMode("phong")
	assert.Error(t, err)
}

func TestSelectionColors(t *testing.T) {
	a := quad(t, "a", 0)
	b := quad(t, "b", -1)
	c := quad(t, "c", -2)

	opts := trianglesOnly()
	opts.Light = math.Vec3{Z: 1} // Straight at the quads: full intensity.
	r := New(opts)
	p := opts.Palette

	frame := r.Build(viewport, []*mesh.Mesh{a, b, c}, frontCamera(t), Selection{SelectedID: "a", HoveredID: "b"})
	colors := map[string][2]color.RGBA{}
	for _, tri := range frame.Triangles {
		colors[tri.MeshID] = [2]color.RGBA{tri.Fill, tri.Edge}
	}

	assert.Equal(t, [2]color.RGBA{p.Selected, p.SelectedEdge}, colors["a"])
	assert.Equal(t, [2]color.RGBA{p.Hovered, p.Edge}, colors["b"])
	assert.Equal(t, [2]color.RGBA{p.Surface, p.Edge}, colors["c"])

	// Selection wins when both ids match.
	frame = r.Build(viewport, []*mesh.Mesh{a}, frontCamera(t), Selection{SelectedID: "a", HoveredID: "a"})
	assert.Equal(t, p.Selected, frame.Triangles[0].Fill)
}

func TestShade(t *testing.T) {
	base := color.RGBA{R: 0x90, G: 0xA4, B: 0xAE, A: 0x80}
	light := math.Vec3{Y: 1}

	tests := []struct {
		name   string
		normal math.Vec3
		want   color.RGBA
	}{
		{"facing light", math.Vec3{Y: 1}, base},
		{"facing away", math.Vec3{Y: -1}, color.RGBA{R: 43, G: 49, B: 52, A: 0x80}},
		{"perpendicular", math.Vec3{X: 1}, color.RGBA{R: 43, G: 49, B: 52, A: 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shade(base, Intensity(tt.normal, light, DefaultAmbient))
			assert.Equal(t, tt.want, got)
		})
	}

	half := Intensity(math.Vec3{X: 1, Y: 1}.Normalize(), light, DefaultAmbient)
	assert.InDelta(t, 0.3+0.7*0.70710678, half, 1e-5)
}

func TestLightDirection(t *testing.T) {
	up := LightDirection(0, 90)
	assert.InDelta(t, 1, up.Y, 1e-6)

	front := LightDirection(0, 0)
	assert.InDelta(t, 1, front.Z, 1e-6)

	side := LightDirection(90, 0)
	assert.InDelta(t, 1, side.X, 1e-6)
	assert.InDelta(t, 1, LightDirection(37, 21).Length(), 1e-6)
}

func TestDrawGroundGrid(t *testing.T) {
	cam := camera.Default()
	vp, err := cam.ViewProjection(viewport.Aspect())
	require.NoError(t, err)

	rec := &Recorder{}
	DrawGroundGrid(rec, viewport, vp, 10, 10)
	assert.Equal(t, 22, rec.Count(CommandStrokeLine))

	rec.Reset()
	DrawGroundGrid(rec, viewport, vp, 10, 0)
	assert.Empty(t, rec.Commands)
}

func TestGroundGridDropsLinesBehindCamera(t *testing.T) {
	// Standing inside the grid, looking along +X close to the ground.
	cam, err := camera.New(math.Vec3{Y: 0.5}, math.Vec3{X: 1, Y: 0.5}, math.Vec3{Y: 1}, 60, 0.1, 100)
	require.NoError(t, err)
	vp, err := cam.ViewProjection(viewport.Aspect())
	require.NoError(t, err)

	rec := &Recorder{}
	DrawGroundGrid(rec, viewport, vp, 10, 10)
	lines := rec.Count(CommandStrokeLine)
	assert.Greater(t, lines, 0)
	assert.Less(t, lines, 22)
}

func TestDrawAxes(t *testing.T) {
	vp, err := camera.Default().ViewProjection(viewport.Aspect())
	require.NoError(t, err)

	rec := &Recorder{}
	DrawAxes(rec, viewport, vp, 1)
	require.Equal(t, 3, rec.Count(CommandStrokeLine))

	p := DefaultPalette()
	assert.Equal(t, p.AxisX, rec.Commands[0].Color)
	assert.Equal(t, p.AxisY, rec.Commands[1].Color)
	assert.Equal(t, p.AxisZ, rec.Commands[2].Color)

	// All three start at the projected origin.
	assert.Equal(t, rec.Commands[0].Points[0], rec.Commands[1].Points[0])
}

func TestOverlayOrder(t *testing.T) {
	cube, err := mesh.Cube("cube", 1)
	require.NoError(t, err)

	rec := &Recorder{}
	New(DefaultOptions()).Render(rec, viewport, []*mesh.Mesh{cube}, camera.Default(), ModeSolid, Selection{})

	kinds := make([]CommandKind, len(rec.Commands))
	for i, c := range rec.Commands {
		kinds[i] = c.Kind
	}
	require.Len(t, kinds, 22+6+3)
	for i := 0; i < 22; i++ {
		assert.Equal(t, CommandStrokeLine, kinds[i])
	}
	for i := 22; i < 28; i++ {
		assert.Equal(t, CommandFillTriangle, kinds[i])
	}
	for i := 28; i < 31; i++ {
		assert.Equal(t, CommandStrokeLine, kinds[i])
	}
}
