package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
	"github.com/Faultbox/meshkit/pkg/render"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestClear(t *testing.T) {
	c := New(4, 3)
	c.Clear(white)
	assert.Equal(t, white, c.Image().RGBAAt(3, 2))
}

func TestFillTriangle(t *testing.T) {
	c := New(100, 100)
	c.Clear(white)
	c.FillTriangle(math.Vec2{X: 10, Y: 10}, math.Vec2{X: 90, Y: 10}, math.Vec2{X: 50, Y: 90}, red)

	assert.Equal(t, red, c.Image().RGBAAt(50, 30), "inside")
	assert.Equal(t, white, c.Image().RGBAAt(5, 95), "outside")
}

func TestLaterCommandsPaintOver(t *testing.T) {
	c := New(100, 100)
	c.FillTriangle(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 100, Y: 0}, math.Vec2{X: 0, Y: 100}, red)
	c.FillTriangle(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 100, Y: 0}, math.Vec2{X: 0, Y: 100}, blue)
	assert.Equal(t, blue, c.Image().RGBAAt(20, 20))
}

func TestStrokeLine(t *testing.T) {
	c := New(50, 50)
	c.Clear(white)
	c.StrokeLine(math.Vec2{X: 5, Y: 25}, math.Vec2{X: 45, Y: 25}, red, 4)

	assert.Equal(t, red, c.Image().RGBAAt(25, 24))
	assert.Equal(t, white, c.Image().RGBAAt(25, 10))

	// Zero-length and zero-width strokes draw nothing.
	c.StrokeLine(math.Vec2{X: 10, Y: 10}, math.Vec2{X: 10, Y: 10}, blue, 4)
	c.StrokeLine(math.Vec2{X: 0, Y: 5}, math.Vec2{X: 50, Y: 5}, blue, 0)
	assert.Equal(t, white, c.Image().RGBAAt(10, 10))
	assert.Equal(t, white, c.Image().RGBAAt(25, 5))
}

func TestRenderCube(t *testing.T) {
	cube, err := mesh.Cube("cube", 1.5)
	require.NoError(t, err)

	c := New(200, 150)
	c.Clear(white)
	stats := render.New(render.DefaultOptions()).Render(c, render.Size{Width: 200, Height: 150},
		[]*mesh.Mesh{cube}, camera.Default(), render.ModeSolid, render.Selection{})
	require.Equal(t, 6, stats.Visible)

	// The cube sits on the target at the centre of the view.
	assert.NotEqual(t, white, c.Image().RGBAAt(100, 75))

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, decoded.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	c := New(8, 8)
	path := t.TempDir() + "/out.png"
	require.NoError(t, c.SavePNG(path))
	assert.Error(t, c.SavePNG(t.TempDir()+"/missing/out.png"))
}
