package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/export"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
	"github.com/Faultbox/meshkit/pkg/render"
)

// Config errors.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidColor  = errors.New("invalid color")
)

// Tessellation used when a scene entry leaves it unset.
const (
	defaultSegments = 24
	defaultRings    = 16
)

// Validate checks the settings that can be checked without building anything.
func (c *Config) Validate() error {
	if !c.Size().Valid() {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ExportFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Scene.Meshes))
	for i, m := range c.Scene.Meshes {
		if m.ID == "" {
			return fmt.Errorf("%w: scene mesh %d has no id", ErrInvalidConfig, i)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate scene mesh id %q", ErrInvalidConfig, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Size returns the render viewport size.
func (c *Config) Size() render.Size {
	return render.Size{Width: float32(c.Render.Width), Height: float32(c.Render.Height)}
}

// Mode returns the parsed render mode.
func (c *Config) Mode() (render.Mode, error) {
	return render.ParseMode(c.Render.Mode)
}

// ExportFormat returns the parsed export format.
func (c *Config) ExportFormat() (export.Format, error) {
	return export.ParseFormat(c.Export.Format)
}

// RenderOptions builds renderer options from the render section.
func (c *Config) RenderOptions(log *zap.Logger) (render.Options, error) {
	r := c.Render
	opts := render.DefaultOptions()
	opts.Light = render.LightDirection(r.Light.Azimuth, r.Light.Elevation)
	opts.Ambient = r.Light.Ambient
	opts.EdgeWidth = r.EdgeWidth
	opts.ShowGrid = r.ShowGrid
	opts.GridSize = r.GridSize
	opts.GridDivisions = r.GridDivisions
	opts.ShowAxes = r.ShowAxes
	opts.AxisLength = r.AxisLength
	opts.Logger = log

	overrides := []struct {
		value string
		dst   *color.RGBA
	}{
		{r.Colors.Surface, &opts.Palette.Surface},
		{r.Colors.Selected, &opts.Palette.Selected},
		{r.Colors.Hovered, &opts.Palette.Hovered},
		{r.Colors.Edge, &opts.Palette.Edge},
		{r.Colors.Grid, &opts.Palette.Grid},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		col, err := ParseColor(o.value)
		if err != nil {
			return render.Options{}, err
		}
		*o.dst = col
	}
	return opts, nil
}

// Background returns the parsed background colour.
func (c *Config) Background() (color.RGBA, error) {
	return ParseColor(c.Render.Background)
}

// NewCamera builds a camera from the camera section.
func (c CameraConfig) NewCamera() (*camera.Camera, error) {
	return camera.New(vec3(c.Position), vec3(c.Target), vec3(c.Up), c.FovY, c.Near, c.Far)
}

// Build creates every scene mesh in order.
func (s SceneConfig) Build() ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, 0, len(s.Meshes))
	for _, mc := range s.Meshes {
		m, err := mc.Build()
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Build creates the primitive and places it in the world.
func (mc MeshConfig) Build() (*mesh.Mesh, error) {
	segments := mc.Segments
	if segments == 0 {
		segments = defaultSegments
	}
	rings := mc.Rings
	if rings == 0 {
		rings = defaultRings
	}

	var (
		m   *mesh.Mesh
		err error
	)
	switch strings.ToLower(mc.Shape) {
	case "cube":
		m, err = mesh.Cube(mc.ID, mc.Size[0])
	case "box":
		m, err = mesh.Box(mc.ID, mc.Size[0], mc.Size[1], mc.Size[2])
	case "plane":
		m, err = mesh.Plane(mc.ID, mc.Size[0], mc.Size[2])
	case "cylinder":
		m, err = mesh.Cylinder(mc.ID, mc.Radius, mc.Height, segments)
	case "sphere":
		m, err = mesh.Sphere(mc.ID, mc.Radius, rings, segments)
	default:
		return nil, fmt.Errorf("%w: mesh %q has unknown shape %q", ErrInvalidConfig, mc.ID, mc.Shape)
	}
	if err != nil {
		return nil, fmt.Errorf("building mesh %q: %w", mc.ID, err)
	}

	if mc.Position == [3]float32{} && mc.RotateY == 0 && (mc.Scale == 0 || mc.Scale == 1) {
		return m, nil
	}
	return m.Transform(mc.ID, mc.modelMatrix()), nil
}

func (mc MeshConfig) modelMatrix() math.Mat4 {
	scale := mc.Scale
	if scale == 0 {
		scale = 1
	}
	p := mc.Position
	return math.Translate(p[0], p[1], p[2]).
		Mul(math.RotateAxis(math.Vec3{Y: 1}, math.Radians(mc.RotateY))).
		Mul(math.Scale(scale, scale, scale))
}

// ParseColor parses #RRGGBB or #RRGGBBAA with straight (non-premultiplied)
// alpha and returns the premultiplied colour. The leading '#' is optional.
func ParseColor(s string) (color.RGBA, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || (len(b) != 3 && len(b) != 4) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}
	if len(b) == 4 {
		c.A = b[3]
	}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
