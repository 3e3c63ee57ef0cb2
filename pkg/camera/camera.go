// Package camera provides the viewport camera: a look-at pose plus a
// perspective projection, with orbit, zoom and pan controls.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Camera errors.
var (
	ErrInvalidCamera = errors.New("invalid camera")
	ErrInvalidAspect = errors.New("aspect ratio must be positive")
	ErrInvalidZoom   = errors.New("zoom factor must be positive")
)

const (
	// MinDistance keeps zoom from collapsing the camera onto its target.
	MinDistance = 1e-3

	// maxElevation limits orbit to just short of the up axis (89 degrees).
	maxElevation = 89 * gomath.Pi / 180

	parallelEpsilon = 1e-6
)

// Camera is a perspective camera looking from Position at Target.
//
// Invariants: Near > 0, Far > Near, Up not parallel to Target-Position.
// ViewMatrix is undefined when Up is parallel to the view direction.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY float32 // Vertical field of view in degrees
	Near float32
	Far  float32
}

// New creates a camera and checks its invariants.
func New(position, target, up math.Vec3, fovY, near, far float32) (*Camera, error) {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       up,
		FovY:     fovY,
		Near:     near,
		Far:      far,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the default viewport camera looking at the origin.
func Default() *Camera {
	return &Camera{
		Position: math.Vec3{X: 4, Y: 3, Z: 5},
		Target:   math.Vec3{},
		Up:       math.Vec3{Y: 1},
		FovY:     45,
		Near:     0.1,
		Far:      1000,
	}
}

// Validate reports whether the camera satisfies its invariants.
func (c *Camera) Validate() error {
	switch {
	case c.Near <= 0:
		return fmt.Errorf("%w: near %g must be positive", ErrInvalidCamera, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far %g must exceed near %g", ErrInvalidCamera, c.Far, c.Near)
	case c.FovY <= 0 || c.FovY >= 180:
		return fmt.Errorf("%w: fov %g outside (0, 180)", ErrInvalidCamera, c.FovY)
	case c.Distance() < MinDistance:
		return fmt.Errorf("%w: position coincides with target", ErrInvalidCamera)
	case c.Forward().Cross(c.Up.Normalize()).Length() < parallelEpsilon:
		return fmt.Errorf("%w: up is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// Distance returns the distance from position to target.
func (c *Camera) Distance() float32 {
	return c.Position.Distance(c.Target)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Right returns the unit camera right vector.
func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// TrueUp returns the unit up vector orthogonal to the view direction.
func (c *Camera) TrueUp() math.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewMatrix returns the right-handed look-at matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective matrix for the given width/height ratio.
func (c *Camera) ProjectionMatrix(aspect float32) (math.Mat4, error) {
	if aspect <= 0 || gomath.IsNaN(float64(aspect)) || gomath.IsInf(float64(aspect), 0) {
		return math.Mat4{}, fmt.Errorf("%w: %g", ErrInvalidAspect, aspect)
	}
	return math.Perspective(math.Radians(c.FovY), aspect, c.Near, c.Far), nil
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection(aspect float32) (math.Mat4, error) {
	proj, err := c.ProjectionMatrix(aspect)
	if err != nil {
		return math.Mat4{}, err
	}
	return proj.Mul(c.ViewMatrix()), nil
}

// Orbit rotates the position around the target. deltaAzimuth turns around the
// up axis, deltaElevation tilts toward it; both are in radians. Elevation is
// clamped short of the poles so the view never aligns with Up.
func (c *Camera) Orbit(deltaAzimuth, deltaElevation float32) {
	up := c.Up.Normalize()
	offset := c.Position.Sub(c.Target)
	dist := offset.Length()

	offset = math.QuatFromAxisAngle(up, deltaAzimuth).Rotate(offset)

	dir := offset.Scale(1 / dist)
	elevation := float32(gomath.Asin(float64(clamp(dir.Dot(up), -1, 1))))
	target := clamp(elevation+deltaElevation, -maxElevation, maxElevation)
	if step := target - elevation; step != 0 {
		// Rotating about the right vector by -step raises the offset toward up.
		right := up.Cross(dir).Normalize()
		offset = math.QuatFromAxisAngle(right, -step).Rotate(offset)
	}

	// Re-project onto the sphere to avoid drift across many small orbits.
	c.Position = c.Target.Add(offset.Normalize().Scale(dist))
}

// Zoom scales the distance to the target by factor. Values below one move
// closer. The distance never drops below MinDistance.
func (c *Camera) Zoom(factor float32) error {
	if factor <= 0 || gomath.IsNaN(float64(factor)) {
		return fmt.Errorf("%w: %g", ErrInvalidZoom, factor)
	}
	offset := c.Position.Sub(c.Target)
	dist := offset.Length()
	newDist := dist * factor
	if newDist < MinDistance {
		newDist = MinDistance
	}
	c.Position = c.Target.Add(offset.Scale(newDist / dist))
	return nil
}

// Pan moves position and target together along the camera's right and up axes.
func (c *Camera) Pan(deltaX, deltaY float32) {
	delta := c.Right().Scale(deltaX).Add(c.TrueUp().Scale(deltaY))
	c.Position = c.Position.Add(delta)
	c.Target = c.Target.Add(delta)
}

// LookAt moves the target, leaving the position unchanged.
func (c *Camera) LookAt(x, y, z float32) {
	c.Target = math.Vec3{X: x, Y: y, Z: z}
}

// FitToBounds aims at the centre of a bounding box and backs off along the
// current view direction until the box fits the vertical field of view.
func (c *Camera) FitToBounds(lo, hi math.Vec3) {
	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Length() / 2
	if radius < MinDistance {
		radius = 1
	}

	dir := c.Forward()
	half := float64(math.Radians(c.FovY)) / 2
	dist := radius / float32(gomath.Sin(half))

	c.Target = center
	c.Position = center.Sub(dir.Scale(dist))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
