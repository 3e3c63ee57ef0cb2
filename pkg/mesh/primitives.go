package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/math"
)

// boxCorners lists the eight corners of a unit box centred on the origin.
var boxCorners = [8][3]float32{
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
}

// boxIndices winds every face counter-clockwise when seen from outside.
var boxIndices = []uint32{
	4, 5, 6, 4, 6, 7, // +Z
	0, 2, 1, 0, 3, 2, // -Z
	1, 2, 6, 1, 6, 5, // +X
	0, 4, 7, 0, 7, 3, // -X
	3, 7, 6, 3, 6, 2, // +Y
	0, 1, 5, 0, 5, 4, // -Y
}

// Box returns an axis-aligned box centred on the origin with eight shared
// corner vertices and twelve triangles.
func Box(id string, width, height, depth float32) (*Mesh, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: box size %gx%gx%g", ErrInvalidMesh, width, height, depth)
	}

	positions := make([]float32, 0, 24)
	normals := make([]float32, 0, 24)
	for _, c := range boxCorners {
		positions = append(positions, c[0]*width, c[1]*height, c[2]*depth)
		n := math.Vec3{X: c[0], Y: c[1], Z: c[2]}.Normalize()
		normals = append(normals, n.X, n.Y, n.Z)
	}
	return New(id, positions, normals, boxIndices)
}

// Cube returns a box with all sides equal to size.
func Cube(id string, size float32) (*Mesh, error) {
	return Box(id, size, size, size)
}

// Plane returns a two-triangle quad in the XZ plane facing +Y.
func Plane(id string, width, depth float32) (*Mesh, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: plane size %gx%g", ErrInvalidMesh, width, depth)
	}
	hw, hd := width/2, depth/2
	positions := []float32{
		-hw, 0, -hd,
		hw, 0, -hd,
		hw, 0, hd,
		-hw, 0, hd,
	}
	normals := []float32{0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0}
	return New(id, positions, normals, []uint32{0, 3, 2, 0, 2, 1})
}

// Cylinder returns a capped cylinder around the Y axis, centred on the origin.
// Side and cap vertices are separate so the caps stay flat-shaded.
func Cylinder(id string, radius, height float32, segments int) (*Mesh, error) {
	if radius <= 0 || height <= 0 || segments < 3 {
		return nil, fmt.Errorf("%w: cylinder r=%g h=%g segments=%d", ErrInvalidMesh, radius, height, segments)
	}

	hh := height / 2
	var positions, normals []float32
	var indices []uint32
	add := func(p, n math.Vec3) uint32 {
		positions = append(positions, p.X, p.Y, p.Z)
		normals = append(normals, n.X, n.Y, n.Z)
		return uint32(len(positions)/3 - 1)
	}

	ring := make([]math.Vec3, segments)
	for i := range ring {
		theta := 2 * gomath.Pi * float64(i) / float64(segments)
		ring[i] = math.Vec3{X: float32(gomath.Sin(theta)), Z: float32(gomath.Cos(theta))}
	}

	// Side: bottom/top pairs.
	for _, dir := range ring {
		add(math.Vec3{X: dir.X * radius, Y: -hh, Z: dir.Z * radius}, dir)
		add(math.Vec3{X: dir.X * radius, Y: hh, Z: dir.Z * radius}, dir)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		bi, ti := uint32(i*2), uint32(i*2+1)
		bj, tj := uint32(j*2), uint32(j*2+1)
		indices = append(indices, bi, bj, tj, bi, tj, ti)
	}

	// Caps.
	for _, y := range []float32{hh, -hh} {
		up := math.Vec3{Y: 1}
		if y < 0 {
			up = math.Vec3{Y: -1}
		}
		center := add(math.Vec3{Y: y}, up)
		first := uint32(len(positions) / 3)
		for _, dir := range ring {
			add(math.Vec3{X: dir.X * radius, Y: y, Z: dir.Z * radius}, up)
		}
		for i := 0; i < segments; i++ {
			a := first + uint32(i)
			b := first + uint32((i+1)%segments)
			if y > 0 {
				indices = append(indices, center, a, b)
			} else {
				indices = append(indices, center, b, a)
			}
		}
	}

	return New(id, positions, normals, indices)
}

// Sphere returns a UV sphere centred on the origin. The pole rows use single
// triangles so no degenerate faces are produced.
func Sphere(id string, radius float32, rings, segments int) (*Mesh, error) {
	if radius <= 0 || rings < 2 || segments < 3 {
		return nil, fmt.Errorf("%w: sphere r=%g rings=%d segments=%d", ErrInvalidMesh, radius, rings, segments)
	}

	var positions, normals []float32
	for k := 0; k <= rings; k++ {
		phi := gomath.Pi * float64(k) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := 2 * gomath.Pi * float64(s) / float64(segments)
			n := math.Vec3{
				X: float32(gomath.Sin(phi) * gomath.Sin(theta)),
				Y: float32(gomath.Cos(phi)),
				Z: float32(gomath.Sin(phi) * gomath.Cos(theta)),
			}
			positions = append(positions, n.X*radius, n.Y*radius, n.Z*radius)
			normals = append(normals, n.X, n.Y, n.Z)
		}
	}

	stride := uint32(segments + 1)
	var indices []uint32
	for k := 0; k < rings; k++ {
		for s := 0; s < segments; s++ {
			a := uint32(k)*stride + uint32(s)
			b := a + stride
			c := b + 1
			d := a + 1
			if k != rings-1 {
				indices = append(indices, b, c, d)
			}
			if k != 0 {
				indices = append(indices, b, d, a)
			}
		}
	}

	return New(id, positions, normals, indices)
}
