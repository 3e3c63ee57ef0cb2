// Package picking finds the mesh under a screen point by casting a ray
// through the camera.
package picking

import (
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/camera"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

const intersectEpsilon = 1e-7

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay converts pixel coordinates to a world-space ray starting on the
// near plane. invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	var near, far math.Vec3
	if nearWorld.W() != 0 {
		near = nearWorld.PerspectiveDivide()
	}
	if farWorld.W() != 0 {
		far = farWorld.PerspectiveDivide()
	}

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance along the ray to triangle v0 v1 v2
// (Moller-Trumbore). Both windings are hit.
func (r Ray) IntersectTriangle(v0, v1, v2 math.Vec3) (t float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit describes the nearest intersection found by Pick.
type Hit struct {
	MeshID   string
	Triangle int
	Distance float32
	Point    math.Vec3
}

// Pick returns the nearest mesh hit by the ray through pixel (x, y).
// Bounding boxes reject meshes before their triangles are tested.
func Pick(meshes []*mesh.Mesh, cam *camera.Camera, width, height, x, y float32) (Hit, bool) {
	if cam == nil || width <= 0 || height <= 0 {
		return Hit{}, false
	}
	vp, err := cam.ViewProjection(width / height)
	if err != nil {
		return Hit{}, false
	}
	return PickRay(meshes, ScreenToRay(x, y, width, height, vp.Inverse()))
}

// PickRay returns the nearest triangle hit by ray.
func PickRay(meshes []*mesh.Mesh, ray Ray) (Hit, bool) {
	best := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false

	for _, m := range meshes {
		if m == nil || m.TriangleCount() == 0 {
			continue
		}
		lo, hi := m.Bounds()
		if _, ok := ray.IntersectAABB(AABB{Min: lo, Max: hi}); !ok {
			continue
		}
		for tri := 0; tri < m.TriangleCount(); tri++ {
			v0, v1, v2 := m.TriangleVertices(tri)
			t, ok := ray.IntersectTriangle(v0, v1, v2)
			if !ok || t >= best.Distance {
				continue
			}
			best = Hit{MeshID: m.ID(), Triangle: tri, Distance: t, Point: ray.At(t)}
			found = true
		}
	}
	return best, found
}
