// Package mesh provides the immutable indexed-triangle container shared by the
// renderer and the exporters.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/math"
)

// Mesh errors.
var (
	ErrInvalidMesh = errors.New("invalid mesh")
	ErrNoMeshes    = errors.New("no meshes given")
)

// DegenerateEpsilon is the cross-product length below which a triangle is
// treated as degenerate.
const DegenerateEpsilon = 1e-8

// Mesh is an indexed triangle mesh. It is never modified after construction;
// geometry changes produce a new Mesh that may reuse the same ID.
//
// Positions and normals are flat x,y,z triples, one per vertex. Indices are
// grouped in threes, one triple per triangle, in winding order.
type Mesh struct {
	id        string
	positions []float32
	normals   []float32
	indices   []uint32
}

// New validates the buffers and builds a Mesh. The slices are copied.
// When normals is empty, smooth vertex normals are derived from the faces.
func New(id string, positions, normals []float32, indices []uint32) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position components is not a multiple of 3", ErrInvalidMesh, len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	if len(normals) != 0 && len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normal components for %d position components", ErrInvalidMesh, len(normals), len(positions))
	}

	if i, ok := firstNonFinite(positions); !ok {
		return nil, fmt.Errorf("%w: position component %d is not finite", ErrInvalidMesh, i)
	}
	if i, ok := firstNonFinite(normals); !ok {
		return nil, fmt.Errorf("%w: normal component %d is not finite", ErrInvalidMesh, i)
	}

	vertexCount := uint32(len(positions) / 3)
	for i, idx := range indices {
		if idx >= vertexCount {
			return nil, fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, vertexCount)
		}
	}

	m := &Mesh{
		id:        id,
		positions: append([]float32(nil), positions...),
		indices:   append([]uint32(nil), indices...),
	}
	if len(normals) == 0 {
		m.normals = m.smoothNormals()
	} else {
		m.normals = append([]float32(nil), normals...)
	}
	return m, nil
}

// ID returns the mesh identity.
func (m *Mesh) ID() string {
	return m.id
}

// Equal reports whether both meshes share an identity. Geometry is not compared.
func (m *Mesh) Equal(other *Mesh) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.id == other.id
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Positions returns the flat position buffer. The slice must not be modified.
func (m *Mesh) Positions() []float32 {
	return m.positions
}

// Normals returns the flat normal buffer. The slice must not be modified.
func (m *Mesh) Normals() []float32 {
	return m.normals
}

// Indices returns the index buffer. The slice must not be modified.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 {
	return math.Vec3{X: m.positions[i*3], Y: m.positions[i*3+1], Z: m.positions[i*3+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) math.Vec3 {
	return math.Vec3{X: m.normals[i*3], Y: m.normals[i*3+1], Z: m.normals[i*3+2]}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (i0, i1, i2 int) {
	return int(m.indices[t*3]), int(m.indices[t*3+1]), int(m.indices[t*3+2])
}

// TriangleVertices returns the three corner positions of triangle t.
func (m *Mesh) TriangleVertices(t int) (v0, v1, v2 math.Vec3) {
	i0, i1, i2 := m.Triangle(t)
	return m.Vertex(i0), m.Vertex(i1), m.Vertex(i2)
}

// FaceNormal returns the unit normal of triangle t following its winding.
// ok is false when the triangle is degenerate.
func (m *Mesh) FaceNormal(t int) (n math.Vec3, ok bool) {
	v0, v1, v2 := m.TriangleVertices(t)
	return FaceNormal(v0, v1, v2)
}

// FaceNormal returns the normalized cross product of (v1-v0) and (v2-v0).
// ok is false and n is zero when the cross product is shorter than
// DegenerateEpsilon or not finite.
func FaceNormal(v0, v1, v2 math.Vec3) (n math.Vec3, ok bool) {
	c := v1.Sub(v0).Cross(v2.Sub(v0))
	l := c.Length()
	if !c.IsFinite() || !(l >= DegenerateEpsilon) || gomath.IsInf(float64(l), 0) {
		return math.Vec3{}, false
	}
	return c.Scale(1 / l), true
}

// Bounds returns the axis-aligned bounding box. An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	n := m.VertexCount()
	if n == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	lo = m.Vertex(0)
	hi = lo
	for i := 1; i < n; i++ {
		v := m.Vertex(i)
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

// Transform returns a copy of the mesh with positions transformed by xf and
// normals by its inverse transpose. The result carries the given id.
func (m *Mesh) Transform(id string, xf math.Mat4) *Mesh {
	normalXf := xf.Inverse().Transpose()
	out := &Mesh{
		id:        id,
		positions: make([]float32, len(m.positions)),
		normals:   make([]float32, len(m.normals)),
		indices:   append([]uint32(nil), m.indices...),
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := xf.TransformPoint(m.Vertex(i))
		n := normalXf.TransformDirection(m.Normal(i)).Normalize()
		copy(out.positions[i*3:], []float32{p.X, p.Y, p.Z})
		copy(out.normals[i*3:], []float32{n.X, n.Y, n.Z})
	}
	return out
}

// firstNonFinite returns the index of the first NaN or infinite value.
func firstNonFinite(values []float32) (int, bool) {
	for i, v := range values {
		if gomath.IsNaN(float64(v)) || gomath.IsInf(float64(v), 0) {
			return i, false
		}
	}
	return 0, true
}

// smoothNormals averages the area-weighted face normals around each vertex.
func (m *Mesh) smoothNormals() []float32 {
	acc := make([]math.Vec3, m.VertexCount())
	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.Triangle(t)
		v0, v1, v2 := m.Vertex(i0), m.Vertex(i1), m.Vertex(i2)
		// Unnormalized cross product weights by twice the triangle area.
		c := v1.Sub(v0).Cross(v2.Sub(v0))
		acc[i0] = acc[i0].Add(c)
		acc[i1] = acc[i1].Add(c)
		acc[i2] = acc[i2].Add(c)
	}

	normals := make([]float32, len(m.positions))
	for i, n := range acc {
		n = n.Normalize()
		normals[i*3] = n.X
		normals[i*3+1] = n.Y
		normals[i*3+2] = n.Z
	}
	return normals
}
