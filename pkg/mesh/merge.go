package mesh

import (
	"fmt"

	"github.com/google/uuid"
)

// Merge concatenates meshes into one. Vertex buffers are appended in input
// order and each mesh's indices are offset by the vertices that precede it.
// The merged mesh gets a fresh time-ordered id.
func Merge(meshes ...*Mesh) (*Mesh, error) {
	if len(meshes) == 0 {
		return nil, ErrNoMeshes
	}

	var vertexTotal, indexTotal int
	for i, m := range meshes {
		if m == nil {
			return nil, fmt.Errorf("%w: mesh %d is nil", ErrInvalidMesh, i)
		}
		vertexTotal += len(m.positions)
		indexTotal += len(m.indices)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating merged mesh id: %w", err)
	}

	out := &Mesh{
		id:        "merged-" + id.String(),
		positions: make([]float32, 0, vertexTotal),
		normals:   make([]float32, 0, vertexTotal),
		indices:   make([]uint32, 0, indexTotal),
	}
	var offset uint32
	for _, m := range meshes {
		out.positions = append(out.positions, m.positions...)
		out.normals = append(out.normals, m.normals...)
		for _, idx := range m.indices {
			out.indices = append(out.indices, idx+offset)
		}
		offset += uint32(m.VertexCount())
	}
	return out, nil
}
