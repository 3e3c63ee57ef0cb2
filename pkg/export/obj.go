package export

import (
	"bufio"
	"fmt"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

// writeOBJ writes positions, normals and faces. OBJ indices are 1-based and
// each vertex reuses its own normal (f v//vn).
func writeOBJ(w *bufio.Writer, m *mesh.Mesh) error {
	fmt.Fprintln(w, "# meshkit OBJ export")
	fmt.Fprintf(w, "# mesh: %s\n", encoding.ToASCII(m.ID()))
	fmt.Fprintf(w, "# vertices: %d\n", m.VertexCount())
	fmt.Fprintf(w, "# faces: %d\n", m.TriangleCount())

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		fmt.Fprintf(w, "v %s\n", floats('g', v.X, v.Y, v.Z))
	}
	for i := 0; i < m.VertexCount(); i++ {
		n := m.Normal(i)
		fmt.Fprintf(w, "vn %s\n", floats('g', n.X, n.Y, n.Z))
	}
	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.Triangle(t)
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", i0+1, i0+1, i1+1, i1+1, i2+1, i2+1)
	}
	return nil
}
