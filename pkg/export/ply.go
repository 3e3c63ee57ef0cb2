package export

import (
	"bufio"
	"fmt"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

func writePLY(w *bufio.Writer, m *mesh.Mesh) error {
	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "comment meshkit export %s\n", encoding.ToASCII(m.ID()))
	fmt.Fprintf(w, "element vertex %d\n", m.VertexCount())
	for _, p := range []string{"x", "y", "z", "nx", "ny", "nz"} {
		fmt.Fprintf(w, "property float %s\n", p)
	}
	fmt.Fprintf(w, "element face %d\n", m.TriangleCount())
	fmt.Fprintln(w, "property list uchar int vertex_indices")
	fmt.Fprintln(w, "end_header")

	for i := 0; i < m.VertexCount(); i++ {
		v, n := m.Vertex(i), m.Normal(i)
		fmt.Fprintln(w, floats('g', v.X, v.Y, v.Z, n.X, n.Y, n.Z))
	}
	for t := 0; t < m.TriangleCount(); t++ {
		i0, i1, i2 := m.Triangle(t)
		fmt.Fprintf(w, "3 %d %d %d\n", i0, i1, i2)
	}
	return nil
}
