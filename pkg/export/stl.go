package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/mesh"
)

// Binary STL layout sizes.
const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal + 3 vertices (12 float32) + uint16 attribute

	stlHeaderPrefix = "meshkit binary STL: "
)

// BinarySTLSize returns the exact byte size of a binary STL with n triangles.
func BinarySTLSize(n int) int {
	return stlHeaderSize + 4 + stlTriangleSize*n
}

func writeBinarySTL(w *bufio.Writer, m *mesh.Mesh) error {
	header := struct {
		Text  [stlHeaderSize]byte
		Count uint32
	}{Count: uint32(m.TriangleCount())}
	copy(header.Text[:], encoding.FixedASCII(stlHeaderPrefix+m.ID(), stlHeaderSize))
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("writing STL header: %w", err)
	}

	var buf [stlTriangleSize]byte
	for t := 0; t < m.TriangleCount(); t++ {
		// Degenerate faces keep their slot with a zero normal.
		n, _ := m.FaceNormal(t)
		v0, v1, v2 := m.TriangleVertices(t)

		off := 0
		for _, v := range [4][3]float32{n.Array(), v0.Array(), v1.Array(), v2.Array()} {
			for _, c := range v {
				binary.LittleEndian.PutUint32(buf[off:], gomath.Float32bits(c))
				off += 4
			}
		}
		binary.LittleEndian.PutUint16(buf[off:], 0)

		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("writing STL triangle %d: %w", t, err)
		}
	}
	return nil
}

func writeASCIISTL(w *bufio.Writer, m *mesh.Mesh) error {
	name := encoding.Token(m.ID())
	fmt.Fprintf(w, "solid %s\n", name)
	for t := 0; t < m.TriangleCount(); t++ {
		n, _ := m.FaceNormal(t)
		v0, v1, v2 := m.TriangleVertices(t)

		fmt.Fprintf(w, "  facet normal %s\n", floats('e', n.X, n.Y, n.Z))
		fmt.Fprintln(w, "    outer loop")
		for _, v := range [3][3]float32{v0.Array(), v1.Array(), v2.Array()} {
			fmt.Fprintf(w, "      vertex %s\n", floats('e', v[0], v[1], v[2]))
		}
		fmt.Fprintln(w, "    endloop")
		fmt.Fprintln(w, "  endfacet")
	}
	_, err := fmt.Fprintf(w, "endsolid %s\n", name)
	return err
}
