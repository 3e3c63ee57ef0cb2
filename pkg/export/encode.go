package export

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/meshkit/pkg/mesh"
)

// Export errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownFormat   = errors.New("unknown export format")
)

type writerFunc func(w *bufio.Writer, m *mesh.Mesh) error

var writers = map[Format]writerFunc{
	FormatSTLBinary: writeBinarySTL,
	FormatSTLASCII:  writeASCIISTL,
	FormatOBJ:       writeOBJ,
	FormatPLY:       writePLY,
}

// Encode writes m to w in format f.
func Encode(w io.Writer, m *mesh.Mesh, f Format) error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidArgument)
	}
	write, ok := writers[f]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}

	bw := bufio.NewWriter(w)
	if err := write(bw, m); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", f, err)
	}
	return nil
}

// Marshal returns the encoded bytes of m in format f.
func Marshal(m *mesh.Mesh, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalMeshes encodes several meshes as one. A single mesh is encoded
// directly; more are merged first.
func MarshalMeshes(meshes []*mesh.Mesh, f Format) ([]byte, error) {
	m, err := single(meshes)
	if err != nil {
		return nil, err
	}
	return Marshal(m, f)
}

func single(meshes []*mesh.Mesh) (*mesh.Mesh, error) {
	switch len(meshes) {
	case 0:
		return nil, fmt.Errorf("%w: no meshes to export", ErrInvalidArgument)
	case 1:
		if meshes[0] == nil {
			return nil, fmt.Errorf("%w: nil mesh", ErrInvalidArgument)
		}
		return meshes[0], nil
	}
	m, err := mesh.Merge(meshes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return m, nil
}

// floats formats values separated by spaces with the shortest text that
// parses back to the same float32. format is 'g' (OBJ, PLY) or 'e' (STL).
func floats(format byte, values ...float32) string {
	buf := make([]byte, 0, 16*len(values))
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, float64(v), format, -1, 32)
	}
	return string(buf)
}
