// Package export serializes meshes into STL, OBJ and PLY interchange files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a target interchange format.
type Format int

const (
	FormatSTLBinary Format = iota
	FormatSTLASCII
	FormatOBJ
	FormatPLY
)

type formatInfo struct {
	name      string
	extension string
	mimeType  string
}

var formats = map[Format]formatInfo{
	FormatSTLBinary: {"stl", ".stl", "application/sla"},
	FormatSTLASCII:  {"stl-ascii", ".stl", "application/sla"},
	FormatOBJ:       {"obj", ".obj", "model/obj"},
	FormatPLY:       {"ply", ".ply", "application/x-ply"},
}

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatSTLBinary, FormatSTLASCII, FormatOBJ, FormatPLY}
}

// String returns the config/CLI name of the format.
func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return formats[f].extension
}

// MimeType returns the media type for the format.
func (f Format) MimeType() string {
	return formats[f].mimeType
}

// ParseFormat parses a format name. "stl" means binary STL.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "stl", "stl-binary", "stlbinary", "binary-stl":
		return FormatSTLBinary, nil
	case "stl-ascii", "stlascii", "ascii-stl":
		return FormatSTLASCII, nil
	case "obj":
		return FormatOBJ, nil
	case "ply":
		return FormatPLY, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// WithExtension appends the format's extension when path has none.
func WithExtension(path string, f Format) string {
	if filepath.Ext(path) != "" {
		return path
	}
	return path + f.Extension()
}
