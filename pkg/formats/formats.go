// Package formats reads and writes scene files for geomconv.
//
// YAML scene documents (scene.go) are the input side. Output goes through
// the field sinks in pkg/encoding for .x3dv and .x3db, or through glTF for
// .glb (glb.go). X3DB streams can be read back with ParseX3DB.
package formats

import "errors"

// Output formats.
const (
	FormatX3DV = "x3dv"
	FormatX3DB = "x3db"
	FormatGLB  = "glb"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return "." + format
}

// ValidFormat reports whether format names a supported output format.
func ValidFormat(format string) bool {
	switch format {
	case FormatX3DV, FormatX3DB, FormatGLB, FormatYAML:
		return true
	}
	return false
}
