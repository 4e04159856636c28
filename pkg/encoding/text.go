package encoding

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// TextWriter writes the X3D classic VRML encoding (.x3dv).
type TextWriter struct {
	w       *bufio.Writer
	depth   int
	pending string
	err     error
}

// NewTextWriter creates a TextWriter over w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Header writes the X3D file header for the given profile.
func (t *TextWriter) Header(version, profile string) {
	t.write("#X3D V" + version + " utf8\n")
	t.write("PROFILE " + profile + "\n\n")
}

// StartNode implements Sink.
func (t *TextWriter) StartNode(nodeType, def string) {
	t.indent()
	if t.pending != "" {
		t.write(t.pending + " ")
		t.pending = ""
	}
	if def != "" {
		t.write("DEF " + def + " ")
	}
	t.write(nodeType + " {\n")
	t.depth++
}

// EndNode implements Sink.
func (t *TextWriter) EndNode() {
	if t.depth > 0 {
		t.depth--
	}
	t.indent()
	t.write("}\n")
}

// StartField implements Sink.
func (t *TextWriter) StartField(name string) {
	t.pending = name
}

// Bool implements Sink.
func (t *TextWriter) Bool(name string, v bool) {
	t.indent()
	if v {
		t.write(name + " TRUE\n")
	} else {
		t.write(name + " FALSE\n")
	}
}

// Floats implements Sink.
func (t *TextWriter) Floats(name string, v []float32) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	t.indent()
	t.write(name + " " + strings.Join(parts, " ") + "\n")
}

// Int32s implements Sink.
func (t *TextWriter) Int32s(name string, v []int32) {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.FormatInt(int64(n), 10)
	}
	t.array(name, parts, " ")
}

// Vec3s implements Sink.
func (t *TextWriter) Vec3s(name string, v [][3]float32) {
	parts := make([]string, len(v))
	for i, p := range v {
		parts[i] = formatFloat(p[0]) + " " + formatFloat(p[1]) + " " + formatFloat(p[2])
	}
	t.array(name, parts, ", ")
}

// Vec2s implements Sink.
func (t *TextWriter) Vec2s(name string, v [][2]float32) {
	parts := make([]string, len(v))
	for i, p := range v {
		parts[i] = formatFloat(p[0]) + " " + formatFloat(p[1])
	}
	t.array(name, parts, ", ")
}

// Err implements Sink.
func (t *TextWriter) Err() error {
	return t.err
}

// Flush writes buffered output and returns the first error seen.
func (t *TextWriter) Flush() error {
	if t.err == nil {
		t.err = t.w.Flush()
	}
	return t.err
}

func (t *TextWriter) array(name string, parts []string, sep string) {
	t.indent()
	if len(parts) == 0 {
		t.write(name + " [ ]\n")
		return
	}
	t.write(name + " [ " + strings.Join(parts, sep) + " ]\n")
}

func (t *TextWriter) indent() {
	t.write(strings.Repeat("  ", t.depth))
}

func (t *TextWriter) write(s string) {
	if t.err != nil {
		return
	}
	_, t.err = t.w.WriteString(s)
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
