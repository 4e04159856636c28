package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Faultbox/geomconv/pkg/encoding"
	"github.com/Faultbox/geomconv/pkg/geometry"
)

// X3DB parsing errors.
var (
	ErrInvalidX3DBMagic       = errors.New("invalid X3DB magic")
	ErrUnsupportedX3DBVersion = errors.New("unsupported X3DB version")
	ErrTruncatedX3DBData      = errors.New("truncated X3DB data")
	ErrUnexpectedX3DBRecord   = errors.New("unexpected X3DB record")
)

const x3dbHeaderSize = 6

// X3DBNode is one decoded node of an X3DB stream.
type X3DBNode struct {
	Type string
	DEF  string

	Bools  map[string]bool
	Floats map[string][]float32
	Int32s map[string][]int32
	Vec3s  map[string][][3]float32
	Vec2s  map[string][][2]float32

	// Children holds SFNode/MFNode field values by field name.
	Children map[string][]*X3DBNode
}

// Child returns the first node stored under field, or nil.
func (n *X3DBNode) Child(field string) *X3DBNode {
	if c := n.Children[field]; len(c) > 0 {
		return c[0]
	}
	return nil
}

func newX3DBNode(typ, def string) *X3DBNode {
	return &X3DBNode{
		Type:     typ,
		DEF:      def,
		Bools:    make(map[string]bool),
		Floats:   make(map[string][]float32),
		Int32s:   make(map[string][]int32),
		Vec3s:    make(map[string][][3]float32),
		Vec2s:    make(map[string][][2]float32),
		Children: make(map[string][]*X3DBNode),
	}
}

// X3DBFile is a decoded X3DB stream.
type X3DBFile struct {
	Version struct {
		Major uint8
		Minor uint8
	}
	Roots []*X3DBNode
}

// ParseX3DB parses an X3DB stream from raw bytes.
func ParseX3DB(data []byte) (*X3DBFile, error) {
	if len(data) < x3dbHeaderSize {
		return nil, fmt.Errorf("%w: file too small (%d bytes)", ErrTruncatedX3DBData, len(data))
	}

	if string(data[0:4]) != encoding.BinaryMagic {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidX3DBMagic, string(data[0:4]))
	}

	f := &X3DBFile{}
	f.Version.Major = data[4]
	f.Version.Minor = data[5]
	if f.Version.Major != encoding.BinaryVersionMajor {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedX3DBVersion, f.Version.Major, f.Version.Minor)
	}

	p := x3dbParser{r: bytes.NewReader(data[x3dbHeaderSize:])}
	for {
		tag, err := p.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err := p.record(tag, f); err != nil {
			return nil, err
		}
	}
	if len(p.stack) > 0 {
		return nil, fmt.Errorf("%w: %d unclosed nodes", ErrTruncatedX3DBData, len(p.stack))
	}
	return f, nil
}

// ParseX3DBFile parses an X3DB stream from disk.
func ParseX3DBFile(path string) (*X3DBFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading X3DB file: %w", err)
	}
	return ParseX3DB(data)
}

type x3dbParser struct {
	r     *bytes.Reader
	stack []*X3DBNode
	field string
}

func (p *x3dbParser) top() *X3DBNode {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *x3dbParser) record(tag byte, f *X3DBFile) error {
	switch tag {
	case encoding.TagStartNode:
		typ, err := p.str()
		if err != nil {
			return fmt.Errorf("%w: reading node type", err)
		}
		def, err := p.str()
		if err != nil {
			return fmt.Errorf("%w: reading node DEF", err)
		}
		n := newX3DBNode(typ, def)
		if parent := p.top(); parent != nil {
			if p.field == "" {
				return fmt.Errorf("%w: node %s outside a field", ErrUnexpectedX3DBRecord, typ)
			}
			parent.Children[p.field] = append(parent.Children[p.field], n)
		} else {
			f.Roots = append(f.Roots, n)
		}
		p.field = ""
		p.stack = append(p.stack, n)
		return nil

	case encoding.TagEndNode:
		if len(p.stack) == 0 {
			return fmt.Errorf("%w: end of node at top level", ErrUnexpectedX3DBRecord)
		}
		p.stack = p.stack[:len(p.stack)-1]
		p.field = ""
		return nil

	case encoding.TagField:
		name, err := p.str()
		if err != nil {
			return fmt.Errorf("%w: reading field name", err)
		}
		if p.top() == nil {
			return fmt.Errorf("%w: field %s at top level", ErrUnexpectedX3DBRecord, name)
		}
		p.field = name
		return nil
	}

	n := p.top()
	if n == nil {
		return fmt.Errorf("%w: tag 0x%02x at top level", ErrUnexpectedX3DBRecord, tag)
	}
	name, err := p.str()
	if err != nil {
		return fmt.Errorf("%w: reading value name", err)
	}

	switch tag {
	case encoding.TagBool:
		b, err := p.r.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: reading %s", ErrTruncatedX3DBData, name)
		}
		n.Bools[name] = b != 0
	case encoding.TagFloats:
		v, err := p.floats(1)
		if err != nil {
			return fmt.Errorf("%w: reading %s", err, name)
		}
		n.Floats[name] = v
	case encoding.TagInt32s:
		count, err := p.count(4)
		if err != nil {
			return fmt.Errorf("%w: reading %s", err, name)
		}
		v := make([]int32, count)
		if err := binary.Read(p.r, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("%w: reading %s", ErrTruncatedX3DBData, name)
		}
		n.Int32s[name] = v
	case encoding.TagVec3s:
		flat, err := p.floats(3)
		if err != nil {
			return fmt.Errorf("%w: reading %s", err, name)
		}
		v := make([][3]float32, len(flat)/3)
		for i := range v {
			v[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
		}
		n.Vec3s[name] = v
	case encoding.TagVec2s:
		flat, err := p.floats(2)
		if err != nil {
			return fmt.Errorf("%w: reading %s", err, name)
		}
		v := make([][2]float32, len(flat)/2)
		for i := range v {
			v[i] = [2]float32{flat[i*2], flat[i*2+1]}
		}
		n.Vec2s[name] = v
	default:
		return fmt.Errorf("%w: tag 0x%02x", ErrUnexpectedX3DBRecord, tag)
	}
	return nil
}

func (p *x3dbParser) str() (string, error) {
	var n uint16
	if err := binary.Read(p.r, binary.LittleEndian, &n); err != nil {
		return "", ErrTruncatedX3DBData
	}
	if int(n) > p.r.Len() {
		return "", ErrTruncatedX3DBData
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		return "", ErrTruncatedX3DBData
	}
	return string(buf), nil
}

// count reads an element count and checks the remaining data can hold it.
func (p *x3dbParser) count(elemSize int) (int, error) {
	var n uint32
	if err := binary.Read(p.r, binary.LittleEndian, &n); err != nil {
		return 0, ErrTruncatedX3DBData
	}
	if uint64(n)*uint64(elemSize) > uint64(p.r.Len()) {
		return 0, ErrTruncatedX3DBData
	}
	return int(n), nil
}

// floats reads an array of width-component float vectors as a flat slice.
func (p *x3dbParser) floats(width int) ([]float32, error) {
	count, err := p.count(4 * width)
	if err != nil {
		return nil, err
	}
	bits := make([]uint32, count*width)
	if err := binary.Read(p.r, binary.LittleEndian, bits); err != nil {
		return nil, ErrTruncatedX3DBData
	}
	v := make([]float32, len(bits))
	for i, b := range bits {
		v[i] = math.Float32frombits(b)
	}
	return v, nil
}

// Scene converts the decoded node tree back into a scene. Root nodes must
// be Shape or Transform nodes.
func (f *X3DBFile) Scene() (*geometry.Scene, error) {
	scene := &geometry.Scene{}
	for i, root := range f.Roots {
		sh, err := decodeShape(root)
		if err != nil {
			return nil, fmt.Errorf("root %d (%s): %w", i, root.Type, err)
		}
		scene.Shapes = append(scene.Shapes, sh)
	}
	return scene, nil
}

func decodeShape(n *X3DBNode) (*geometry.Shape, error) {
	var t *geometry.Transform
	if n.Type == "Transform" {
		tr := geometry.IdentityTransform()
		copy(tr.Translation[:], n.Floats["translation"])
		copy(tr.Rotation[:], n.Floats["rotation"])
		copy(tr.Scale[:], n.Floats["scale"])
		t = &tr
		if n = n.Child("children"); n == nil {
			return nil, fmt.Errorf("%w: empty Transform", ErrUnexpectedX3DBRecord)
		}
	}
	if n.Type != "Shape" {
		return nil, fmt.Errorf("%w: expected Shape, got %s", ErrUnexpectedX3DBRecord, n.Type)
	}

	sh := &geometry.Shape{DEF: n.DEF, Transform: t}
	gn := n.Child("geometry")
	if gn == nil {
		return sh, nil
	}
	g, err := decodeGeometry(gn)
	if err != nil {
		return nil, err
	}
	sh.Geometry = g
	return sh, nil
}

func decodeGeometry(n *X3DBNode) (geometry.Geometry, error) {
	doc := &GeometryDoc{
		Type:        n.Type,
		Index:       n.Int32s["index"],
		FanCount:    n.Int32s["fanCount"],
		StripCount:  n.Int32s["stripCount"],
		VertexCount: n.Int32s["vertexCount"],
	}
	if idx, ok := n.Int32s["coordIndex"]; ok {
		doc.Index = idx
	}
	for name, dst := range map[string]**bool{
		"ccw":             &doc.CCW,
		"solid":           &doc.Solid,
		"colorPerVertex":  &doc.ColorPerVertex,
		"normalPerVertex": &doc.NormalPerVertex,
	} {
		if v, ok := n.Bools[name]; ok {
			*dst = boolPtr(v)
		}
	}

	coord, normal := n.Child("coord"), n.Child("normal")
	color, texCoord := n.Child("color"), n.Child("texCoord")
	if coord != nil {
		doc.Coord = nonNil3(coord.Vec3s["point"])
	}
	if normal != nil {
		doc.Normal = nonNil3(normal.Vec3s["vector"])
	}
	if color != nil {
		doc.Color = nonNil3(color.Vec3s["color"])
	}
	if texCoord != nil {
		doc.TexCoord = texCoord.Vec2s["point"]
		if doc.TexCoord == nil {
			doc.TexCoord = [][2]float32{}
		}
	}

	g, err := doc.Build()
	if err != nil {
		return nil, err
	}
	restoreDEFs(g, coord, normal, color, texCoord)
	return g, nil
}

// restoreDEFs copies sub-node DEF names, which GeometryDoc does not carry.
func restoreDEFs(g geometry.Geometry, coord, normal, color, texCoord *X3DBNode) {
	var (
		c  *geometry.Coordinate
		nm *geometry.Normal
		cl *geometry.Color
		tc *geometry.TextureCoordinate
	)
	switch n := g.(type) {
	case geometry.Attributed:
		a := n.Shared()
		c, nm, cl, tc = a.Coord, a.Normal, a.Color, a.TexCoord
	case *geometry.LineSet:
		c, cl = n.Coord, n.Color
	case *geometry.IndexedLineSet:
		c, cl = n.Coord, n.Color
	}
	if c != nil && coord != nil {
		c.DEF = coord.DEF
	}
	if nm != nil && normal != nil {
		nm.DEF = normal.DEF
	}
	if cl != nil && color != nil {
		cl.DEF = color.DEF
	}
	if tc != nil && texCoord != nil {
		tc.DEF = texCoord.DEF
	}
}

func nonNil3(v [][3]float32) [][3]float32 {
	if v == nil {
		return [][3]float32{}
	}
	return v
}
