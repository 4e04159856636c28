// Package geometry converts X3D triangle and line geometry between its
// indexed and non-indexed forms.
//
// Every conversion is a pure function: it builds a new node, shallow-copies
// the shared attributes of the source (sub-nodes are aliased, not cloned)
// and installs a freshly computed index or count buffer. Source nodes are
// never modified.
package geometry

import "github.com/Faultbox/geomconv/pkg/encoding"

// Sentinel ends one primitive inside a shared index buffer.
const Sentinel int32 = -1

// Geometry is an X3D geometry node.
type Geometry interface {
	encoding.Encoder
	Type() NodeType
}

// Attributed is implemented by the triangle geometry nodes, which share
// rendering flags and attribute sub-nodes.
type Attributed interface {
	Geometry
	Shared() *Attributes
}

// Coordinate holds vertex positions.
type Coordinate struct {
	DEF   string
	Point [][3]float32
}

// Encode implements encoding.Encoder.
func (c *Coordinate) Encode(s encoding.Sink) {
	s.StartNode("Coordinate", c.DEF)
	s.Vec3s("point", c.Point)
	s.EndNode()
}

// Normal holds normal vectors.
type Normal struct {
	DEF    string
	Vector [][3]float32
}

// Encode implements encoding.Encoder.
func (n *Normal) Encode(s encoding.Sink) {
	s.StartNode("Normal", n.DEF)
	s.Vec3s("vector", n.Vector)
	s.EndNode()
}

// Color holds RGB colors.
type Color struct {
	DEF   string
	Color [][3]float32
}

// Encode implements encoding.Encoder.
func (c *Color) Encode(s encoding.Sink) {
	s.StartNode("Color", c.DEF)
	s.Vec3s("color", c.Color)
	s.EndNode()
}

// TextureCoordinate holds 2D texture coordinates.
type TextureCoordinate struct {
	DEF   string
	Point [][2]float32
}

// Encode implements encoding.Encoder.
func (t *TextureCoordinate) Encode(s encoding.Sink) {
	s.StartNode("TextureCoordinate", t.DEF)
	s.Vec2s("point", t.Point)
	s.EndNode()
}

// Attributes are the fields every triangle geometry node carries.
type Attributes struct {
	CCW             bool
	Solid           bool
	ColorPerVertex  bool
	NormalPerVertex bool

	Coord    *Coordinate
	Normal   *Normal
	Color    *Color
	TexCoord *TextureCoordinate
}

// DefaultAttributes returns the X3D field defaults.
func DefaultAttributes() Attributes {
	return Attributes{
		CCW:             true,
		Solid:           true,
		ColorPerVertex:  true,
		NormalPerVertex: true,
	}
}

// Shared returns the attribute block itself.
func (a *Attributes) Shared() *Attributes {
	return a
}

// Points returns the coordinate buffer, or nil when no Coordinate is attached.
func (a *Attributes) Points() [][3]float32 {
	if a.Coord == nil {
		return nil
	}
	return a.Coord.Point
}

func (a *Attributes) encodeFlags(s encoding.Sink) {
	s.Bool("ccw", a.CCW)
	s.Bool("colorPerVertex", a.ColorPerVertex)
	s.Bool("normalPerVertex", a.NormalPerVertex)
	s.Bool("solid", a.Solid)
}

func (a *Attributes) encodeNodes(s encoding.Sink) {
	if a.Coord != nil {
		s.StartField("coord")
		a.Coord.Encode(s)
	}
	if a.Color != nil {
		s.StartField("color")
		a.Color.Encode(s)
	}
	if a.Normal != nil {
		s.StartField("normal")
		a.Normal.Encode(s)
	}
	if a.TexCoord != nil {
		s.StartField("texCoord")
		a.TexCoord.Encode(s)
	}
}

// TriangleSet consumes coordinates three at a time.
type TriangleSet struct {
	Attributes
}

// NewTriangleSet returns a TriangleSet with default attributes.
func NewTriangleSet() *TriangleSet {
	return &TriangleSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*TriangleSet) Type() NodeType { return NodeTriangleSet }

// Encode implements encoding.Encoder.
func (g *TriangleSet) Encode(s encoding.Sink) {
	s.StartNode(NodeTriangleSet.String(), "")
	g.encodeFlags(s)
	g.encodeNodes(s)
	s.EndNode()
}

// TriangleFanSet consumes coordinates in fans of FanCount vertices.
type TriangleFanSet struct {
	Attributes
	FanCount []int32
}

// NewTriangleFanSet returns a TriangleFanSet with default attributes.
func NewTriangleFanSet() *TriangleFanSet {
	return &TriangleFanSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*TriangleFanSet) Type() NodeType { return NodeTriangleFanSet }

// Encode implements encoding.Encoder.
func (g *TriangleFanSet) Encode(s encoding.Sink) {
	s.StartNode(NodeTriangleFanSet.String(), "")
	g.encodeFlags(s)
	s.Int32s("fanCount", g.FanCount)
	g.encodeNodes(s)
	s.EndNode()
}

// TriangleStripSet consumes coordinates in strips of StripCount vertices.
type TriangleStripSet struct {
	Attributes
	StripCount []int32
}

// NewTriangleStripSet returns a TriangleStripSet with default attributes.
func NewTriangleStripSet() *TriangleStripSet {
	return &TriangleStripSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*TriangleStripSet) Type() NodeType { return NodeTriangleStripSet }

// Encode implements encoding.Encoder.
func (g *TriangleStripSet) Encode(s encoding.Sink) {
	s.StartNode(NodeTriangleStripSet.String(), "")
	g.encodeFlags(s)
	s.Int32s("stripCount", g.StripCount)
	g.encodeNodes(s)
	s.EndNode()
}

// IndexedTriangleSet references coordinates three indices per triangle.
type IndexedTriangleSet struct {
	Attributes
	Index []int32
}

// NewIndexedTriangleSet returns an IndexedTriangleSet with default attributes.
func NewIndexedTriangleSet() *IndexedTriangleSet {
	return &IndexedTriangleSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*IndexedTriangleSet) Type() NodeType { return NodeIndexedTriangleSet }

// Encode implements encoding.Encoder.
func (g *IndexedTriangleSet) Encode(s encoding.Sink) {
	s.StartNode(NodeIndexedTriangleSet.String(), "")
	g.encodeFlags(s)
	s.Int32s("index", g.Index)
	g.encodeNodes(s)
	s.EndNode()
}

// IndexedTriangleFanSet references coordinates as sentinel-delimited fans.
type IndexedTriangleFanSet struct {
	Attributes
	Index []int32
}

// NewIndexedTriangleFanSet returns an IndexedTriangleFanSet with default attributes.
func NewIndexedTriangleFanSet() *IndexedTriangleFanSet {
	return &IndexedTriangleFanSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*IndexedTriangleFanSet) Type() NodeType { return NodeIndexedTriangleFanSet }

// Encode implements encoding.Encoder.
func (g *IndexedTriangleFanSet) Encode(s encoding.Sink) {
	s.StartNode(NodeIndexedTriangleFanSet.String(), "")
	g.encodeFlags(s)
	s.Int32s("index", g.Index)
	g.encodeNodes(s)
	s.EndNode()
}

// IndexedTriangleStripSet references coordinates as sentinel-delimited strips.
type IndexedTriangleStripSet struct {
	Attributes
	Index []int32
}

// NewIndexedTriangleStripSet returns an IndexedTriangleStripSet with default attributes.
func NewIndexedTriangleStripSet() *IndexedTriangleStripSet {
	return &IndexedTriangleStripSet{Attributes: DefaultAttributes()}
}

// Type implements Geometry.
func (*IndexedTriangleStripSet) Type() NodeType { return NodeIndexedTriangleStripSet }

// Encode implements encoding.Encoder.
func (g *IndexedTriangleStripSet) Encode(s encoding.Sink) {
	s.StartNode(NodeIndexedTriangleStripSet.String(), "")
	g.encodeFlags(s)
	s.Int32s("index", g.Index)
	g.encodeNodes(s)
	s.EndNode()
}

// LineSet consumes coordinates in polylines of VertexCount vertices.
type LineSet struct {
	Coord       *Coordinate
	Color       *Color
	VertexCount []int32
}

// NewLineSet returns an empty LineSet.
func NewLineSet() *LineSet {
	return &LineSet{}
}

// Type implements Geometry.
func (*LineSet) Type() NodeType { return NodeLineSet }

// Encode implements encoding.Encoder.
func (g *LineSet) Encode(s encoding.Sink) {
	s.StartNode(NodeLineSet.String(), "")
	s.Int32s("vertexCount", g.VertexCount)
	encodeLineNodes(s, g.Coord, g.Color)
	s.EndNode()
}

// IndexedLineSet references coordinates as sentinel-delimited polylines.
type IndexedLineSet struct {
	Coord          *Coordinate
	Color          *Color
	ColorPerVertex bool
	CoordIndex     []int32
}

// NewIndexedLineSet returns an empty IndexedLineSet.
func NewIndexedLineSet() *IndexedLineSet {
	return &IndexedLineSet{ColorPerVertex: true}
}

// Type implements Geometry.
func (*IndexedLineSet) Type() NodeType { return NodeIndexedLineSet }

// Encode implements encoding.Encoder.
func (g *IndexedLineSet) Encode(s encoding.Sink) {
	s.StartNode(NodeIndexedLineSet.String(), "")
	s.Bool("colorPerVertex", g.ColorPerVertex)
	s.Int32s("coordIndex", g.CoordIndex)
	encodeLineNodes(s, g.Coord, g.Color)
	s.EndNode()
}

// lineGeometry is implemented by the line nodes, which carry only a
// coordinate and a color sub-node.
type lineGeometry interface {
	lineNodes() (*Coordinate, *Color)
	setLineNodes(coord *Coordinate, color *Color)
}

func (g *LineSet) lineNodes() (*Coordinate, *Color) { return g.Coord, g.Color }

func (g *LineSet) setLineNodes(coord *Coordinate, color *Color) {
	g.Coord, g.Color = coord, color
}

func (g *IndexedLineSet) lineNodes() (*Coordinate, *Color) { return g.Coord, g.Color }

func (g *IndexedLineSet) setLineNodes(coord *Coordinate, color *Color) {
	g.Coord, g.Color = coord, color
}

func encodeLineNodes(s encoding.Sink, coord *Coordinate, color *Color) {
	if coord != nil {
		s.StartField("coord")
		coord.Encode(s)
	}
	if color != nil {
		s.StartField("color")
		color.Encode(s)
	}
}
