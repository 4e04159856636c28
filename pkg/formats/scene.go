package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/geomconv/pkg/geometry"
)

// Scene document errors.
var (
	ErrMissingGeometry = errors.New("shape has no geometry")
)

// SceneDoc is the YAML form of a scene.
type SceneDoc struct {
	Shapes []ShapeDoc `yaml:"shapes"`
}

// ShapeDoc is the YAML form of a shape.
type ShapeDoc struct {
	DEF       string        `yaml:"def,omitempty"`
	Transform *TransformDoc `yaml:"transform,omitempty"`
	Geometry  *GeometryDoc  `yaml:"geometry"`
}

// TransformDoc is the YAML form of a shape transform. Missing fields take
// the X3D defaults.
type TransformDoc struct {
	Translation *[3]float32 `yaml:"translation,omitempty"`
	Rotation    *[4]float32 `yaml:"rotation,omitempty"`
	Scale       *[3]float32 `yaml:"scale,omitempty"`
}

// GeometryDoc is the YAML form of any geometry node. Fields that do not
// apply to the node type are ignored.
type GeometryDoc struct {
	Type string `yaml:"type"`

	CCW             *bool `yaml:"ccw,omitempty"`
	Solid           *bool `yaml:"solid,omitempty"`
	ColorPerVertex  *bool `yaml:"colorPerVertex,omitempty"`
	NormalPerVertex *bool `yaml:"normalPerVertex,omitempty"`

	Index       []int32 `yaml:"index,omitempty"`
	FanCount    []int32 `yaml:"fanCount,omitempty"`
	StripCount  []int32 `yaml:"stripCount,omitempty"`
	VertexCount []int32 `yaml:"vertexCount,omitempty"`

	Coord    [][3]float32 `yaml:"coord,omitempty"`
	Normal   [][3]float32 `yaml:"normal,omitempty"`
	Color    [][3]float32 `yaml:"color,omitempty"`
	TexCoord [][2]float32 `yaml:"texCoord,omitempty"`
}

// ParseScene parses a YAML scene document.
func ParseScene(data []byte) (*geometry.Scene, error) {
	var doc SceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return doc.Build()
}

// ParseSceneFile parses a YAML scene document from disk.
func ParseSceneFile(path string) (*geometry.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return ParseScene(data)
}

// MarshalScene encodes a scene as a YAML document.
func MarshalScene(scene *geometry.Scene) ([]byte, error) {
	doc := SceneDoc{Shapes: make([]ShapeDoc, 0, len(scene.Shapes))}
	for _, sh := range scene.Shapes {
		sd := ShapeDoc{DEF: sh.DEF}
		if sh.Transform != nil {
			t := *sh.Transform
			sd.Transform = &TransformDoc{Translation: &t.Translation, Rotation: &t.Rotation, Scale: &t.Scale}
		}
		if sh.Geometry != nil {
			sd.Geometry = geometryToDoc(sh.Geometry)
		}
		doc.Shapes = append(doc.Shapes, sd)
	}
	return yaml.Marshal(&doc)
}

// Build turns the document into a scene.
func (d *SceneDoc) Build() (*geometry.Scene, error) {
	scene := &geometry.Scene{Shapes: make([]*geometry.Shape, 0, len(d.Shapes))}
	for i, sd := range d.Shapes {
		if sd.Geometry == nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sd.DEF, ErrMissingGeometry)
		}
		g, err := sd.Geometry.Build()
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sd.DEF, err)
		}
		sh := &geometry.Shape{DEF: sd.DEF, Geometry: g}
		if sd.Transform != nil {
			t := sd.Transform.Build()
			sh.Transform = &t
		}
		scene.Shapes = append(scene.Shapes, sh)
	}
	return scene, nil
}

// Build returns the transform with defaults filled in.
func (d *TransformDoc) Build() geometry.Transform {
	t := geometry.IdentityTransform()
	if d.Translation != nil {
		t.Translation = *d.Translation
	}
	if d.Rotation != nil {
		t.Rotation = *d.Rotation
	}
	if d.Scale != nil {
		t.Scale = *d.Scale
	}
	return t
}

// Build constructs the geometry node the document describes.
func (d *GeometryDoc) Build() (geometry.Geometry, error) {
	typ, err := geometry.ParseNodeType(d.Type)
	if err != nil {
		return nil, err
	}
	g, err := geometry.New(typ)
	if err != nil {
		return nil, err
	}

	if a, ok := g.(geometry.Attributed); ok {
		d.applyAttributes(a.Shared())
	}

	switch n := g.(type) {
	case *geometry.TriangleFanSet:
		n.FanCount = d.FanCount
	case *geometry.TriangleStripSet:
		n.StripCount = d.StripCount
	case *geometry.IndexedTriangleSet:
		n.Index = d.Index
	case *geometry.IndexedTriangleFanSet:
		n.Index = d.Index
	case *geometry.IndexedTriangleStripSet:
		n.Index = d.Index
	case *geometry.LineSet:
		n.VertexCount = d.VertexCount
		n.Coord, n.Color = d.coord(), d.color()
	case *geometry.IndexedLineSet:
		n.CoordIndex = d.Index
		n.Coord, n.Color = d.coord(), d.color()
		if d.ColorPerVertex != nil {
			n.ColorPerVertex = *d.ColorPerVertex
		}
	}
	return g, nil
}

func (d *GeometryDoc) applyAttributes(a *geometry.Attributes) {
	if d.CCW != nil {
		a.CCW = *d.CCW
	}
	if d.Solid != nil {
		a.Solid = *d.Solid
	}
	if d.ColorPerVertex != nil {
		a.ColorPerVertex = *d.ColorPerVertex
	}
	if d.NormalPerVertex != nil {
		a.NormalPerVertex = *d.NormalPerVertex
	}
	a.Coord = d.coord()
	a.Color = d.color()
	if d.Normal != nil {
		a.Normal = &geometry.Normal{Vector: d.Normal}
	}
	if d.TexCoord != nil {
		a.TexCoord = &geometry.TextureCoordinate{Point: d.TexCoord}
	}
}

func (d *GeometryDoc) coord() *geometry.Coordinate {
	if d.Coord == nil {
		return nil
	}
	return &geometry.Coordinate{Point: d.Coord}
}

func (d *GeometryDoc) color() *geometry.Color {
	if d.Color == nil {
		return nil
	}
	return &geometry.Color{Color: d.Color}
}

func geometryToDoc(g geometry.Geometry) *GeometryDoc {
	d := &GeometryDoc{Type: g.Type().String()}

	if a, ok := g.(geometry.Attributed); ok {
		s := a.Shared()
		d.CCW, d.Solid = boolPtr(s.CCW), boolPtr(s.Solid)
		d.ColorPerVertex, d.NormalPerVertex = boolPtr(s.ColorPerVertex), boolPtr(s.NormalPerVertex)
		if s.Coord != nil {
			d.Coord = s.Coord.Point
		}
		if s.Normal != nil {
			d.Normal = s.Normal.Vector
		}
		if s.Color != nil {
			d.Color = s.Color.Color
		}
		if s.TexCoord != nil {
			d.TexCoord = s.TexCoord.Point
		}
	}

	switch n := g.(type) {
	case *geometry.TriangleFanSet:
		d.FanCount = n.FanCount
	case *geometry.TriangleStripSet:
		d.StripCount = n.StripCount
	case *geometry.IndexedTriangleSet:
		d.Index = n.Index
	case *geometry.IndexedTriangleFanSet:
		d.Index = n.Index
	case *geometry.IndexedTriangleStripSet:
		d.Index = n.Index
	case *geometry.LineSet:
		d.VertexCount = n.VertexCount
		d.Coord, d.Color = lineBuffers(n.Coord, n.Color)
	case *geometry.IndexedLineSet:
		d.Index = n.CoordIndex
		d.ColorPerVertex = boolPtr(n.ColorPerVertex)
		d.Coord, d.Color = lineBuffers(n.Coord, n.Color)
	}
	return d
}

func lineBuffers(coord *geometry.Coordinate, color *geometry.Color) (points, colors [][3]float32) {
	if coord != nil {
		points = coord.Point
	}
	if color != nil {
		colors = color.Color
	}
	return points, colors
}

func boolPtr(b bool) *bool {
	return &b
}
