package geometry

import (
	"fmt"

	"github.com/Faultbox/geomconv/pkg/encoding"
	"github.com/Faultbox/geomconv/pkg/math"
)

// Transform places a shape: scale first, then rotation, then translation.
type Transform struct {
	Translation [3]float32
	Rotation    [4]float32 // axis x, y, z and angle in radians
	Scale       [3]float32
}

// IdentityTransform returns the X3D Transform defaults.
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 1, 0},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix returns the composed transform matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Translation, t.Rotation, t.Scale)
}

// Shape binds one geometry node to an optional DEF name and placement.
type Shape struct {
	DEF       string
	Geometry  Geometry
	Transform *Transform
}

// Encode implements encoding.Encoder. A placed shape is wrapped in a
// Transform node.
func (sh *Shape) Encode(s encoding.Sink) {
	if sh.Transform != nil {
		t := sh.Transform
		s.StartNode("Transform", "")
		s.Floats("translation", t.Translation[:])
		s.Floats("rotation", t.Rotation[:])
		s.Floats("scale", t.Scale[:])
		s.StartField("children")
	}
	s.StartNode("Shape", sh.DEF)
	if sh.Geometry != nil {
		s.StartField("geometry")
		sh.Geometry.Encode(s)
	}
	s.EndNode()
	if sh.Transform != nil {
		s.EndNode()
	}
}

// Scene is an ordered list of shapes.
type Scene struct {
	Shapes []*Shape
}

// Encode implements encoding.Encoder.
func (sc *Scene) Encode(s encoding.Sink) {
	for _, sh := range sc.Shapes {
		sh.Encode(s)
	}
}

// Map applies fn to every shape's geometry and returns a new scene.
// DEF names and transforms carry over.
func (sc *Scene) Map(fn func(Geometry) (Geometry, error)) (*Scene, error) {
	out := &Scene{Shapes: make([]*Shape, 0, len(sc.Shapes))}
	for i, sh := range sc.Shapes {
		g, err := fn(sh.Geometry)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		out.Shapes = append(out.Shapes, &Shape{DEF: sh.DEF, Geometry: g, Transform: sh.Transform})
	}
	return out, nil
}

// Combine merges the triangle geometry of shapes into one shape holding a
// single IndexedTriangleSet. Coordinates are concatenated in shape order and
// each shape's indices are offset by the coordinates before it. The result
// takes the first shape's DEF and flags; color, normal and texture
// coordinates are dropped. Line shapes are skipped. Shapes must be
// flattened first: a shape with a transform fails with ErrTransformedShape.
func Combine(shapes []*Shape) (*Shape, error) {
	var (
		first  *IndexedTriangleSet
		def    string
		points [][3]float32
		index  []int32
	)
	for i, sh := range shapes {
		if sh.Geometry == nil || isLine(sh.Geometry) {
			continue
		}
		if sh.Transform != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, ErrTransformedShape)
		}
		its, err := Triangulate(sh.Geometry)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		if err := CheckTriangleIndex(its.Index, len(its.Points())); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		if first == nil {
			first, def = its, sh.DEF
		}
		offset := int32(len(points))
		for _, idx := range its.Index[:len(its.Index)/3*3] {
			index = append(index, idx+offset)
		}
		points = append(points, its.Points()...)
	}
	if first == nil {
		return nil, ErrNothingToCombine
	}

	dst, err := newIndexedTriangleSet(first, index)
	if err != nil {
		return nil, err
	}
	dst.Coord = &Coordinate{Point: points}
	dst.Normal = nil
	dst.Color = nil
	dst.TexCoord = nil
	return &Shape{DEF: def, Geometry: dst}, nil
}

func isLine(g Geometry) bool {
	t := g.Type()
	return t == NodeLineSet || t == NodeIndexedLineSet
}

// Flatten bakes the shape's transform into new coordinate and normal
// sub-nodes and returns an untransformed shape. A mirroring transform flips
// ccw so faces keep their orientation.
func Flatten(sh *Shape) (*Shape, error) {
	if sh.Transform == nil || sh.Geometry == nil {
		return &Shape{DEF: sh.DEF, Geometry: sh.Geometry, Transform: sh.Transform}, nil
	}
	m := sh.Transform.Matrix()

	g, err := Clone(sh.Geometry)
	if err != nil {
		return nil, err
	}
	switch dst := g.(type) {
	case Attributed:
		a := dst.Shared()
		if a.Coord != nil {
			a.Coord = transformCoordinate(a.Coord, m)
		}
		if a.Normal != nil {
			nm := m.NormalMatrix()
			vectors := make([][3]float32, len(a.Normal.Vector))
			for i, v := range a.Normal.Vector {
				vectors[i] = math.V3(nm.TransformDirection(v)).Normalize().Array()
			}
			a.Normal = &Normal{Vector: vectors}
		}
		if m.Determinant3() < 0 {
			a.CCW = !a.CCW
		}
	case *LineSet:
		if dst.Coord != nil {
			dst.Coord = transformCoordinate(dst.Coord, m)
		}
	case *IndexedLineSet:
		if dst.Coord != nil {
			dst.Coord = transformCoordinate(dst.Coord, m)
		}
	}
	return &Shape{DEF: sh.DEF, Geometry: g}, nil
}

func transformCoordinate(c *Coordinate, m math.Mat4) *Coordinate {
	points := make([][3]float32, len(c.Point))
	for i, p := range c.Point {
		points[i] = m.TransformPoint(p)
	}
	return &Coordinate{Point: points}
}
