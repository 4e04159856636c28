package convert

import (
	"github.com/Faultbox/geomconv/pkg/geometry"
)

// ShapeInfo describes one shape of a scene.
type ShapeInfo struct {
	DEF        string
	Type       string
	Points     int
	Primitives int
	Triangles  int
	Placed     bool
	Err        error // topology problem reported by Validate
}

// Describe summarizes every shape of scene.
func Describe(scene *geometry.Scene) []ShapeInfo {
	infos := make([]ShapeInfo, 0, len(scene.Shapes))
	for _, sh := range scene.Shapes {
		info := ShapeInfo{DEF: sh.DEF, Placed: sh.Transform != nil, Type: "-"}
		if g := sh.Geometry; g != nil {
			info.Type = g.Type().String()
			info.Points = pointCount(g)
			info.Primitives = primitiveCount(g)
			info.Err = geometry.Validate(g)
			if n, err := geometry.TriangleCount(g); err == nil {
				info.Triangles = n
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func pointCount(g geometry.Geometry) int {
	switch n := g.(type) {
	case geometry.Attributed:
		return len(n.Shared().Points())
	case *geometry.LineSet:
		if n.Coord != nil {
			return len(n.Coord.Point)
		}
	case *geometry.IndexedLineSet:
		if n.Coord != nil {
			return len(n.Coord.Point)
		}
	}
	return 0
}

func primitiveCount(g geometry.Geometry) int {
	switch n := g.(type) {
	case *geometry.TriangleSet:
		return len(n.Points()) / 3
	case *geometry.IndexedTriangleSet:
		return len(n.Index) / 3
	case *geometry.TriangleFanSet:
		return len(n.FanCount)
	case *geometry.TriangleStripSet:
		return len(n.StripCount)
	case *geometry.LineSet:
		return len(n.VertexCount)
	case *geometry.IndexedTriangleFanSet:
		return len(geometry.SplitPrimitives(n.Index))
	case *geometry.IndexedTriangleStripSet:
		return len(geometry.SplitPrimitives(n.Index))
	case *geometry.IndexedLineSet:
		return len(geometry.SplitPrimitives(n.CoordIndex))
	}
	return 0
}
