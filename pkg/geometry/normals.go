package geometry

import "github.com/Faultbox/geomconv/pkg/math"

var upNormal = math.Vec3{Z: 1}

// GenerateNormals returns a new IndexedTriangleSet carrying one normal per
// coordinate: the normalized sum of the unit face normals of the triangles
// that use it. Faces wind counter-clockwise unless ccw is false, in which
// case normals point the other way. Degenerate faces count as +Z, and
// coordinates no triangle uses, or whose faces cancel out, get +Z.
//
// A node that already has normals is returned as a fresh node sharing
// them.
func GenerateNormals(its *IndexedTriangleSet) (*IndexedTriangleSet, error) {
	points := its.Points()
	if err := CheckTriangleIndex(its.Index, len(points)); err != nil {
		return nil, err
	}
	dst, err := newIndexedTriangleSet(its, its.Index)
	if err != nil {
		return nil, err
	}
	if its.Normal != nil {
		return dst, nil
	}

	sums := make([]math.Vec3, len(points))
	for t := 0; t+2 < len(its.Index); t += 3 {
		c1, c2, c3 := its.Index[t], its.Index[t+1], its.Index[t+2]
		p1, p2, p3 := math.V3(points[c1]), math.V3(points[c2]), math.V3(points[c3])

		face := p3.Sub(p2).Cross(p1.Sub(p2))
		if face.Dot(face) == 0 {
			face = upNormal
		} else {
			face = face.Normalize()
		}
		if !its.CCW {
			face = face.Scale(-1)
		}
		sums[c1] = sums[c1].Add(face)
		sums[c2] = sums[c2].Add(face)
		sums[c3] = sums[c3].Add(face)
	}

	vectors := make([][3]float32, len(points))
	for i, s := range sums {
		if s.Dot(s) == 0 {
			vectors[i] = upNormal.Array()
			continue
		}
		vectors[i] = s.Normalize().Array()
	}

	dst.Normal = &Normal{Vector: vectors}
	dst.NormalPerVertex = true
	return dst, nil
}
