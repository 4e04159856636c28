package geometry

import "fmt"

// ToIndexed promotes non-indexed geometry to its indexed counterpart.
// Indexed geometry is returned unchanged.
func ToIndexed(g Geometry) (Geometry, error) {
	switch src := g.(type) {
	case *TriangleSet:
		return asGeometry(IndexTriangleSet(src))
	case *TriangleFanSet:
		return asGeometry(IndexTriangleFanSet(src))
	case *TriangleStripSet:
		return asGeometry(IndexTriangleStripSet(src))
	case *LineSet:
		return asGeometry(IndexLineSet(src))
	}
	if g.Type().IsIndexed() {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, g.Type())
}

// ToUnindexed de-indexes indexed geometry into its non-indexed counterpart.
// Non-indexed geometry is returned unchanged.
func ToUnindexed(g Geometry) (Geometry, error) {
	switch src := g.(type) {
	case *IndexedTriangleSet:
		return asGeometry(UnindexTriangleSet(src))
	case *IndexedTriangleFanSet:
		return asGeometry(UnindexTriangleFanSet(src))
	case *IndexedTriangleStripSet:
		return asGeometry(UnindexTriangleStripSet(src))
	case *IndexedLineSet:
		return asGeometry(UnindexLineSet(src))
	}
	if _, ok := constructors[g.Type()]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, g.Type())
}

// asGeometry keeps a failed conversion from leaking a typed nil pointer
// into the Geometry interface.
func asGeometry[T Geometry](g T, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Triangulate converts any triangle geometry into an IndexedTriangleSet.
// An IndexedTriangleSet input yields a fresh node sharing its buffers.
func Triangulate(g Geometry) (*IndexedTriangleSet, error) {
	switch src := g.(type) {
	case *IndexedTriangleSet:
		return newIndexedTriangleSet(src, src.Index)
	case *IndexedTriangleFanSet:
		return FansToTriangleSet(src)
	case *IndexedTriangleStripSet:
		return StripsToTriangleSet(src)
	case *TriangleSet:
		return IndexTriangleSet(src)
	case *TriangleFanSet:
		fans, err := IndexTriangleFanSet(src)
		if err != nil {
			return nil, err
		}
		return FansToTriangleSet(fans)
	case *TriangleStripSet:
		strips, err := IndexTriangleStripSet(src)
		if err != nil {
			return nil, err
		}
		return StripsToTriangleSet(strips)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotTriangulable, g.Type())
}

// TriangleCount returns the number of triangles g renders. Line geometry
// renders none.
func TriangleCount(g Geometry) (int, error) {
	switch src := g.(type) {
	case *LineSet, *IndexedLineSet:
		return 0, nil
	case *TriangleSet:
		return len(src.Points()) / 3, nil
	case *IndexedTriangleSet:
		return len(src.Index) / 3, nil
	}
	its, err := Triangulate(g)
	if err != nil {
		return 0, err
	}
	return len(its.Index) / 3, nil
}
