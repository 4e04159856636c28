package geometry

import "fmt"

// Validate reports malformed topology in g: index runs or counts with too
// few vertices, counts that need more coordinates than exist, and indices
// outside the coordinate buffer. Conversions never call it; they skip
// degenerate primitives instead.
func Validate(g Geometry) error {
	switch src := g.(type) {
	case *TriangleSet:
		return nil
	case *TriangleFanSet:
		return checkCounts(src.FanCount, len(src.Points()), minTriangleVertices)
	case *TriangleStripSet:
		return checkCounts(src.StripCount, len(src.Points()), minTriangleVertices)
	case *LineSet:
		var n int
		if src.Coord != nil {
			n = len(src.Coord.Point)
		}
		return checkCounts(src.VertexCount, n, minLineVertices)
	case *IndexedTriangleSet:
		return CheckTriangleIndex(src.Index, len(src.Points()))
	case *IndexedTriangleFanSet:
		return checkIndexed(src.Index, len(src.Points()), minTriangleVertices)
	case *IndexedTriangleStripSet:
		return checkIndexed(src.Index, len(src.Points()), minTriangleVertices)
	case *IndexedLineSet:
		var n int
		if src.Coord != nil {
			n = len(src.Coord.Point)
		}
		return checkIndexed(src.CoordIndex, n, minLineVertices)
	}
	return fmt.Errorf("%w: %s", ErrUnknownNodeType, g.Type())
}

func checkCounts(counts []int32, available, minLen int) error {
	_, err := CountedIndex(counts, available, minLen)
	return err
}

// checkIndexed reports range errors ahead of short runs so callers that
// tolerate ErrMalformedTopology still see bad indices.
func checkIndexed(index []int32, available, minLen int) error {
	if err := checkRange(index, available); err != nil {
		return err
	}
	return CheckPrimitives(index, minLen)
}

// CheckTriangleIndex checks a flat triangle index, which has no sentinels:
// every value, -1 included, must address one of available coordinates.
func CheckTriangleIndex(index []int32, available int) error {
	for i, v := range index {
		if v < 0 || int(v) >= available {
			return fmt.Errorf("%w: index[%d] = %d (have %d)", ErrIndexOutOfRange, i, v, available)
		}
	}
	return nil
}

func checkRange(index []int32, available int) error {
	for i, v := range index {
		if v == Sentinel {
			continue
		}
		if v < 0 || int(v) >= available {
			return fmt.Errorf("%w: index[%d] = %d (have %d)", ErrIndexOutOfRange, i, v, available)
		}
	}
	return nil
}
