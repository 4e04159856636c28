package geometry

import "fmt"

// IdentityIndex returns [0, 1, ..., n-1].
func IdentityIndex(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

// CountedIndex walks counts and, for each primitive of length L, emits L
// consecutive coordinate indices followed by one sentinel. The cursor runs
// on across primitives, so the result has sum(counts)+len(counts) entries.
func CountedIndex(counts []int32, available, minLen int) ([]int32, error) {
	total := 0
	for i, c := range counts {
		if int(c) < minLen {
			return nil, fmt.Errorf("%w: primitive %d has %d vertices, need %d",
				ErrMalformedTopology, i, c, minLen)
		}
		total += int(c)
	}
	if total > available {
		return nil, fmt.Errorf("%w: counts need %d, have %d", ErrCountMismatch, total, available)
	}

	out := make([]int32, 0, total+len(counts))
	var cursor int32
	for _, c := range counts {
		for j := int32(0); j < c; j++ {
			out = append(out, cursor)
			cursor++
		}
		out = append(out, Sentinel)
	}
	return out, nil
}

// IndexTriangleSet promotes a TriangleSet to an IndexedTriangleSet whose
// index is the identity over its coordinates.
func IndexTriangleSet(src *TriangleSet) (*IndexedTriangleSet, error) {
	return newIndexedTriangleSet(src, IdentityIndex(len(src.Points())))
}

// IndexTriangleStripSet promotes a TriangleStripSet to an
// IndexedTriangleStripSet.
func IndexTriangleStripSet(src *TriangleStripSet) (*IndexedTriangleStripSet, error) {
	index, err := CountedIndex(src.StripCount, len(src.Points()), minTriangleVertices)
	if err != nil {
		return nil, err
	}
	dst := NewIndexedTriangleStripSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	dst.Index = index
	return dst, nil
}

// IndexTriangleFanSet promotes a TriangleFanSet to an IndexedTriangleFanSet.
func IndexTriangleFanSet(src *TriangleFanSet) (*IndexedTriangleFanSet, error) {
	index, err := CountedIndex(src.FanCount, len(src.Points()), minTriangleVertices)
	if err != nil {
		return nil, err
	}
	dst := NewIndexedTriangleFanSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	dst.Index = index
	return dst, nil
}

// IndexLineSet promotes a LineSet to an IndexedLineSet with per-vertex color.
func IndexLineSet(src *LineSet) (*IndexedLineSet, error) {
	var available int
	if src.Coord != nil {
		available = len(src.Coord.Point)
	}
	index, err := CountedIndex(src.VertexCount, available, minLineVertices)
	if err != nil {
		return nil, err
	}
	dst := NewIndexedLineSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	dst.ColorPerVertex = true
	dst.CoordIndex = index
	return dst, nil
}
