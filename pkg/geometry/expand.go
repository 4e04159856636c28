package geometry

// ExpandFans converts a sentinel-delimited fan index buffer into flat
// triangle triples. Each fan pivots on its first vertex; triangles keep fan
// order and increasing vertex order within a fan. Fans of one or two
// vertices yield no triangles.
func ExpandFans(index []int32) []int32 {
	prims := usable(SplitPrimitives(index), minTriangleVertices)

	out := make([]int32, 0, 3*triangleCount(prims))
	for _, p := range prims {
		run := index[p.Start : p.Start+p.Len]
		center := run[0]
		for i := 1; i+1 < len(run); i++ {
			out = append(out, center, run[i], run[i+1])
		}
	}
	return out
}

// ExpandStrips converts a sentinel-delimited strip index buffer into flat
// triangle triples. Odd triangles of a strip swap their first two vertices
// so every face keeps the strip's orientation; parity restarts per strip.
// Strips of one or two vertices yield no triangles.
func ExpandStrips(index []int32) []int32 {
	prims := usable(SplitPrimitives(index), minTriangleVertices)

	out := make([]int32, 0, 3*triangleCount(prims))
	for _, p := range prims {
		run := index[p.Start : p.Start+p.Len]
		for i := 0; i+2 < len(run); i++ {
			if i%2 == 0 {
				out = append(out, run[i], run[i+1], run[i+2])
			} else {
				out = append(out, run[i+1], run[i], run[i+2])
			}
		}
	}
	return out
}

// FansToTriangleSet converts an IndexedTriangleFanSet into an
// IndexedTriangleSet.
func FansToTriangleSet(src *IndexedTriangleFanSet) (*IndexedTriangleSet, error) {
	return newIndexedTriangleSet(src, ExpandFans(src.Index))
}

// StripsToTriangleSet converts an IndexedTriangleStripSet into an
// IndexedTriangleSet.
func StripsToTriangleSet(src *IndexedTriangleStripSet) (*IndexedTriangleSet, error) {
	return newIndexedTriangleSet(src, ExpandStrips(src.Index))
}

func newIndexedTriangleSet(src Geometry, index []int32) (*IndexedTriangleSet, error) {
	dst := NewIndexedTriangleSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	dst.Index = index
	return dst, nil
}
