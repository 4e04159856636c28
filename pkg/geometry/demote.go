package geometry

import "fmt"

// gather returns values[order[0]], values[order[1]], ...
func gather[T any](values []T, order []int32) ([]T, error) {
	out := make([]T, len(order))
	for i, idx := range order {
		if idx < 0 || int(idx) >= len(values) {
			return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, idx, len(values))
		}
		out[i] = values[idx]
	}
	return out, nil
}

// gatherShared fills dst's sub-nodes with the vertices src reaches through
// order. Per-face normals and colors keep face order and stay aliased.
func gatherShared(dst, src *Attributes, order []int32) error {
	points, err := gather(src.Points(), order)
	if err != nil {
		return fmt.Errorf("coord: %w", err)
	}
	dst.Coord = &Coordinate{Point: points}

	if src.Normal != nil && src.NormalPerVertex {
		vectors, err := gather(src.Normal.Vector, order)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		dst.Normal = &Normal{Vector: vectors}
	}
	if src.Color != nil && src.ColorPerVertex {
		colors, err := gather(src.Color.Color, order)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		dst.Color = &Color{Color: colors}
	}
	if src.TexCoord != nil {
		uvs, err := gather(src.TexCoord.Point, order)
		if err != nil {
			return fmt.Errorf("texCoord: %w", err)
		}
		dst.TexCoord = &TextureCoordinate{Point: uvs}
	}
	return nil
}

// runOrder concatenates the usable runs of index and returns their lengths.
func runOrder(index []int32, minLen int) (order, counts []int32) {
	prims := usable(SplitPrimitives(index), minLen)
	counts = make([]int32, len(prims))
	for i, p := range prims {
		order = append(order, index[p.Start:p.Start+p.Len]...)
		counts[i] = int32(p.Len)
	}
	return order, counts
}

// UnindexTriangleSet de-indexes an IndexedTriangleSet. A trailing partial
// triangle is dropped.
func UnindexTriangleSet(src *IndexedTriangleSet) (*TriangleSet, error) {
	order := src.Index[:len(src.Index)-len(src.Index)%3]
	dst := NewTriangleSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	if err := gatherShared(&dst.Attributes, &src.Attributes, order); err != nil {
		return nil, err
	}
	return dst, nil
}

// UnindexTriangleFanSet de-indexes an IndexedTriangleFanSet into a
// TriangleFanSet with one fanCount entry per fan. Degenerate fans are
// dropped.
func UnindexTriangleFanSet(src *IndexedTriangleFanSet) (*TriangleFanSet, error) {
	order, counts := runOrder(src.Index, minTriangleVertices)
	dst := NewTriangleFanSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	if err := gatherShared(&dst.Attributes, &src.Attributes, order); err != nil {
		return nil, err
	}
	dst.FanCount = counts
	return dst, nil
}

// UnindexTriangleStripSet de-indexes an IndexedTriangleStripSet into a
// TriangleStripSet with one stripCount entry per strip. Degenerate strips
// are dropped.
func UnindexTriangleStripSet(src *IndexedTriangleStripSet) (*TriangleStripSet, error) {
	order, counts := runOrder(src.Index, minTriangleVertices)
	dst := NewTriangleStripSet()
	if err := copyShared(dst, src); err != nil {
		return nil, err
	}
	if err := gatherShared(&dst.Attributes, &src.Attributes, order); err != nil {
		return nil, err
	}
	dst.StripCount = counts
	return dst, nil
}

// UnindexLineSet de-indexes an IndexedLineSet into a LineSet. Single-vertex
// polylines are dropped.
func UnindexLineSet(src *IndexedLineSet) (*LineSet, error) {
	order, counts := runOrder(src.CoordIndex, minLineVertices)
	var points [][3]float32
	if src.Coord != nil {
		points = src.Coord.Point
	}
	gathered, err := gather(points, order)
	if err != nil {
		return nil, fmt.Errorf("coord: %w", err)
	}

	dst := NewLineSet()
	dst.Coord = &Coordinate{Point: gathered}
	dst.VertexCount = counts
	if src.Color != nil && src.ColorPerVertex {
		colors, err := gather(src.Color.Color, order)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		dst.Color = &Color{Color: colors}
	}
	return dst, nil
}
