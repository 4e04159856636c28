package geometry

import "fmt"

// Minimum vertex counts for a usable primitive.
const (
	minTriangleVertices = 3
	minLineVertices     = 2
)

// Primitive is one sentinel-delimited run of an index buffer.
type Primitive struct {
	Start int // offset of the first index
	Len   int // number of indices, sentinel excluded
}

// CountPrimitives returns the number of non-empty runs in index and the
// number of sentinels seen. A final run without a trailing sentinel still
// counts; empty runs (leading, doubled or lone sentinels) do not.
func CountPrimitives(index []int32) (primitives, delimiters int) {
	open := false
	for _, v := range index {
		if v == Sentinel {
			delimiters++
			if open {
				primitives++
			}
			open = false
			continue
		}
		open = true
	}
	if open {
		primitives++
	}
	return primitives, delimiters
}

// SplitPrimitives returns the non-empty runs of index in buffer order.
func SplitPrimitives(index []int32) []Primitive {
	n, _ := CountPrimitives(index)
	prims := make([]Primitive, 0, n)

	start := 0
	for i, v := range index {
		if v != Sentinel {
			continue
		}
		if i > start {
			prims = append(prims, Primitive{Start: start, Len: i - start})
		}
		start = i + 1
	}
	// trailing run without sentinel
	if len(index) > start {
		prims = append(prims, Primitive{Start: start, Len: len(index) - start})
	}
	return prims
}

// CheckPrimitives fails with ErrMalformedTopology if any run of index has
// fewer than minLen vertices.
func CheckPrimitives(index []int32, minLen int) error {
	for _, p := range SplitPrimitives(index) {
		if p.Len < minLen {
			return fmt.Errorf("%w: run at offset %d has %d vertices, need %d",
				ErrMalformedTopology, p.Start, p.Len, minLen)
		}
	}
	return nil
}

// usable drops runs shorter than minLen; they draw nothing.
func usable(prims []Primitive, minLen int) []Primitive {
	out := make([]Primitive, 0, len(prims))
	for _, p := range prims {
		if p.Len >= minLen {
			out = append(out, p)
		}
	}
	return out
}

// CountsFromIndex derives per-primitive vertex counts from the sentinel
// positions of index. It inverts the counted promotion of strip, fan and
// line sets.
func CountsFromIndex(index []int32) []int32 {
	prims := SplitPrimitives(index)
	counts := make([]int32, len(prims))
	for i, p := range prims {
		counts[i] = int32(p.Len)
	}
	return counts
}

// triangleCount is the number of triangles a set of fan or strip runs
// yields: the indices they hold minus two per run.
func triangleCount(prims []Primitive) int {
	total := 0
	for _, p := range prims {
		total += p.Len
	}
	return total - 2*len(prims)
}
