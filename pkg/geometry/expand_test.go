package geometry

import (
	"slices"
	"testing"
)

func TestExpandFans_TwoFans(t *testing.T) {
	src := NewIndexedTriangleFanSet()
	src.Index = []int32{0, 1, 2, 3, -1, 4, 5, 6, -1, 7}

	// the dangling single vertex 7 draws nothing
	its, err := FansToTriangleSet(src)
	if err != nil {
		t.Fatalf("FansToTriangleSet failed: %v", err)
	}

	want := []int32{0, 1, 2, 0, 2, 3, 4, 5, 6}
	if !slices.Equal(its.Index, want) {
		t.Errorf("expected %v, got %v", want, its.Index)
	}
	if len(its.Index)/3 != 3 {
		t.Errorf("expected 3 triangles, got %d", len(its.Index)/3)
	}
}

func TestExpandFans_TriangleCountAndPivot(t *testing.T) {
	lengths := []int{3, 4, 7, 5}
	var index []int32
	var pivots []int32
	next := int32(0)
	expected := 0
	for _, k := range lengths {
		pivots = append(pivots, next)
		for j := 0; j < k; j++ {
			index = append(index, next)
			next++
		}
		index = append(index, Sentinel)
		expected += k - 2
	}

	out := ExpandFans(index)
	if len(out) != 3*expected {
		t.Fatalf("expected %d triangles, got %d indices", expected, len(out))
	}

	tri := 0
	for f, k := range lengths {
		for j := 0; j < k-2; j++ {
			if out[3*tri] != pivots[f] {
				t.Errorf("triangle %d: expected pivot %d, got %d", tri, pivots[f], out[3*tri])
			}
			tri++
		}
	}
}

func TestExpandStrips_WindingAlternates(t *testing.T) {
	out := ExpandStrips([]int32{10, 11, 12, 13, 14, -1, 20, 21, 22, 23})

	want := []int32{
		10, 11, 12,
		12, 11, 13,
		12, 13, 14,
		20, 21, 22, // parity resets on the new strip
		22, 21, 23,
	}
	if !slices.Equal(out, want) {
		t.Errorf("expected %v, got %v", want, out)
	}
}

func TestExpandStrips_TriangleCount(t *testing.T) {
	tests := []struct {
		name      string
		index     []int32
		triangles int
	}{
		{"single triangle", []int32{0, 1, 2}, 1},
		{"terminated", []int32{0, 1, 2, 3, -1}, 2},
		{"three strips", []int32{0, 1, 2, -1, 3, 4, 5, 6, -1, 7, 8, 9, 10, 11}, 1 + 2 + 3},
		{"degenerate strip skipped", []int32{0, 1, -1, 2, 3, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ExpandStrips(tt.index)
			if len(out) != 3*tt.triangles {
				t.Errorf("expected %d triangles, got %d", tt.triangles, len(out)/3)
			}
		})
	}
}

func TestExpand_Empty(t *testing.T) {
	fans := NewIndexedTriangleFanSet()
	fans.Index = []int32{}
	its, err := FansToTriangleSet(fans)
	if err != nil {
		t.Fatalf("expected no error for empty input, got %v", err)
	}
	if len(its.Index) != 0 {
		t.Errorf("expected empty index, got %v", its.Index)
	}

	if out := ExpandStrips([]int32{-1}); len(out) != 0 {
		t.Errorf("expected no triangles, got %v", out)
	}
}

func TestExpand_Deterministic(t *testing.T) {
	src := NewIndexedTriangleStripSet()
	src.Index = []int32{0, 1, 2, 3, 4, -1, 5, 6, 7}

	a, err := StripsToTriangleSet(src)
	if err != nil {
		t.Fatalf("StripsToTriangleSet failed: %v", err)
	}
	b, err := StripsToTriangleSet(src)
	if err != nil {
		t.Fatalf("StripsToTriangleSet failed: %v", err)
	}
	if !slices.Equal(a.Index, b.Index) {
		t.Errorf("repeated conversion differs: %v vs %v", a.Index, b.Index)
	}
}

func TestExpand_CopiesSharedAttributes(t *testing.T) {
	coord := &Coordinate{Point: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}}
	color := &Color{Color: [][3]float32{{1, 0, 0}}}
	src := NewIndexedTriangleFanSet()
	src.Coord = coord
	src.Color = color
	src.CCW = false
	src.ColorPerVertex = false
	src.Index = []int32{0, 1, 2, 3}
	before := slices.Clone(src.Index)

	its, err := FansToTriangleSet(src)
	if err != nil {
		t.Fatalf("FansToTriangleSet failed: %v", err)
	}

	if its.Coord != coord {
		t.Error("expected coordinate sub-node to be shared with the source")
	}
	if its.Color != color {
		t.Error("expected color sub-node to be shared with the source")
	}
	if its.CCW || its.ColorPerVertex || !its.Solid || !its.NormalPerVertex {
		t.Errorf("flags not carried over: %+v", its.Attributes)
	}
	if !slices.Equal(src.Index, before) {
		t.Errorf("source index modified: %v", src.Index)
	}
}
