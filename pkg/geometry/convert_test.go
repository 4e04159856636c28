package geometry

import (
	"errors"
	"slices"
	"testing"
)

func TestTriangulate(t *testing.T) {
	fanSet := NewTriangleFanSet()
	fanSet.Coord = points(7)
	fanSet.FanCount = []int32{4, 3}

	stripSet := NewTriangleStripSet()
	stripSet.Coord = points(5)
	stripSet.StripCount = []int32{5}

	triSet := NewTriangleSet()
	triSet.Coord = points(6)

	its := NewIndexedTriangleSet()
	its.Coord = points(3)
	its.Index = []int32{2, 1, 0}

	tests := []struct {
		name string
		g    Geometry
		want []int32
	}{
		{"fan set", fanSet, []int32{0, 1, 2, 0, 2, 3, 4, 5, 6}},
		{"strip set", stripSet, []int32{0, 1, 2, 2, 1, 3, 2, 3, 4}},
		{"triangle set", triSet, []int32{0, 1, 2, 3, 4, 5}},
		{"indexed triangle set", its, []int32{2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Triangulate(tt.g)
			if err != nil {
				t.Fatalf("Triangulate failed: %v", err)
			}
			if !slices.Equal(out.Index, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, out.Index)
			}
			if out == tt.g {
				t.Error("expected a new node")
			}
		})
	}
}

func TestTriangulate_Lines(t *testing.T) {
	if _, err := Triangulate(NewLineSet()); !errors.Is(err, ErrNotTriangulable) {
		t.Errorf("expected ErrNotTriangulable, got %v", err)
	}
}

func TestToIndexed(t *testing.T) {
	strips := NewTriangleStripSet()
	strips.Coord = points(3)
	strips.StripCount = []int32{3}

	g, err := ToIndexed(strips)
	if err != nil {
		t.Fatalf("ToIndexed failed: %v", err)
	}
	if g.Type() != NodeIndexedTriangleStripSet {
		t.Errorf("expected IndexedTriangleStripSet, got %s", g.Type())
	}

	its := NewIndexedTriangleSet()
	g, err = ToIndexed(its)
	if err != nil {
		t.Fatalf("ToIndexed failed: %v", err)
	}
	if g != Geometry(its) {
		t.Error("expected indexed geometry to pass through")
	}
}

func TestToIndexed_ErrorIsUntypedNil(t *testing.T) {
	strips := NewTriangleStripSet()
	strips.StripCount = []int32{3}

	g, err := ToIndexed(strips)
	if !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected ErrCountMismatch, got %v", err)
	}
	if g != nil {
		t.Errorf("expected nil geometry, got %#v", g)
	}
}

func TestToUnindexed(t *testing.T) {
	ils := NewIndexedLineSet()
	ils.Coord = points(2)
	ils.CoordIndex = []int32{0, 1}

	g, err := ToUnindexed(ils)
	if err != nil {
		t.Fatalf("ToUnindexed failed: %v", err)
	}
	if g.Type() != NodeLineSet {
		t.Errorf("expected LineSet, got %s", g.Type())
	}
	if g.Type() != ils.Type().Complement() {
		t.Errorf("expected complement of %s, got %s", ils.Type(), g.Type())
	}
}

func TestTriangleCount(t *testing.T) {
	fans := NewIndexedTriangleFanSet()
	fans.Index = []int32{0, 1, 2, 3, 4, -1, 5, 6, 7}

	ts := NewTriangleSet()
	ts.Coord = points(9)

	tests := []struct {
		name string
		g    Geometry
		want int
	}{
		{"fans", fans, 4},
		{"triangle set", ts, 3},
		{"lines", NewIndexedLineSet(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TriangleCount(tt.g)
			if err != nil {
				t.Fatalf("TriangleCount failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d triangles, got %d", tt.want, got)
			}
		})
	}
}
