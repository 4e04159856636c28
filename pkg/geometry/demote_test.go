package geometry

import (
	"errors"
	"slices"
	"testing"
)

func TestUnindexTriangleSet(t *testing.T) {
	src := NewIndexedTriangleSet()
	src.Coord = points(4)
	src.Normal = &Normal{Vector: [][3]float32{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}, {0, 0, -1}}}
	src.Index = []int32{0, 1, 2, 2, 3, 0, 1}

	ts, err := UnindexTriangleSet(src)
	if err != nil {
		t.Fatalf("UnindexTriangleSet failed: %v", err)
	}

	// the partial trailing triangle is dropped
	if len(ts.Coord.Point) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(ts.Coord.Point))
	}
	if ts.Coord.Point[3] != src.Coord.Point[2] {
		t.Errorf("expected vertex 3 to be coord 2, got %v", ts.Coord.Point[3])
	}
	if ts.Normal.Vector[4] != src.Normal.Vector[3] {
		t.Errorf("expected normal 4 to be normal 3, got %v", ts.Normal.Vector[4])
	}
	if ts.Coord == src.Coord {
		t.Error("expected a new coordinate node")
	}
}

func TestUnindexTriangleFanSet_RoundTrip(t *testing.T) {
	src := NewTriangleFanSet()
	src.Coord = points(9)
	src.TexCoord = &TextureCoordinate{Point: make([][2]float32, 9)}
	src.FanCount = []int32{5, 4}

	itfs, err := IndexTriangleFanSet(src)
	if err != nil {
		t.Fatalf("IndexTriangleFanSet failed: %v", err)
	}
	back, err := UnindexTriangleFanSet(itfs)
	if err != nil {
		t.Fatalf("UnindexTriangleFanSet failed: %v", err)
	}

	if !slices.Equal(back.FanCount, src.FanCount) {
		t.Errorf("expected fan counts %v, got %v", src.FanCount, back.FanCount)
	}
	if !slices.Equal(back.Coord.Point, src.Coord.Point) {
		t.Errorf("expected coordinates to survive the round trip")
	}
	if len(back.TexCoord.Point) != 9 {
		t.Errorf("expected 9 texture coordinates, got %d", len(back.TexCoord.Point))
	}
}

func TestUnindexTriangleStripSet_SharedVertices(t *testing.T) {
	src := NewIndexedTriangleStripSet()
	src.Coord = points(4)
	src.Index = []int32{0, 1, 2, 3, -1, 3, 2, 1}

	tss, err := UnindexTriangleStripSet(src)
	if err != nil {
		t.Fatalf("UnindexTriangleStripSet failed: %v", err)
	}
	if !slices.Equal(tss.StripCount, []int32{4, 3}) {
		t.Errorf("expected strip counts [4 3], got %v", tss.StripCount)
	}
	if len(tss.Coord.Point) != 7 {
		t.Errorf("expected 7 vertices, got %d", len(tss.Coord.Point))
	}
}

func TestUnindex_PerFaceColorKept(t *testing.T) {
	color := &Color{Color: [][3]float32{{1, 0, 0}, {0, 1, 0}}}
	src := NewIndexedTriangleSet()
	src.Coord = points(4)
	src.Color = color
	src.ColorPerVertex = false
	src.Index = []int32{0, 1, 2, 0, 2, 3}

	ts, err := UnindexTriangleSet(src)
	if err != nil {
		t.Fatalf("UnindexTriangleSet failed: %v", err)
	}
	if ts.Color != color {
		t.Error("expected per-face color node to be shared")
	}
}

func TestUnindex_OutOfRange(t *testing.T) {
	src := NewIndexedTriangleSet()
	src.Coord = points(2)
	src.Index = []int32{0, 1, 2}

	if _, err := UnindexTriangleSet(src); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestUnindexLineSet(t *testing.T) {
	src := NewIndexedLineSet()
	src.Coord = points(3)
	src.CoordIndex = []int32{0, 1, 2, -1, 2, -1, 2, 0}

	ls, err := UnindexLineSet(src)
	if err != nil {
		t.Fatalf("UnindexLineSet failed: %v", err)
	}
	if !slices.Equal(ls.VertexCount, []int32{3, 2}) {
		t.Errorf("expected vertex counts [3 2], got %v", ls.VertexCount)
	}
	if ls.Coord.Point[3] != src.Coord.Point[2] {
		t.Errorf("expected vertex 3 to be coord 2, got %v", ls.Coord.Point[3])
	}
}
