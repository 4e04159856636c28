package geometry

import (
	"errors"
	"testing"
)

func TestParseNodeType(t *testing.T) {
	for typ, name := range nodeNames {
		got, err := ParseNodeType(name)
		if err != nil {
			t.Fatalf("ParseNodeType(%q) failed: %v", name, err)
		}
		if got != typ {
			t.Errorf("ParseNodeType(%q) = %s, want %s", name, got, typ)
		}
	}

	if _, err := ParseNodeType("IndexedFaceSet"); !errors.Is(err, ErrUnknownNodeType) {
		t.Errorf("expected ErrUnknownNodeType, got %v", err)
	}
}

func TestNew(t *testing.T) {
	for typ := range constructors {
		g, err := New(typ)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", typ, err)
		}
		if g.Type() != typ {
			t.Errorf("New(%s) built %s", typ, g.Type())
		}
		if a, ok := g.(Attributed); ok {
			if *a.Shared() != DefaultAttributes() {
				t.Errorf("New(%s) did not apply defaults: %+v", typ, *a.Shared())
			}
		}
	}

	if _, err := New(NodeUnknown); !errors.Is(err, ErrUnknownNodeType) {
		t.Errorf("expected ErrUnknownNodeType, got %v", err)
	}
}

func TestComplement(t *testing.T) {
	for typ := range constructors {
		c := typ.Complement()
		if c.IsIndexed() == typ.IsIndexed() {
			t.Errorf("%s and its complement %s have the same indexing", typ, c)
		}
		if c.Complement() != typ {
			t.Errorf("complement of %s is not symmetric", typ)
		}
	}
}

func TestClone(t *testing.T) {
	src := NewIndexedTriangleStripSet()
	src.Coord = points(3)
	src.Normal = &Normal{Vector: make([][3]float32, 3)}
	src.CCW = false
	src.Index = []int32{0, 1, 2}

	g, err := Clone(src)
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	dst := g.(*IndexedTriangleStripSet)
	if dst == src {
		t.Fatal("expected a new node")
	}
	if dst.Coord != src.Coord || dst.Normal != src.Normal {
		t.Error("expected sub-nodes to be shared")
	}
	if dst.CCW {
		t.Error("expected ccw to carry over")
	}
	if len(dst.Index) != 3 {
		t.Errorf("expected index to carry over, got %v", dst.Index)
	}
}

func TestNodeTypeString(t *testing.T) {
	if s := NodeIndexedTriangleFanSet.String(); s != "IndexedTriangleFanSet" {
		t.Errorf("expected IndexedTriangleFanSet, got %s", s)
	}
	if s := NodeType(99).String(); s != "Unknown(99)" {
		t.Errorf("expected Unknown(99), got %s", s)
	}
}
