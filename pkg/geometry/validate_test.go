package geometry

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	goodFans := NewIndexedTriangleFanSet()
	goodFans.Coord = points(7)
	goodFans.Index = []int32{0, 1, 2, 3, -1, 4, 5, 6}

	shortFans := NewIndexedTriangleFanSet()
	shortFans.Coord = points(8)
	shortFans.Index = []int32{0, 1, 2, 3, -1, 4, 5, 6, -1, 7}

	outOfRange := NewIndexedTriangleSet()
	outOfRange.Coord = points(2)
	outOfRange.Index = []int32{0, 1, 2}

	negative := NewIndexedTriangleSet()
	negative.Coord = points(3)
	negative.Index = []int32{0, 1, -1}

	shortStrips := NewTriangleStripSet()
	shortStrips.Coord = points(5)
	shortStrips.StripCount = []int32{3, 2}

	tooManyLines := &LineSet{Coord: points(3), VertexCount: []int32{2, 2}}

	tests := []struct {
		name string
		g    Geometry
		want error
	}{
		{"valid fans", goodFans, nil},
		{"short fan", shortFans, ErrMalformedTopology},
		{"index out of range", outOfRange, ErrIndexOutOfRange},
		{"negative triangle index", negative, ErrIndexOutOfRange},
		{"short strip count", shortStrips, ErrMalformedTopology},
		{"line counts exceed coordinates", tooManyLines, ErrCountMismatch},
		{"plain triangle set", NewTriangleSet(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.g)
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
