package geometry

import (
	"errors"
	"slices"
	"testing"
)

func TestCountPrimitives(t *testing.T) {
	tests := []struct {
		name       string
		index      []int32
		primitives int
		delimiters int
	}{
		{"empty", nil, 0, 0},
		{"lone sentinel", []int32{-1}, 0, 1},
		{"single run terminated", []int32{0, 1, 2, -1}, 1, 1},
		{"single run unterminated", []int32{0, 1, 2}, 1, 0},
		{"two runs, open tail", []int32{0, 1, 2, 3, -1, 4, 5, 6, -1, 7}, 3, 2},
		{"doubled sentinel", []int32{0, 1, 2, -1, -1, 3, 4, 5}, 2, 2},
		{"leading sentinel", []int32{-1, 0, 1, 2}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d := CountPrimitives(tt.index)
			if p != tt.primitives {
				t.Errorf("expected %d primitives, got %d", tt.primitives, p)
			}
			if d != tt.delimiters {
				t.Errorf("expected %d delimiters, got %d", tt.delimiters, d)
			}
		})
	}
}

func TestSplitPrimitives(t *testing.T) {
	prims := SplitPrimitives([]int32{0, 1, 2, 3, -1, 4, 5, 6})

	want := []Primitive{{Start: 0, Len: 4}, {Start: 5, Len: 3}}
	if !slices.Equal(prims, want) {
		t.Errorf("expected %v, got %v", want, prims)
	}
}

func TestSplitPrimitives_TerminatedMatchesUnterminated(t *testing.T) {
	open := SplitPrimitives([]int32{0, 1, 2, -1, 3, 4, 5})
	closed := SplitPrimitives([]int32{0, 1, 2, -1, 3, 4, 5, -1})
	if !slices.Equal(open, closed) {
		t.Errorf("trailing sentinel changed the split: %v vs %v", open, closed)
	}
}

func TestSplitPrimitives_EmptyRuns(t *testing.T) {
	tests := []struct {
		name  string
		index []int32
		want  int
	}{
		{"empty", nil, 0},
		{"lone sentinel", []int32{-1}, 0},
		{"doubled sentinel", []int32{0, 1, 2, -1, -1, 3, 4, 5}, 2},
		{"leading sentinel", []int32{-1, 0, 1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(SplitPrimitives(tt.index)); got != tt.want {
				t.Errorf("expected %d primitives, got %d", tt.want, got)
			}
		})
	}
}

func TestCheckPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		index []int32
		ok    bool
	}{
		{"valid", []int32{0, 1, 2, -1, 3, 4, 5, 6}, true},
		{"empty", nil, true},
		{"one vertex", []int32{0, -1, 1, 2, 3}, false},
		{"two vertices", []int32{0, 1, 2, -1, 3, 4, -1}, false},
		{"one vertex at end", []int32{0, 1, 2, 3, -1, 4, 5, 6, -1, 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPrimitives(tt.index, 3)
			if tt.ok && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrMalformedTopology) {
				t.Errorf("expected ErrMalformedTopology, got %v", err)
			}
		})
	}
}

func TestCountsFromIndex(t *testing.T) {
	got := CountsFromIndex([]int32{0, 1, 2, 3, -1, 4, 5, 6, -1})
	want := []int32{4, 3}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := CountsFromIndex(nil); len(got) != 0 {
		t.Errorf("expected no counts for empty index, got %v", got)
	}
}
