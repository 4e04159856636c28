package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/geomconv/internal/config"
	"github.com/Faultbox/geomconv/pkg/formats"
	"github.com/Faultbox/geomconv/pkg/geometry"
)

const houseYAML = `
shapes:
  - def: Walls
    geometry:
      type: TriangleStripSet
      stripCount: [4]
      coord:
        - [0, 0, 0]
        - [1, 0, 0]
        - [0, 1, 0]
        - [1, 1, 0]
`

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "house.yaml")
	if err := os.WriteFile(path, []byte(houseYAML), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		dir    string
		format string
		want   string
	}{
		{"scenes/house.yaml", "", "x3dv", filepath.Join("scenes", "house.x3dv")},
		{"scenes/house.yaml", "out", "glb", filepath.Join("out", "house.glb")},
		{"house.x3db", "", "yaml", "house.yaml"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.dir, tt.format); got != tt.want {
			t.Errorf("OutputPath(%q, %q, %q): expected %s, got %s", tt.input, tt.dir, tt.format, tt.want, got)
		}
	}
}

func TestReadScene_Unsupported(t *testing.T) {
	_, err := ReadScene("model.obj")
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("expected ErrUnsupportedInput, got %v", err)
	}
}

func TestConvertFile_X3DB(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	cfg := config.Default()
	cfg.Output.Format = formats.FormatX3DB
	cfg.Output.Dir = filepath.Join(dir, "out")

	outPath, stats, err := NewConverter(cfg, nil).ConvertFile(input)
	if err != nil {
		t.Fatalf("ConvertFile failed: %v", err)
	}
	if outPath != filepath.Join(dir, "out", "house.x3db") {
		t.Errorf("unexpected output path %s", outPath)
	}
	if stats.Triangles != 2 {
		t.Errorf("expected 2 triangles, got %d", stats.Triangles)
	}

	// Reading the output back gives the indexed strip set
	scene, err := ReadScene(outPath)
	if err != nil {
		t.Fatalf("ReadScene failed: %v", err)
	}
	strip, ok := scene.Shapes[0].Geometry.(*geometry.IndexedTriangleStripSet)
	if !ok {
		t.Fatalf("expected *IndexedTriangleStripSet, got %T", scene.Shapes[0].Geometry)
	}
	want := []int32{0, 1, 2, 3, -1}
	if len(strip.Index) != len(want) {
		t.Fatalf("expected index %v, got %v", want, strip.Index)
	}
	for i := range want {
		if strip.Index[i] != want[i] {
			t.Errorf("index[%d]: expected %d, got %d", i, want[i], strip.Index[i])
		}
	}
}

func TestConvertFile_GLB(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	cfg := config.Default()
	cfg.Output.Format = formats.FormatGLB

	outPath, _, err := NewConverter(cfg, nil).ConvertFile(input)
	if err != nil {
		t.Fatalf("ConvertFile failed: %v", err)
	}

	doc, err := gltf.Open(outPath)
	if err != nil {
		t.Fatalf("gltf.Open failed: %v", err)
	}
	if len(doc.Meshes) != 1 || doc.Meshes[0].Name != "Walls" {
		t.Errorf("expected one mesh named Walls, got %d meshes", len(doc.Meshes))
	}
}

func TestConvertFile_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	cfg := config.Default()
	cfg.Output.Format = formats.FormatYAML

	if _, _, err := NewConverter(cfg, nil).ConvertFile(input); err == nil {
		t.Error("expected error when output would overwrite input")
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	cfg := config.Default()
	if _, _, err := NewConverter(cfg, nil).ConvertFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing input")
	}
}
