package formats

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/geomconv/pkg/geometry"
)

// ErrNoTriangles is returned when a scene has nothing glTF can draw.
var ErrNoTriangles = errors.New("scene has no triangle geometry")

// DefaultGenerator is the asset generator string written to glTF files.
const DefaultGenerator = "geomconv"

// BuildGLTF converts a scene into a glTF document with one mesh and node per
// drawable shape. Transforms are baked in, every triangle node is expanded
// to an indexed triangle list and clockwise geometry is rewound. Line
// shapes and shapes without triangles are skipped. An index that does not
// address the shape's coordinates fails the whole build.
func BuildGLTF(scene *geometry.Scene, generator string) (*gltf.Document, error) {
	if generator == "" {
		generator = DefaultGenerator
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	for i, sh := range scene.Shapes {
		if sh.Geometry == nil || isLineType(sh.Geometry.Type()) {
			continue
		}
		flat, err := geometry.Flatten(sh)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		its, err := geometry.Triangulate(flat.Geometry)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		if err := geometry.CheckTriangleIndex(its.Index, len(its.Points())); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		if len(its.Index) < 3 || len(its.Points()) == 0 {
			continue
		}
		addMesh(doc, sh.DEF, its)
	}

	if len(doc.Meshes) == 0 {
		return nil, ErrNoTriangles
	}
	return doc, nil
}

// WriteGLB writes the scene as a binary glTF file.
func WriteGLB(scene *geometry.Scene, path, generator string) error {
	doc, err := BuildGLTF(scene, generator)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("writing GLB: %w", err)
	}
	return nil
}

func addMesh(doc *gltf.Document, name string, its *geometry.IndexedTriangleSet) {
	positions := its.Points()
	count := len(positions)

	indices := make([]uint32, 0, len(its.Index)/3*3)
	for t := 0; t+2 < len(its.Index); t += 3 {
		a, b, c := uint32(its.Index[t]), uint32(its.Index[t+1]), uint32(its.Index[t+2])
		if !its.CCW {
			b, c = c, b
		}
		indices = append(indices, a, b, c)
	}

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
		},
		Indices: gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
	}
	if its.Normal != nil && its.NormalPerVertex && len(its.Normal.Vector) == count {
		prim.Attributes[gltf.NORMAL] = uint32(modeler.WriteNormal(doc, its.Normal.Vector))
	}
	if its.Color != nil && its.ColorPerVertex && len(its.Color.Color) == count {
		colors := make([][4]float32, count)
		for i, c := range its.Color.Color {
			colors[i] = [4]float32{c[0], c[1], c[2], 1}
		}
		prim.Attributes[gltf.COLOR_0] = uint32(modeler.WriteColor(doc, colors))
	}
	if its.TexCoord != nil && len(its.TexCoord.Point) == count {
		prim.Attributes[gltf.TEXCOORD_0] = uint32(modeler.WriteTextureCoord(doc, its.TexCoord.Point))
	}

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode:   gltf.AlphaOpaque,
		DoubleSided: !its.Solid,
	})
	prim.Material = gltf.Index(uint32(len(doc.Materials) - 1))

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
}

func isLineType(t geometry.NodeType) bool {
	return t == geometry.NodeLineSet || t == geometry.NodeIndexedLineSet
}
