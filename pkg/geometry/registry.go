package geometry

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// NodeType enumerates the geometry nodes this package understands.
type NodeType int

// Node types.
const (
	NodeUnknown NodeType = iota
	NodeTriangleSet
	NodeTriangleFanSet
	NodeTriangleStripSet
	NodeIndexedTriangleSet
	NodeIndexedTriangleFanSet
	NodeIndexedTriangleStripSet
	NodeLineSet
	NodeIndexedLineSet
)

var nodeNames = map[NodeType]string{
	NodeTriangleSet:             "TriangleSet",
	NodeTriangleFanSet:          "TriangleFanSet",
	NodeTriangleStripSet:        "TriangleStripSet",
	NodeIndexedTriangleSet:      "IndexedTriangleSet",
	NodeIndexedTriangleFanSet:   "IndexedTriangleFanSet",
	NodeIndexedTriangleStripSet: "IndexedTriangleStripSet",
	NodeLineSet:                 "LineSet",
	NodeIndexedLineSet:          "IndexedLineSet",
}

var constructors = map[NodeType]func() Geometry{
	NodeTriangleSet:             func() Geometry { return NewTriangleSet() },
	NodeTriangleFanSet:          func() Geometry { return NewTriangleFanSet() },
	NodeTriangleStripSet:        func() Geometry { return NewTriangleStripSet() },
	NodeIndexedTriangleSet:      func() Geometry { return NewIndexedTriangleSet() },
	NodeIndexedTriangleFanSet:   func() Geometry { return NewIndexedTriangleFanSet() },
	NodeIndexedTriangleStripSet: func() Geometry { return NewIndexedTriangleStripSet() },
	NodeLineSet:                 func() Geometry { return NewLineSet() },
	NodeIndexedLineSet:          func() Geometry { return NewIndexedLineSet() },
}

// complements pairs each node with its indexed or non-indexed counterpart.
var complements = map[NodeType]NodeType{
	NodeTriangleSet:             NodeIndexedTriangleSet,
	NodeTriangleFanSet:          NodeIndexedTriangleFanSet,
	NodeTriangleStripSet:        NodeIndexedTriangleStripSet,
	NodeLineSet:                 NodeIndexedLineSet,
	NodeIndexedTriangleSet:      NodeTriangleSet,
	NodeIndexedTriangleFanSet:   NodeTriangleFanSet,
	NodeIndexedTriangleStripSet: NodeTriangleStripSet,
	NodeIndexedLineSet:          NodeLineSet,
}

// String returns the X3D node name.
func (t NodeType) String() string {
	if name, ok := nodeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(t))
}

// IsIndexed reports whether the node references coordinates through an index buffer.
func (t NodeType) IsIndexed() bool {
	switch t {
	case NodeIndexedTriangleSet, NodeIndexedTriangleFanSet, NodeIndexedTriangleStripSet, NodeIndexedLineSet:
		return true
	}
	return false
}

// Complement returns the indexed counterpart of a non-indexed node and
// vice versa.
func (t NodeType) Complement() NodeType {
	return complements[t]
}

// ParseNodeType maps an X3D node name to its NodeType.
func ParseNodeType(name string) (NodeType, error) {
	for t, n := range nodeNames {
		if n == name {
			return t, nil
		}
	}
	return NodeUnknown, fmt.Errorf("%w: %q", ErrUnknownNodeType, name)
}

// New constructs an empty node of type t with X3D default fields.
func New(t NodeType) (Geometry, error) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, t)
	}
	return ctor(), nil
}

// Clone returns a shallow copy of g: buffers and sub-nodes are shared.
func Clone(g Geometry) (Geometry, error) {
	dst, err := New(g.Type())
	if err != nil {
		return nil, err
	}
	if err := copyShared(dst, g); err != nil {
		return nil, err
	}
	return dst, nil
}

// copyShared copies every same-named field of src into dst. Sub-node
// pointers end up aliased between the two nodes.
func copyShared(dst, src Geometry) error {
	if err := copier.Copy(dst, src); err != nil {
		return fmt.Errorf("copying shared fields: %w", err)
	}
	// copier allocates fresh structs behind pointer fields; relink them.
	if d, ok := dst.(Attributed); ok {
		if s, ok := src.(Attributed); ok {
			da, sa := d.Shared(), s.Shared()
			da.Coord, da.Normal, da.Color, da.TexCoord = sa.Coord, sa.Normal, sa.Color, sa.TexCoord
		}
	}
	if d, ok := dst.(lineGeometry); ok {
		if s, ok := src.(lineGeometry); ok {
			d.setLineNodes(s.lineNodes())
		}
	}
	return nil
}
