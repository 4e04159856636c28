// Package encoding provides field sinks that serialize X3D nodes.
//
// Nodes describe themselves through the Sink methods; each output format
// implements Sink once, so node code never branches on the target format.
package encoding

// Sink receives a node tree as a stream of typed field events.
//
// Sinks are sticky on error: after the first write failure every further
// call is a no-op and Err reports the failure.
type Sink interface {
	// StartNode opens a node. def may be empty.
	StartNode(nodeType, def string)
	// EndNode closes the innermost open node.
	EndNode()
	// StartField announces an SFNode field; the next StartNode is its value.
	StartField(name string)
	// Bool writes an SFBool field.
	Bool(name string, v bool)
	// Floats writes a single multi-component value such as SFVec3f or
	// SFRotation.
	Floats(name string, v []float32)
	// Int32s writes an MFInt32 field.
	Int32s(name string, v []int32)
	// Vec3s writes an MFVec3f or MFColor field.
	Vec3s(name string, v [][3]float32)
	// Vec2s writes an MFVec2f field.
	Vec2s(name string, v [][2]float32)
	// Err returns the first error encountered.
	Err() error
}

// Encoder is implemented by anything that can describe itself to a Sink.
type Encoder interface {
	Encode(s Sink)
}
