package geometry

import "errors"

// Conversion errors.
var (
	ErrMalformedTopology = errors.New("malformed topology: primitive has too few vertices")
	ErrCountMismatch     = errors.New("primitive counts exceed available coordinates")
	ErrIndexOutOfRange   = errors.New("index out of coordinate range")
	ErrUnknownNodeType   = errors.New("unknown geometry node type")
	ErrNotTriangulable   = errors.New("geometry cannot be triangulated")
	ErrNothingToCombine  = errors.New("no triangle geometry to combine")
	ErrTransformedShape  = errors.New("shape still has a transform")
)
