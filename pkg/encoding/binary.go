package encoding

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrStringTooLong is returned when a name does not fit the uint16 length
// prefix of the X3DB stream.
var ErrStringTooLong = errors.New("string too long for X3DB")

// X3DB stream layout constants.
const (
	BinaryMagic        = "X3DB"
	BinaryVersionMajor = 1
	BinaryVersionMinor = 0
)

// Record tags of the X3DB stream.
const (
	TagStartNode byte = 0x01
	TagEndNode   byte = 0x02
	TagField     byte = 0x03
	TagBool      byte = 0x10
	TagInt32s    byte = 0x11
	TagVec3s     byte = 0x12
	TagVec2s     byte = 0x13
	TagFloats    byte = 0x14
)

// BinaryWriter writes the tagged little-endian X3DB stream.
//
// Strings are a uint16 length followed by bytes; arrays are a uint32
// element count followed by the packed values.
type BinaryWriter struct {
	w   *bufio.Writer
	err error
}

// NewBinaryWriter creates a BinaryWriter over w and writes the stream header.
func NewBinaryWriter(w io.Writer) *BinaryWriter {
	b := &BinaryWriter{w: bufio.NewWriter(w)}
	b.bytes([]byte(BinaryMagic))
	b.bytes([]byte{BinaryVersionMajor, BinaryVersionMinor})
	return b
}

// StartNode implements Sink.
func (b *BinaryWriter) StartNode(nodeType, def string) {
	b.bytes([]byte{TagStartNode})
	b.str(nodeType)
	b.str(def)
}

// EndNode implements Sink.
func (b *BinaryWriter) EndNode() {
	b.bytes([]byte{TagEndNode})
}

// StartField implements Sink.
func (b *BinaryWriter) StartField(name string) {
	b.bytes([]byte{TagField})
	b.str(name)
}

// Bool implements Sink.
func (b *BinaryWriter) Bool(name string, v bool) {
	b.bytes([]byte{TagBool})
	b.str(name)
	if v {
		b.bytes([]byte{1})
	} else {
		b.bytes([]byte{0})
	}
}

// Floats implements Sink.
func (b *BinaryWriter) Floats(name string, v []float32) {
	b.bytes([]byte{TagFloats})
	b.str(name)
	b.u32(uint32(len(v)))
	for _, f := range v {
		b.u32(math.Float32bits(f))
	}
}

// Int32s implements Sink.
func (b *BinaryWriter) Int32s(name string, v []int32) {
	b.bytes([]byte{TagInt32s})
	b.str(name)
	b.u32(uint32(len(v)))
	for _, n := range v {
		b.u32(uint32(n))
	}
}

// Vec3s implements Sink.
func (b *BinaryWriter) Vec3s(name string, v [][3]float32) {
	b.bytes([]byte{TagVec3s})
	b.str(name)
	b.u32(uint32(len(v)))
	for _, p := range v {
		b.u32(math.Float32bits(p[0]))
		b.u32(math.Float32bits(p[1]))
		b.u32(math.Float32bits(p[2]))
	}
}

// Vec2s implements Sink.
func (b *BinaryWriter) Vec2s(name string, v [][2]float32) {
	b.bytes([]byte{TagVec2s})
	b.str(name)
	b.u32(uint32(len(v)))
	for _, p := range v {
		b.u32(math.Float32bits(p[0]))
		b.u32(math.Float32bits(p[1]))
	}
}

// Err implements Sink.
func (b *BinaryWriter) Err() error {
	return b.err
}

// Flush writes buffered output and returns the first error seen.
func (b *BinaryWriter) Flush() error {
	if b.err == nil {
		b.err = b.w.Flush()
	}
	return b.err
}

func (b *BinaryWriter) str(s string) {
	if b.err != nil {
		return
	}
	if len(s) > math.MaxUint16 {
		b.err = fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
		return
	}
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(s)))
	b.bytes(n[:])
	b.bytes([]byte(s))
}

func (b *BinaryWriter) u32(v uint32) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], v)
	b.bytes(n[:])
}

func (b *BinaryWriter) bytes(p []byte) {
	if b.err != nil {
		return
	}
	_, b.err = b.w.Write(p)
}
