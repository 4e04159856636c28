package encoding

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestBinaryWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	data := buf.Bytes()
	if len(data) != 6 {
		t.Fatalf("expected 6 header bytes, got %d", len(data))
	}
	if string(data[:4]) != BinaryMagic {
		t.Errorf("expected magic %q, got %q", BinaryMagic, data[:4])
	}
	if data[4] != BinaryVersionMajor || data[5] != BinaryVersionMinor {
		t.Errorf("expected version %d.%d, got %d.%d", BinaryVersionMajor, BinaryVersionMinor, data[4], data[5])
	}
}

func TestBinaryWriter_Records(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)
	w.StartNode("Coordinate", "C")
	w.Int32s("index", []int32{-1, 2})
	w.Vec3s("point", [][3]float32{{1, 2, 3}})
	w.Bool("ccw", true)
	w.EndNode()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	r := bytes.NewReader(buf.Bytes()[6:])
	expectByte(t, r, TagStartNode)
	expectString(t, r, "Coordinate")
	expectString(t, r, "C")

	expectByte(t, r, TagInt32s)
	expectString(t, r, "index")
	var count uint32
	binary.Read(r, binary.LittleEndian, &count)
	if count != 2 {
		t.Fatalf("expected 2 indices, got %d", count)
	}
	vals := make([]int32, count)
	binary.Read(r, binary.LittleEndian, vals)
	if vals[0] != -1 || vals[1] != 2 {
		t.Errorf("expected [-1 2], got %v", vals)
	}

	expectByte(t, r, TagVec3s)
	expectString(t, r, "point")
	binary.Read(r, binary.LittleEndian, &count)
	var bits [3]uint32
	binary.Read(r, binary.LittleEndian, &bits)
	if math.Float32frombits(bits[2]) != 3 {
		t.Errorf("expected z=3, got %f", math.Float32frombits(bits[2]))
	}

	expectByte(t, r, TagBool)
	expectString(t, r, "ccw")
	expectByte(t, r, 1)
	expectByte(t, r, TagEndNode)

	if r.Len() != 0 {
		t.Errorf("expected end of stream, %d bytes left", r.Len())
	}
}

func TestBinaryWriter_StringTooLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf)
	w.StartNode(strings.Repeat("x", math.MaxUint16+1), "")
	w.EndNode()

	if !errors.Is(w.Err(), ErrStringTooLong) {
		t.Errorf("expected ErrStringTooLong, got %v", w.Err())
	}
	if err := w.Flush(); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("expected Flush to report ErrStringTooLong, got %v", err)
	}
	// A failed stream is never flushed.
	if buf.Len() != 0 {
		t.Errorf("expected nothing flushed, got %d bytes", buf.Len())
	}

	ok := NewBinaryWriter(&bytes.Buffer{})
	ok.StartNode(strings.Repeat("x", math.MaxUint16), "")
	if err := ok.Flush(); err != nil {
		t.Errorf("expected a max-length string to be written, got %v", err)
	}
}

func expectByte(t *testing.T, r *bytes.Reader, want byte) {
	t.Helper()
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte failed: %v", err)
	}
	if b != want {
		t.Fatalf("expected byte 0x%02x, got 0x%02x", want, b)
	}
}

func expectString(t *testing.T, r *bytes.Reader, want string) {
	t.Helper()
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		t.Fatalf("reading string length: %v", err)
	}
	s := make([]byte, n)
	if _, err := r.Read(s); err != nil && n > 0 {
		t.Fatalf("reading string: %v", err)
	}
	if string(s) != want {
		t.Fatalf("expected string %q, got %q", want, s)
	}
}
