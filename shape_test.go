package bcres

import (
	"bytes"
	"errors"
	"testing"
)

func TestFaceDescriptorFloatFormatRejected(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, uint32(GlFloat)); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0); err != nil { // primitive_mode
		t.Fatal(err)
	}
	if err := writeU8(&buf, 1); err != nil { // visible
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 2); err != nil { // padding
		t.Fatal(err)
	}

	_, err := readFaceDescriptorValue(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}
}

func TestFaceDescriptorOneByteIndexWidening(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, uint32(GlUByte)); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 1); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 2); err != nil {
		t.Fatal(err)
	}
	// inline list of 3 raw bytes
	if err := writeU32(&buf, 3); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 4); err != nil { // relative pointer: 4 bytes forward to the list payload
		t.Fatal(err)
	}
	if err := writeU8(&buf, 10); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 20); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 30); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 6*4); err != nil { // reserved
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // bounding_volume
		t.Fatal(err)
	}

	fd, err := readFaceDescriptorValue(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{10, 20, 30}
	if len(fd.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", fd.Indices, want)
	}
	for i := range want {
		if fd.Indices[i] != want[i] {
			t.Fatalf("indices[%d] = %d, want %d", i, fd.Indices[i], want[i])
		}
	}
}

func TestFaceDescriptorTwoByteIndexPairing(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, uint32(GlUShort)); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 1); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 2); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 4); err != nil { // 4 raw bytes -> 2 u16 indices
		t.Fatal(err)
	}
	if err := writeU32(&buf, 4); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0x34); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0x12); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0x78); err != nil {
		t.Fatal(err)
	}
	if err := writeU8(&buf, 0x56); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 6*4); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil {
		t.Fatal(err)
	}

	fd, err := readFaceDescriptorValue(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0x1234, 0x5678}
	if len(fd.Indices) != 2 || fd.Indices[0] != want[0] || fd.Indices[1] != want[1] {
		t.Fatalf("indices = %v, want %v", fd.Indices, want)
	}
}

func TestShapeRejectsNonZeroPositionOffset(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, magicShape); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 16); err != nil { // remaining object header body
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // flags
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // bounding box ptr (null)
		t.Fatal(err)
	}
	if err := writeF32(&buf, 1.0); err != nil { // position_offset.x, non-zero
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 8); err != nil { // position_offset.y, .z
		t.Fatal(err)
	}

	_, err := readShapeValue(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("error = %v, want ErrInvalidValue", err)
	}
}
