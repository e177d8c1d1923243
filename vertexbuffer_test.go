package bcres

import (
	"bytes"
	"errors"
	"testing"
)

func writeVBCommon(buf *bytes.Buffer, attr AttributeName, kind VertexBufferType) error {
	if err := writeU32(buf, uint32(attr)); err != nil {
		return err
	}
	return writeU32(buf, uint32(kind))
}

func TestReadVertexBufferFixed(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, discriminantVBFixed); err != nil {
		t.Fatal(err)
	}
	if err := writeVBCommon(&buf, AttributePosition, VertexBufferTypeFixed); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, uint32(GlFloat)); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 3); err != nil { // elements
		t.Fatal(err)
	}
	if err := writeF32(&buf, 1.0); err != nil { // scale
		t.Fatal(err)
	}
	if err := writeU32(&buf, 3); err != nil { // vector count
		t.Fatal(err)
	}
	if err := writeU32(&buf, 4); err != nil { // relative ptr to payload right after
		t.Fatal(err)
	}
	for _, v := range []float32{1, 2, 3} {
		if err := writeF32(&buf, v); err != nil {
			t.Fatal(err)
		}
	}

	vb, err := readVertexBufferValue(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if vb.Variant != VertexBufferKindFixed {
		t.Fatalf("variant = %v, want VertexBufferKindFixed", vb.Variant)
	}
	if len(vb.Fixed.Vector) != 3 || vb.Fixed.Vector[0] != 1 || vb.Fixed.Vector[2] != 3 {
		t.Fatalf("fixed vector = %v, want [1 2 3]", vb.Fixed.Vector)
	}
}

func TestReadVertexBufferInterleavedWithOneAttribute(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, discriminantVBInterleave); err != nil {
		t.Fatal(err)
	}
	if err := writeVBCommon(&buf, AttributeInterleave, VertexBufferTypeInterleaved); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // buffer_obj
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // location_flag
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // raw_bytes count = 0
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // raw_bytes ptr = null
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // location_ptr
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // memory_area
		t.Fatal(err)
	}
	if err := writeU32(&buf, 12); err != nil { // vertex_stride
		t.Fatal(err)
	}

	// attributes: one-element pointer list, magic-checked.
	if err := writeU32(&buf, 1); err != nil { // count
		t.Fatal(err)
	}
	if err := writeU32(&buf, 4); err != nil { // ptr to elem-ptr array, right after this field
		t.Fatal(err)
	}
	// elem-ptr array (1 entry): relative pointer to the attribute body,
	// which we place right after this 4-byte array.
	if err := writeU32(&buf, 4); err != nil {
		t.Fatal(err)
	}

	// attribute body, magic-prefixed.
	if err := writeU32(&buf, discriminantVBAttribute); err != nil {
		t.Fatal(err)
	}
	if err := writeVBCommon(&buf, AttributePosition, VertexBufferTypeNone); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // buffer_obj
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // location_flag
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // raw_bytes count = 0
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // raw_bytes ptr = null
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // location_ptr
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // memory_area
		t.Fatal(err)
	}
	if err := writeU32(&buf, uint32(GlFloat)); err != nil { // format
		t.Fatal(err)
	}
	if err := writeU32(&buf, 3); err != nil { // elements
		t.Fatal(err)
	}
	if err := writeF32(&buf, 1.0); err != nil { // scale
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // offset
		t.Fatal(err)
	}

	vb, err := readVertexBufferValue(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if vb.Variant != VertexBufferKindInterleaved {
		t.Fatalf("variant = %v, want VertexBufferKindInterleaved", vb.Variant)
	}
	if vb.Interleaved.VertexStride != 12 {
		t.Fatalf("vertex_stride = %d, want 12", vb.Interleaved.VertexStride)
	}
	if len(vb.Interleaved.Attributes) != 1 {
		t.Fatalf("attributes = %d, want 1", len(vb.Interleaved.Attributes))
	}
	if vb.Interleaved.Attributes[0].Format != GlFloat {
		t.Fatalf("attribute format = %v, want GlFloat", vb.Interleaved.Attributes[0].Format)
	}
}

func TestReadVertexBufferUnknownDiscriminant(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, 0xCAFEBABE); err != nil {
		t.Fatal(err)
	}
	_, err := readVertexBufferValue(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrUnknownDiscriminant) {
		t.Fatalf("error = %v, want ErrUnknownDiscriminant", err)
	}
}

func TestGlDataTypeByteSize(t *testing.T) {
	cases := []struct {
		t    GlDataType
		size int
		ok   bool
	}{
		{GlByte, 1, true}, {GlUByte, 1, true},
		{GlShort, 2, true}, {GlUShort, 2, true},
		{GlFloat, 4, true},
		{GlFixed, 0, false},
	}
	for _, c := range cases {
		size, ok := c.t.ByteSize()
		if size != c.size || ok != c.ok {
			t.Fatalf("%v.ByteSize() = (%d, %v), want (%d, %v)", c.t, size, ok, c.size, c.ok)
		}
	}
}
