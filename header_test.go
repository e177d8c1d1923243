package bcres

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	want := Header{Revision: 0x05000000, FileLength: 0x180, SectionsCount: 2, ContentLength: 356}

	var buf bytes.Buffer
	if err := writeHeader(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := readHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("header round trip = %+v, want %+v", got, want)
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	data := []byte("XXXX\xff\xfe\x14\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00DATA\x00\x00\x00\x00")
	_, err := readHeader(bytes.NewReader(data))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("error = %v, want ErrMalformedHeader", err)
	}
}

func TestReadHeaderBadByteOrderMark(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("CGFX")
	if err := writeU16(&buf, 0x0000); err != nil {
		t.Fatal(err)
	}
	if err := writeU16(&buf, headerLength); err != nil {
		t.Fatal(err)
	}
	buf.Write(make([]byte, 12))
	buf.WriteString("DATA")
	buf.Write(make([]byte, 4))

	_, err := readHeader(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("error = %v, want ErrMalformedHeader", err)
	}
}

func TestReadHeaderBadHeaderLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("CGFX")
	if err := writeU16(&buf, headerByteOrderMark); err != nil {
		t.Fatal(err)
	}
	if err := writeU16(&buf, 99); err != nil {
		t.Fatal(err)
	}
	buf.Write(make([]byte, 12))
	buf.WriteString("DATA")
	buf.Write(make([]byte, 4))

	_, err := readHeader(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("error = %v, want ErrMalformedHeader", err)
	}
}

func TestObjectHeaderNameRoundTripAndCursorRestore(t *testing.T) {
	ctx := newWriteContext()
	buf := &bytes.Buffer{}
	w := &seekBuffer{buf: buf}

	h := ObjectHeader{Magic: magicFromU32(0x01000000), Revision: 1, Name: "test_mesh", HasName: true, MetadataCount: 0}
	if err := writeObjectHeader(w, ctx, h); err != nil {
		t.Fatal(err)
	}

	// Append the name string right after the fixed record, where the
	// real container writer's back-patch pass would have put it, then
	// patch the placeholder by hand to point at it.
	nameOffset, err := currentPos(w)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("test_mesh\x00")); err != nil {
		t.Fatal(err)
	}
	// name pointer sits right after magic+revision (4+4 bytes).
	if err := writeAtPointer(w, Pointer(8), uint32(int64(nameOffset)-8)); err != nil {
		t.Fatal(err)
	}

	got, err := readObjectHeader(bytes.NewReader(buf.Bytes()), 0x01000000)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "test_mesh" {
		t.Fatalf("object header name = %q, want %q", got.Name, "test_mesh")
	}
	if !got.HasName {
		t.Fatal("expected HasName true")
	}
}

func TestReadObjectHeaderWrongMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, 0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 1); err != nil {
		t.Fatal(err)
	}
	buf.Write(make([]byte, 12))

	_, err := readObjectHeader(bytes.NewReader(buf.Bytes()), magicMesh)
	if !errors.Is(err, ErrUnknownDiscriminant) {
		t.Fatalf("error = %v, want ErrUnknownDiscriminant", err)
	}
}
