package bcres

import (
	"bytes"
	"io"
	"testing"
)

func TestDictionaryCountAndValues(t *testing.T) {
	d := &Dictionary[uint32]{
		Nodes: []Node[uint32]{
			{ReferenceBit: sentinelReferenceBit},
			{Name: "a", HasName: true, Value: 1, HasValue: true},
			{Name: "b", HasName: true, Value: 2, HasValue: true},
		},
	}
	if got := d.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	values := d.Values()
	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Fatalf("Values() = %v, want [1 2]", values)
	}
}

func TestDictionaryNilCountAndValues(t *testing.T) {
	var d *Dictionary[uint32]
	if d.Count() != 0 {
		t.Fatal("nil Dictionary.Count() should be 0")
	}
	if d.Values() != nil {
		t.Fatal("nil Dictionary.Values() should be nil")
	}
}

func writeU32Value(w io.WriteSeeker, ctx *writeContext, v uint32) error {
	return writeU32(w, v)
}

func TestReadWriteDictionaryRoundTrip(t *testing.T) {
	d := &Dictionary[uint32]{
		Nodes: []Node[uint32]{
			{ReferenceBit: sentinelReferenceBit},
			{Name: "first", HasName: true, Value: 0xAABBCCDD, HasValue: true},
		},
	}

	ctx := newWriteContext()
	buf := &bytes.Buffer{}
	w := &seekBuffer{buf: buf}

	if err := writeDictionary(w, ctx, d, writeU32Value); err != nil {
		t.Fatal(err)
	}

	// Back-patch the node name into a trailing string section, the way
	// Container.serialize's string-section fixup pass does: the section
	// itself was already built in walk order by registerString, so this
	// only has to turn each loc's stored offset into an absolute pointer.
	sectionStart, err := currentPos(w)
	if err != nil {
		t.Fatal(err)
	}
	for loc, offset := range ctx.stringRefs {
		absolute := Pointer(int64(sectionStart) + int64(offset))
		if err := writeAtPointer(w, loc, uint32(int64(absolute)-int64(loc))); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := w.Write([]byte(ctx.stringSection.String())); err != nil {
		t.Fatal(err)
	}

	got, err := readDictionary(bytes.NewReader(buf.Bytes()), readU32Value)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count() != 1 {
		t.Fatalf("round-tripped Count() = %d, want 1", got.Count())
	}
	if got.Nodes[1].Name != "first" {
		t.Fatalf("round-tripped name = %q, want %q", got.Nodes[1].Name, "first")
	}
	if got.Nodes[1].Value != 0xAABBCCDD {
		t.Fatalf("round-tripped value = 0x%x, want 0xAABBCCDD", got.Nodes[1].Value)
	}
}

func TestWriteDictionaryNilIsNoop(t *testing.T) {
	ctx := newWriteContext()
	buf := &bytes.Buffer{}
	w := &seekBuffer{buf: buf}

	var d *Dictionary[uint32]
	if err := writeDictionary(w, ctx, d, writeU32Value); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("writing a nil dictionary should emit nothing, got %d bytes", buf.Len())
	}
}
