package bcres

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadSkeletonMissingBonesDictionary(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, magicSkeleton); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 16); err != nil { // object header body
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // bone_count
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // bones_ptr, null -> ErrUnexpectedNull
		t.Fatal(err)
	}

	_, err := readSkeletonValue(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrUnexpectedNull) {
		t.Fatalf("error = %v, want ErrUnexpectedNull", err)
	}
}

func TestReadSkeletonNullRootBonePointer(t *testing.T) {
	var buf bytes.Buffer
	if err := writeU32(&buf, magicSkeleton); err != nil {
		t.Fatal(err)
	}
	if err := writeZeros(&buf, 16); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // bone_count
		t.Fatal(err)
	}
	if err := writeU32(&buf, 16); err != nil { // bones_ptr, points past root_bone/scaling_rule/flags
		t.Fatal(err)
	}
	// root_bone ptr: null.
	if err := writeU32(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // scaling_rule
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // flags
		t.Fatal(err)
	}
	// DICT with zero values: magic, tree_length, values_count=0, then
	// one sentinel node.
	if err := writeMagicString(&buf, "DICT"); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // tree_length
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // values_count
		t.Fatal(err)
	}
	if err := writeU32(&buf, sentinelReferenceBit); err != nil {
		t.Fatal(err)
	}
	if err := writeU16(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if err := writeU16(&buf, 0); err != nil {
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // name ptr, null
		t.Fatal(err)
	}
	if err := writeU32(&buf, 0); err != nil { // value ptr, null
		t.Fatal(err)
	}

	_, err := readSkeletonValue(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrUnexpectedNull) {
		t.Fatalf("error = %v, want ErrUnexpectedNull", err)
	}
}

func writeMagicString(buf *bytes.Buffer, s string) error {
	_, err := buf.WriteString(s)
	return err
}
