package geom

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func testReadF32(r io.Reader) (float32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b[:])), nil
}

func testWriteF32(w io.Writer, v float32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	_, err := w.Write(b[:])
	return err
}

func TestVec3RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Vec3{X: 1, Y: 2, Z: 3}
	if err := WriteVec3(&buf, want, testWriteF32); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVec3(&buf, testReadF32)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("Vec3 round trip = %+v, want %+v", got, want)
	}
}

func TestVec3IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Fatal("zero-value Vec3 should report IsZero")
	}
	if (Vec3{X: 0.001}).IsZero() {
		t.Fatal("non-zero Vec3 should not report IsZero")
	}
}

func TestMat3x4ColumnMajorLayout(t *testing.T) {
	var buf bytes.Buffer
	// 4 columns of 3 rows each, values chosen so the column/row indices
	// are recoverable from the value itself: col*10 + row.
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			if err := testWriteF32(&buf, float32(col*10+row)); err != nil {
				t.Fatal(err)
			}
		}
	}

	m, err := ReadMat3x4(&buf, testReadF32)
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			want := float32(col*10 + row)
			if got := m.M[row][col]; got != want {
				t.Fatalf("M[%d][%d] = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestMat3RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Mat3{M: [3][3]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}}
	if err := WriteMat3(&buf, want, testWriteF32); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMat3(&buf, testReadF32)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("Mat3 round trip = %+v, want %+v", got, want)
	}
}
