package bcres

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Primitive little-endian I/O helpers. These mirror the teacher's use of
// encoding/binary directly against an io.Reader (see load/iqm.go,
// load/wav.go) rather than pulling in a binary-struct-tag library: the
// format has too many pointer-chasing, scoped-seek and count-prefixed
// list reads to express as a single flat struct tag set.

func readU8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("bcres: read u8: %w", err)
	}
	return b[0], nil
}

func readU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("bcres: read u16: %w", err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("bcres: read u32: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readI32(r io.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}

func readF32(r io.Reader) (float32, error) {
	v, err := readU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("bcres: read %d bytes: %w", n, err)
	}
	return buf, nil
}

func readU32Array(r io.Reader, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := readU32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readF32Array(r io.Reader, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := readF32(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readCString reads a null-terminated UTF-8 string starting at the
// reader's current position, consuming the terminator.
func readCString(r io.Reader) (string, error) {
	var buf bytes.Buffer
	for {
		b, err := readU8(r)
		if err != nil {
			return "", fmt.Errorf("bcres: read string: %w", err)
		}
		if b == 0 {
			break
		}
		buf.WriteByte(b)
	}
	return buf.String(), nil
}

// readMagic reads a 4-byte ASCII tag and compares it against want,
// returning a MalformedHeader-kind error that embeds both values on
// mismatch.
func readMagic(r io.Reader, want string) error {
	got, err := readBytes(r, 4)
	if err != nil {
		return err
	}
	if string(got) != want {
		return newErr(ErrMalformedHeader, "expected magic %q, got %q", want, string(got))
	}
	return nil
}

// readDiscriminant reads a 4-byte little-endian tag used to dispatch a
// polymorphic record (model, texture, vertex buffer, ...).
func readDiscriminant(r io.Reader) (uint32, error) {
	return readU32(r)
}

// --- writers ---

func writeU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeI32(w io.Writer, v int32) error {
	return writeU32(w, uint32(v))
}

func writeF32(w io.Writer, v float32) error {
	return writeU32(w, math.Float32bits(v))
}

func writeZeros(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := w.Write(make([]byte, n))
	return err
}

// writeAtPointer seeks to pointer, writes a single little-endian u32,
// and restores the writer's position. Used by the back-patch passes in
// container.go / dict.go, matching write_at_pointer in
// original_source/src/lib.rs.
func writeAtPointer(w io.WriteSeeker, at Pointer, value uint32) error {
	saved, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.Seek(int64(at), io.SeekStart); err != nil {
		return err
	}
	if err := writeU32(w, value); err != nil {
		return err
	}
	_, err = w.Seek(saved, io.SeekStart)
	return err
}

// currentPos returns the writer's current absolute position as a Pointer.
func currentPos(w io.Seeker) (Pointer, error) {
	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	return Pointer(pos), nil
}
