package bcres

import (
	"io"
)

// Pointer is a 32-bit absolute file offset. On disk nearly every pointer
// is stored relative to the file position at which it was read; Pointer
// always holds the already-resolved absolute offset so arithmetic on it
// (adding a header size, comparing against a section base) never has to
// re-derive "relative to what".
type Pointer uint32

// readRelativePointer reads a 4-byte little-endian offset and resolves it
// against the stream position the offset itself occupied, per spec.md §3:
// "relative to the pointer's own file position; zero = null". ok is false
// for a null (raw == 0) pointer.
func readRelativePointer(r io.ReadSeeker) (p Pointer, ok bool, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false, err
	}
	raw, err := readU32(r)
	if err != nil {
		return 0, false, err
	}
	if raw == 0 {
		return 0, false, nil
	}
	return Pointer(int64(pos) + int64(int32(raw))), true, nil
}

// readAbsolutePointer reads a 4-byte little-endian absolute file offset.
// ok is false for a null (raw == 0) pointer. No decoder in this
// package calls it: every pointer they read, the image-data buffer
// pointer included, goes through readRelativePointer.
func readAbsolutePointer(r io.Reader) (p Pointer, ok bool, err error) {
	raw, err := readU32(r)
	if err != nil {
		return 0, false, err
	}
	if raw == 0 {
		return 0, false, nil
	}
	return Pointer(raw), true, nil
}

// scopedSeek saves the reader's current position, seeks to target, runs
// fn, and restores the original position on every exit path — the
// in-Go equivalent of the teacher's scoped_reader_pos! guard (see
// original_source/src/lib.rs ReaderGuard). Errors from fn propagate
// after the position has been restored.
func scopedSeek(r io.ReadSeeker, target Pointer, fn func() error) error {
	saved, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	defer r.Seek(saved, io.SeekStart)

	if _, err := r.Seek(int64(target), io.SeekStart); err != nil {
		return err
	}
	return fn()
}

// seekTo is scopedSeek's non-scoped sibling: it seeks permanently and
// leaves the cursor at target on success. Used where the pre-call
// cursor is never needed again: readPointerListMagic jumps to each
// element with it after collecting all element pointers, inside a
// scopedSeek that restores the outer cursor afterwards.
func seekTo(r io.Seeker, target Pointer) error {
	_, err := r.Seek(int64(target), io.SeekStart)
	return err
}
