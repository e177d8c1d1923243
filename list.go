package bcres

import "io"

// readPointerList reads the two-level-indirection list primitive: a
// count, a relative pointer to a contiguous array of relative element
// pointers, each of which is itself followed to read one T. Null
// element pointers are skipped rather than inserted as zero values.
// See §4.H "List primitives" / GLOSSARY "Pointer list".
func readPointerList[T any](r io.ReadSeeker, readValue func(io.ReadSeeker) (T, error)) ([]T, error) {
	return readPointerListMagic(r, 0, false, readValue)
}

// readPointerListMagic is readPointerList with an optional per-element
// discriminant assertion consumed before readValue runs, used for
// VertexBufferInterleaved.Attributes (magic 0x40000001).
func readPointerListMagic[T any](r io.ReadSeeker, magic uint32, checkMagic bool, readValue func(io.ReadSeeker) (T, error)) ([]T, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	listPtr, hasList, err := readRelativePointer(r)
	if err != nil {
		return nil, err
	}
	if !hasList {
		return nil, nil
	}

	var values []T
	err = scopedSeek(r, listPtr, func() error {
		elemPtrs := make([]struct {
			ptr Pointer
			ok  bool
		}, count)
		for i := uint32(0); i < count; i++ {
			ptr, ok, err := readRelativePointer(r)
			if err != nil {
				return err
			}
			elemPtrs[i] = struct {
				ptr Pointer
				ok  bool
			}{ptr, ok}
		}
		values = make([]T, 0, count)
		for _, ep := range elemPtrs {
			if !ep.ok {
				continue
			}
			if err := seekTo(r, ep.ptr); err != nil {
				return err
			}
			if checkMagic {
				tag, err := readU32(r)
				if err != nil {
					return err
				}
				if tag != magic {
					return newErr(ErrUnknownDiscriminant, "pointer list element: want magic 0x%08x, got 0x%08x", magic, tag)
				}
			}
			v, err := readValue(r)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	return values, err
}

// readInlineList reads the one-level-indirection list primitive: a
// count and a relative pointer to `count` contiguous T values. See
// §4.H / GLOSSARY "Inline list".
func readInlineList[T any](r io.ReadSeeker, readValue func(io.ReadSeeker) (T, error)) ([]T, error) {
	count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	listPtr, hasList, err := readRelativePointer(r)
	if err != nil {
		return nil, err
	}
	if !hasList {
		return nil, nil
	}
	var values []T
	err = scopedSeek(r, listPtr, func() error {
		values = make([]T, 0, count)
		for i := uint32(0); i < count; i++ {
			v, err := readValue(r)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	return values, err
}

func readU32Value(r io.ReadSeeker) (uint32, error) { return readU32(r) }
