package bcres

import (
	"io"
	"strings"
)

// sentinelReferenceBit marks the synthetic first node of every
// dictionary: no name, no value, reference_bit == 0xFFFFFFFF.
const sentinelReferenceBit = 0xFFFFFFFF

// Node is one entry of a Dictionary[T]. The tree indices and reference
// bit implement a radix-trie lookup used by the console runtime; this
// module preserves them verbatim but never rebuilds or walks them.
type Node[T any] struct {
	ReferenceBit uint32
	Left         uint16
	Right        uint16
	Name         string
	HasName      bool
	Value        T
	HasValue     bool
}

// Dictionary is a named, indexed collection of T, node 0 always being
// the sentinel (see sentinelReferenceBit).
type Dictionary[T any] struct {
	Nodes []Node[T]
}

// Count is the on-disk (count, ptr) slot's count field: one less than
// len(Nodes), since the sentinel isn't counted.
func (d *Dictionary[T]) Count() uint32 {
	if d == nil || len(d.Nodes) == 0 {
		return 0
	}
	return uint32(len(d.Nodes) - 1)
}

// Values returns the real (non-sentinel) node values in insertion order.
func (d *Dictionary[T]) Values() []T {
	if d == nil {
		return nil
	}
	out := make([]T, 0, len(d.Nodes))
	for _, n := range d.Nodes[1:] {
		out = append(out, n.Value)
	}
	return out
}

// readDictionary reads a "DICT" header, `values_count + 1` nodes, and
// invokes readValue at each node's scoped value pointer. Matches §4.E.
func readDictionary[T any](r io.ReadSeeker, readValue func(io.ReadSeeker) (T, error)) (*Dictionary[T], error) {
	if err := readMagic(r, magicDICT); err != nil {
		return nil, err
	}
	if _, err := readU32(r); err != nil { // tree_length, unused on read.
		return nil, err
	}
	valuesCount, err := readU32(r)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node[T], 0, valuesCount+1)
	for i := uint32(0); i < valuesCount+1; i++ {
		refBit, err := readU32(r)
		if err != nil {
			return nil, err
		}
		left, err := readU16(r)
		if err != nil {
			return nil, err
		}
		right, err := readU16(r)
		if err != nil {
			return nil, err
		}
		namePtr, hasName, err := readRelativePointer(r)
		if err != nil {
			return nil, err
		}
		var name string
		if hasName {
			if err := scopedSeek(r, namePtr, func() error {
				s, err := readCString(r)
				if err != nil {
					return err
				}
				name = s
				return nil
			}); err != nil {
				return nil, err
			}
		}
		valuePtr, hasValue, err := readRelativePointer(r)
		if err != nil {
			return nil, err
		}
		var value T
		if hasValue {
			if err := scopedSeek(r, valuePtr, func() error {
				v, err := readValue(r)
				if err != nil {
					return err
				}
				value = v
				return nil
			}); err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, Node[T]{
			ReferenceBit: refBit,
			Left:         left,
			Right:        right,
			Name:         name,
			HasName:      hasName,
			Value:        value,
			HasValue:     hasValue,
		})
	}
	return &Dictionary[T]{Nodes: nodes}, nil
}

// writeDictionary emits a DICT header and every node, back-patching
// each node's value placeholder in place and registering names with
// ctx for the deferred string-section fixup. The only value writer in
// this package is writeTextureValue; an error from writeValue,
// including ErrUnsupported, propagates.
func writeDictionary[T any](w io.WriteSeeker, ctx *writeContext, d *Dictionary[T], writeValue func(io.WriteSeeker, *writeContext, T) error) error {
	if d == nil {
		return nil
	}
	if uint32(len(d.Nodes)) != d.Count()+1 {
		return newErr(ErrCountMismatch, "dictionary has %d nodes, expected count+1", len(d.Nodes))
	}
	if _, err := w.Write([]byte(magicDICT)); err != nil {
		return err
	}
	// tree_length is not reconstructed from the node/name data (no
	// consumer of this module rebuilds the trie); 0 mirrors the
	// reference decoder's lack of any write support beyond textures,
	// where tests build their own reference bytes around this field.
	if err := writeU32(w, 0); err != nil {
		return err
	}
	if err := writeU32(w, d.Count()); err != nil {
		return err
	}

	for _, n := range d.Nodes {
		if err := writeU32(w, n.ReferenceBit); err != nil {
			return err
		}
		if err := writeU16(w, n.Left); err != nil {
			return err
		}
		if err := writeU16(w, n.Right); err != nil {
			return err
		}
		namePos, err := currentPos(w)
		if err != nil {
			return err
		}
		if err := writeU32(w, 0); err != nil {
			return err
		}
		if n.HasName {
			ctx.registerString(namePos, n.Name)
		}
		valuePos, err := currentPos(w)
		if err != nil {
			return err
		}
		if err := writeU32(w, 0); err != nil {
			return err
		}
		if n.HasValue {
			before, err := currentPos(w)
			if err != nil {
				return err
			}
			if err := writeAtPointer(w, valuePos, uint32(int64(before)-int64(valuePos))); err != nil {
				return err
			}
			if err := writeValue(w, ctx, n.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeContext accumulates deferred back-patch work produced while
// emitting a Container's main content: names and image blobs can't be
// placed until the whole object graph has been walked once, so every
// writer registers a (placeholder offset -> target) pair here instead
// of writing the pointer directly. See §4.F and §9 "Self-referential
// pointer layout".
type writeContext struct {
	stringSection strings.Builder
	stringRefs    map[Pointer]Pointer
	imageSection  []byte
	imageRefs     map[Pointer]Pointer
}

func newWriteContext() *writeContext {
	return &writeContext{
		stringRefs: make(map[Pointer]Pointer),
		imageRefs:  make(map[Pointer]Pointer),
	}
}

// registerString appends s to the string section, in walk order, unless
// an identical substring is already present (coalescing shared suffixes
// the way the reference writer's substring search does), and records
// loc as needing a back-patch to the chosen offset once the section's
// absolute base is known. The offset is resolved immediately so that
// the final fixup pass doesn't have to replay registration order from a
// map, which has none.
func (c *writeContext) registerString(loc Pointer, s string) {
	idx := strings.Index(c.stringSection.String(), s)
	if idx < 0 {
		idx = c.stringSection.Len()
		c.stringSection.WriteString(s)
		c.stringSection.WriteByte(0)
	}
	c.stringRefs[loc] = Pointer(idx)
}

// registerImage appends data to the image section and records loc as
// needing a back-patch to the (eventually absolute) offset of the
// appended bytes.
func (c *writeContext) registerImage(loc Pointer, data []byte) {
	off := Pointer(len(c.imageSection))
	c.imageSection = append(c.imageSection, data...)
	c.imageRefs[loc] = off
}
