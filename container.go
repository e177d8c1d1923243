package bcres

import (
	"bytes"
	"io"
)

// dictSlotCount is the fixed number of (count, relative_ptr) entries in
// the dictionary table, in the canonical on-disk order.
const dictSlotCount = 16

// unit is the empty value type used for dictionary slots this module
// never decodes beyond their structural shape (luts, shaders, cameras,
// ...). Reading one consumes nothing beyond the shared Node fields.
type unit struct{}

func readUnitValue(io.ReadSeeker) (unit, error) { return unit{}, nil }

// Container is the top-level parsed file: one Header plus the 16
// canonical dictionary slots.
type Container struct {
	Header Header

	Models               *Dictionary[Model]
	Textures             *Dictionary[Texture]
	Luts                 *Dictionary[unit]
	Materials            *Dictionary[unit]
	Shaders              *Dictionary[unit]
	Cameras              *Dictionary[unit]
	Lights               *Dictionary[unit]
	Fogs                 *Dictionary[unit]
	Scenes               *Dictionary[unit]
	SkeletalAnimations   *Dictionary[unit]
	MaterialAnimations   *Dictionary[unit]
	VisibilityAnimations *Dictionary[unit]
	CameraAnimations     *Dictionary[unit]
	LightAnimations      *Dictionary[unit]
	FogAnimations        *Dictionary[unit]
	Emitters             *Dictionary[unit]
}

// dictSlot is one of the 16 on-disk (count, relative_ptr) table entries
// captured during Parse, before the typed or unit dictionary it points
// to has been read.
type dictSlot struct {
	count uint32
	ptr   Pointer
	ok    bool
}

func readDictSlot(r io.ReadSeeker) (dictSlot, error) {
	count, err := readU32(r)
	if err != nil {
		return dictSlot{}, err
	}
	ptr, ok, err := readRelativePointer(r)
	if err != nil {
		return dictSlot{}, err
	}
	return dictSlot{count: count, ptr: ptr, ok: ok}, nil
}

// ParseContainer decodes a full CGFX buffer into a Container, per
// §4.F "Read".
func ParseContainer(data []byte, opts Options) (*Container, error) {
	r := bytes.NewReader(data)

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	slots := make([]dictSlot, dictSlotCount)
	for i := range slots {
		s, err := readDictSlot(r)
		if err != nil {
			return nil, err
		}
		slots[i] = s
	}

	c := &Container{Header: header}

	readUnitSlot := func(s dictSlot) (*Dictionary[unit], error) {
		if !s.ok {
			if opts.Strict && s.count != 0 {
				return nil, newErr(ErrCountMismatch, "null dictionary slot with non-zero count %d", s.count)
			}
			return nil, nil
		}
		var d *Dictionary[unit]
		if err := scopedSeek(r, s.ptr, func() error {
			dict, err := readDictionary(r, readUnitValue)
			if err != nil {
				return err
			}
			d = dict
			return nil
		}); err != nil {
			return nil, err
		}
		if opts.Strict && d.Count() != s.count {
			return nil, newErr(ErrCountMismatch, "dictionary has %d entries, slot declares %d", d.Count(), s.count)
		}
		return d, nil
	}

	// Slot 0: models (typed).
	if slots[0].ok {
		if err := scopedSeek(r, slots[0].ptr, func() error {
			d, err := readDictionary(r, readModelValue)
			if err != nil {
				return err
			}
			c.Models = d
			return nil
		}); err != nil {
			return nil, err
		}
		if opts.Strict && c.Models.Count() != slots[0].count {
			return nil, newErr(ErrCountMismatch, "models dictionary has %d entries, slot declares %d", c.Models.Count(), slots[0].count)
		}
	} else if opts.Strict && slots[0].count != 0 {
		return nil, newErr(ErrCountMismatch, "null models slot with non-zero count %d", slots[0].count)
	}

	// Slot 1: textures (typed).
	if slots[1].ok {
		if err := scopedSeek(r, slots[1].ptr, func() error {
			d, err := readDictionary(r, readTextureValue)
			if err != nil {
				return err
			}
			c.Textures = d
			return nil
		}); err != nil {
			return nil, err
		}
		if opts.Strict && c.Textures.Count() != slots[1].count {
			return nil, newErr(ErrCountMismatch, "textures dictionary has %d entries, slot declares %d", c.Textures.Count(), slots[1].count)
		}
	} else if opts.Strict && slots[1].count != 0 {
		return nil, newErr(ErrCountMismatch, "null textures slot with non-zero count %d", slots[1].count)
	}

	unitSlots := []**Dictionary[unit]{
		&c.Luts, &c.Materials, &c.Shaders, &c.Cameras, &c.Lights, &c.Fogs,
		&c.Scenes, &c.SkeletalAnimations, &c.MaterialAnimations,
		&c.VisibilityAnimations, &c.CameraAnimations, &c.LightAnimations,
		&c.FogAnimations, &c.Emitters,
	}
	for i, dst := range unitSlots {
		d, err := readUnitSlot(slots[2+i])
		if err != nil {
			return nil, err
		}
		*dst = d
	}

	return c, nil
}

// Serialize re-emits the container. Per §4.E/§4.F/§4.G "Write"
// contracts, only the textures dictionary is written. A populated
// Models or Materials slot makes Serialize fail with ErrUnsupported;
// the other twelve slots are neither checked nor written, so their
// contents are absent from the output.
func (c *Container) Serialize() ([]byte, error) {
	return c.serialize(nil)
}

// SerializeDebug behaves like Serialize but, when reference is non-nil,
// asserts byte equality of each completed prefix (header, dict table,
// string section, padding, image section) against the corresponding
// prefix of reference. See §8 "Prefix match".
func (c *Container) SerializeDebug(reference []byte) ([]byte, error) {
	return c.serialize(reference)
}

func (c *Container) serialize(reference []byte) ([]byte, error) {
	if c.Models != nil && len(c.Models.Nodes) > 1 {
		return nil, newErr(ErrUnsupported, "model dictionary write is not supported")
	}
	if c.Materials != nil && len(c.Materials.Nodes) > 1 {
		return nil, newErr(ErrUnsupported, "material dictionary write is not supported")
	}

	buf := &bytes.Buffer{}
	w := &seekBuffer{buf: buf}

	if err := writeHeader(w, c.Header); err != nil {
		return nil, err
	}
	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}

	slotTableBase, err := currentPos(w)
	if err != nil {
		return nil, err
	}
	for i := 0; i < dictSlotCount; i++ {
		if err := writeU32(w, 0); err != nil {
			return nil, err
		}
		if err := writeU32(w, 0); err != nil {
			return nil, err
		}
	}
	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}

	ctx := newWriteContext()

	// Slot 1: textures, the only populated+writable typed dictionary.
	if c.Textures != nil {
		slotOffset := slotTableBase + 1*8
		if err := writeAtPointer(w, slotOffset, c.Textures.Count()); err != nil {
			return nil, err
		}
		dictStart, err := currentPos(w)
		if err != nil {
			return nil, err
		}
		if err := writeAtPointer(w, slotOffset+4, uint32(int64(dictStart)-int64(slotOffset+4))); err != nil {
			return nil, err
		}
		if err := writeDictionary(w, ctx, c.Textures, writeTextureValue); err != nil {
			return nil, err
		}
	}

	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}

	// String fixup (§4.F step 4). ctx.stringSection was built in walk
	// order as names were registered, and each loc's offset into it was
	// resolved then too, so this pass only has to turn offsets into
	// absolute back-patches; it never re-derives them from map order.
	stringSectionStart, err := currentPos(w)
	if err != nil {
		return nil, err
	}
	for loc, offset := range ctx.stringRefs {
		absolute := Pointer(int64(stringSectionStart) + int64(offset))
		if err := writeAtPointer(w, loc, uint32(int64(absolute)-int64(loc))); err != nil {
			return nil, err
		}
	}
	if _, err := w.Write([]byte(ctx.stringSection.String())); err != nil {
		return nil, err
	}
	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}

	// Padding (§4.F step 5).
	size, err := currentPos(w)
	if err != nil {
		return nil, err
	}
	pad := paddingBeforeImageSection(int64(size))
	if err := writeZeros(w, pad); err != nil {
		return nil, err
	}
	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}

	// Image section fixup (§4.F steps 6-7).
	imagTagPos, err := currentPos(w)
	if err != nil {
		return nil, err
	}
	imageBase := Pointer(int64(imagTagPos) + 8)
	for loc, imgOff := range ctx.imageRefs {
		target := Pointer(int64(imageBase) + int64(imgOff))
		if err := writeAtPointer(w, loc, uint32(int64(target)-int64(loc))); err != nil {
			return nil, err
		}
	}
	if _, err := w.Write([]byte(magicIMAG)); err != nil {
		return nil, err
	}
	if err := writeU32(w, uint32(len(ctx.imageSection)+8)); err != nil {
		return nil, err
	}
	if _, err := w.Write(ctx.imageSection); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if c.Header.FileLength != 0 && uint32(len(out)) != c.Header.FileLength {
		return nil, newErr(ErrCountMismatch, "serialized length %d does not match header file_length %d", len(out), c.Header.FileLength)
	}
	if err := checkPrefix(w, reference); err != nil {
		return nil, err
	}
	return out, nil
}

// paddingBeforeImageSection computes the zero padding needed so the
// IMAG tag begins at an address satisfying (offset+8) mod 128 == 0.
// Reproduced as observed in reference files; see §9 "Design Notes".
func paddingBeforeImageSection(bufferSize int64) int {
	const align = 128
	pad := ((-bufferSize-8)%align + align) % align
	return int(pad)
}

// checkPrefix implements SerializeDebug's prefix-equality assertion: if
// reference is non-nil, the bytes written to w so far must equal the
// corresponding prefix of reference.
func checkPrefix(w *seekBuffer, reference []byte) error {
	if reference == nil {
		return nil
	}
	got := w.buf.Bytes()
	if len(got) > len(reference) {
		return newErr(ErrInvalidValue, "serialized output exceeds reference length at offset %d", len(reference))
	}
	if !bytes.Equal(got, reference[:len(got)]) {
		return newErr(ErrInvalidValue, "serialized prefix diverges from reference at offset %d", len(got))
	}
	return nil
}

// FromSingleTexture builds a minimal Container wrapping exactly one
// named texture, per §4.F "Single-texture helper". referenceBit mirrors
// the reference_bit observed in hand-authored wrapper files; callers
// replacing a texture in an existing archive should pass the value
// copied from that archive's own two-node texture dict.
func FromSingleTexture(name string, referenceBit uint32, tex Texture) *Container {
	nodes := []Node[Texture]{
		{ReferenceBit: sentinelReferenceBit, Left: 1, Right: 0},
		{
			ReferenceBit: referenceBit,
			Left:         0,
			Right:        1,
			Name:         name,
			HasName:      true,
			Value:        tex,
			HasValue:     true,
		},
	}
	return &Container{
		Header: Header{
			Revision:      0x05000000,
			FileLength:    0x180 + uint32(tex.Size()),
			SectionsCount: 2,
			ContentLength: 356,
		},
		Textures: &Dictionary[Texture]{Nodes: nodes},
	}
}

// defaultReferenceBitForName computes the reference_bit the reference
// writer derives for a single-entry texture dictionary's real node:
// (len(name) * 8) - 2. Exposed for callers that don't already have one
// to copy from an existing archive.
func defaultReferenceBitForName(name string) uint32 {
	return uint32(len(name))*8 - 2
}

// FromSingleTextureNamed is FromSingleTexture with referenceBit derived
// from name via defaultReferenceBitForName, for callers building a
// wrapper archive from scratch rather than replacing a texture inside
// an existing one.
func FromSingleTextureNamed(name string, tex Texture) *Container {
	return FromSingleTexture(name, defaultReferenceBitForName(name), tex)
}

// seekBuffer adapts a growing bytes.Buffer to the io.WriteSeeker this
// package's writers need for back-patching. Seeking is only ever used
// to jump backward to an already-written offset and then forward again
// (writeAtPointer, currentPos); it never extends the buffer.
type seekBuffer struct {
	buf *bytes.Buffer
	pos int64
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	data := s.buf.Bytes()
	if s.pos < int64(len(data)) {
		n := copy(data[s.pos:], p)
		s.pos += int64(n)
		if n == len(p) {
			return n, nil
		}
		p = p[n:]
	}
	n, err := s.buf.Write(p)
	s.pos += int64(n)
	return n, err
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(s.buf.Len()) + offset
	}
	return s.pos, nil
}
