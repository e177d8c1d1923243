package bcres

import (
	"io"

	"github.com/Darxoon/ctr-bcres/geom"
)

// magicCGFX, magicDATA, magicIMAG, magicDICT are the fixed 4-byte ASCII
// tags that open the corresponding file sections.
const (
	magicCGFX = "CGFX"
	magicDATA = "DATA"
	magicIMAG = "IMAG"
	magicDICT = "DICT"
)

const (
	headerByteOrderMark = 0xFEFF
	headerLength        = 20
)

// Header is the 28-byte file header: magic, byte-order mark, header
// length, revision, total file length, section count, then the data
// section's own magic and content length.
type Header struct {
	Revision      uint32
	FileLength    uint32
	SectionsCount uint32
	ContentLength uint32
}

func readHeader(r io.Reader) (Header, error) {
	if err := readMagic(r, magicCGFX); err != nil {
		return Header{}, err
	}
	bom, err := readU16(r)
	if err != nil {
		return Header{}, err
	}
	if bom != headerByteOrderMark {
		return Header{}, newErr(ErrMalformedHeader, "unexpected byte order mark 0x%04x", bom)
	}
	hlen, err := readU16(r)
	if err != nil {
		return Header{}, err
	}
	if hlen != headerLength {
		return Header{}, newErr(ErrMalformedHeader, "unexpected header length %d", hlen)
	}
	revision, err := readU32(r)
	if err != nil {
		return Header{}, err
	}
	fileLength, err := readU32(r)
	if err != nil {
		return Header{}, err
	}
	sectionsCount, err := readU32(r)
	if err != nil {
		return Header{}, err
	}
	if err := readMagic(r, magicDATA); err != nil {
		return Header{}, err
	}
	contentLength, err := readU32(r)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Revision:      revision,
		FileLength:    fileLength,
		SectionsCount: sectionsCount,
		ContentLength: contentLength,
	}, nil
}

func writeHeader(w io.Writer, h Header) error {
	if _, err := w.Write([]byte(magicCGFX)); err != nil {
		return err
	}
	if err := writeU16(w, headerByteOrderMark); err != nil {
		return err
	}
	if err := writeU16(w, headerLength); err != nil {
		return err
	}
	if err := writeU32(w, h.Revision); err != nil {
		return err
	}
	if err := writeU32(w, h.FileLength); err != nil {
		return err
	}
	if err := writeU32(w, h.SectionsCount); err != nil {
		return err
	}
	if _, err := w.Write([]byte(magicDATA)); err != nil {
		return err
	}
	return writeU32(w, h.ContentLength)
}

// ObjectHeader is the record prefix shared by most high-level objects:
// a 4-byte type tag, a revision, an optional name, and an (currently
// unused on read) metadata list pointer.
type ObjectHeader struct {
	Magic         string
	Revision      uint32
	Name          string // "" when absent on disk.
	HasName       bool
	MetadataCount uint32
	MetadataPtr   Pointer
	HasMetadata   bool
}

// readObjectHeader reads an ObjectHeader and asserts its magic field
// equals wantMagic, the way Mesh/Shape/Material/Skeleton's fixed
// discriminants are checked per §6's magic number table.
func readObjectHeader(r io.ReadSeeker, wantMagic uint32) (ObjectHeader, error) {
	tag, err := readU32(r)
	if err != nil {
		return ObjectHeader{}, err
	}
	if tag != wantMagic {
		return ObjectHeader{}, newErr(ErrUnknownDiscriminant, "object header: want magic 0x%08x, got 0x%08x", wantMagic, tag)
	}
	return readObjectHeaderBody(r, magicFromU32(wantMagic))
}

func magicFromU32(tag uint32) string {
	var b [4]byte
	b[0] = byte(tag)
	b[1] = byte(tag >> 8)
	b[2] = byte(tag >> 16)
	b[3] = byte(tag >> 24)
	return string(b[:])
}

// readObjectHeaderNoMagicCheck reads an ObjectHeader without asserting
// its magic field against a known discriminant. Used by TextureCommon,
// whose embedded magic is round-tripped verbatim rather than checked
// (the texture's own discriminant, read separately before
// TextureCommon, is what gets dispatched on).
func readObjectHeaderNoMagicCheck(r io.ReadSeeker) (ObjectHeader, error) {
	tagBytes, err := readBytes(r, 4)
	if err != nil {
		return ObjectHeader{}, err
	}
	return readObjectHeaderBody(r, string(tagBytes))
}

func readObjectHeaderBody(r io.ReadSeeker, magic string) (ObjectHeader, error) {
	revision, err := readU32(r)
	if err != nil {
		return ObjectHeader{}, err
	}

	namePos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return ObjectHeader{}, err
	}
	namePtr, hasName, err := readRelativePointer(r)
	if err != nil {
		return ObjectHeader{}, err
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
			return ObjectHeader{}, err
		}
	}
	if _, err := r.Seek(namePos+4, io.SeekStart); err != nil {
		return ObjectHeader{}, err
	}

	metadataCount, err := readU32(r)
	if err != nil {
		return ObjectHeader{}, err
	}
	metadataPtr, hasMetadata, err := readRelativePointer(r)
	if err != nil {
		return ObjectHeader{}, err
	}

	return ObjectHeader{
		Magic:         magic,
		Revision:      revision,
		Name:          name,
		HasName:       hasName,
		MetadataCount: metadataCount,
		MetadataPtr:   metadataPtr,
		HasMetadata:   hasMetadata,
	}, nil
}

// writeObjectHeader writes h.Magic verbatim, revision, a zeroed name
// placeholder (registered with ctx for the string-section back-patch)
// and a zeroed metadata pointer, exactly as
// original_source/src/util/util.rs's brw_write_zero never re-emits
// metadata on write.
func writeObjectHeader(w io.WriteSeeker, ctx *writeContext, h ObjectHeader) error {
	magicBytes := []byte(h.Magic)
	if len(magicBytes) != 4 {
		return newErr(ErrInvalidValue, "object header magic must be 4 bytes, got %d", len(magicBytes))
	}
	if _, err := w.Write(magicBytes); err != nil {
		return err
	}
	if err := writeU32(w, h.Revision); err != nil {
		return err
	}
	namePos, err := currentPos(w)
	if err != nil {
		return err
	}
	if err := writeU32(w, 0); err != nil {
		return err
	}
	if h.HasName {
		ctx.registerString(namePos, h.Name)
	}
	if err := writeU32(w, h.MetadataCount); err != nil {
		return err
	}
	return writeU32(w, 0)
}

// NodeHeader is the visibility/child-list prefix used by Model.Common.
// The anim_groups dictionary itself is not read: only its count and
// pointer are kept, matching original_source's
// `#[brw(ignore)] anim_groups: CgfxDict<()>`.
type NodeHeader struct {
	BranchVisible   uint32
	IsBranchVisible uint32
	ChildCount      uint32
	ChildrenPtr     Pointer
	HasChildren     bool
	AnimGroupCount  uint32
	AnimGroupPtr    Pointer
	HasAnimGroup    bool
}

func readNodeHeader(r io.ReadSeeker) (NodeHeader, error) {
	branchVisible, err := readU32(r)
	if err != nil {
		return NodeHeader{}, err
	}
	isBranchVisible, err := readU32(r)
	if err != nil {
		return NodeHeader{}, err
	}
	childCount, err := readU32(r)
	if err != nil {
		return NodeHeader{}, err
	}
	childrenPtr, hasChildren, err := readRelativePointer(r)
	if err != nil {
		return NodeHeader{}, err
	}
	animGroupCount, err := readU32(r)
	if err != nil {
		return NodeHeader{}, err
	}
	animGroupPtr, hasAnimGroup, err := readRelativePointer(r)
	if err != nil {
		return NodeHeader{}, err
	}
	return NodeHeader{
		BranchVisible:   branchVisible,
		IsBranchVisible: isBranchVisible,
		ChildCount:      childCount,
		ChildrenPtr:     childrenPtr,
		HasChildren:     hasChildren,
		AnimGroupCount:  animGroupCount,
		AnimGroupPtr:    animGroupPtr,
		HasAnimGroup:    hasAnimGroup,
	}, nil
}

// Transform is the scale/rotation/translation plus local/world 3x4
// matrices shared by Model.Common.
type Transform struct {
	Scale       geom.Vec3
	Rotation    geom.Vec3
	Translation geom.Vec3
	Local       geom.Mat3x4
	World       geom.Mat3x4
}

func readTransform(r io.Reader) (Transform, error) {
	scale, err := readVec3(r)
	if err != nil {
		return Transform{}, err
	}
	rotation, err := readVec3(r)
	if err != nil {
		return Transform{}, err
	}
	translation, err := readVec3(r)
	if err != nil {
		return Transform{}, err
	}
	local, err := readMat3x4(r)
	if err != nil {
		return Transform{}, err
	}
	world, err := readMat3x4(r)
	if err != nil {
		return Transform{}, err
	}
	return Transform{
		Scale:       scale,
		Rotation:    rotation,
		Translation: translation,
		Local:       local,
		World:       world,
	}, nil
}
