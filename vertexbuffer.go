package bcres

import "io"

// AttributeName enumerates the 22 vertex-attribute roles a
// VertexBufferCommon can declare, Position through the Interleave
// sentinel.
type AttributeName uint32

const (
	AttributePosition AttributeName = iota
	AttributeNormal
	AttributeTangent
	AttributeColor
	AttributeTexCoord0
	AttributeTexCoord1
	AttributeTexCoord2
	AttributeBoneIndex
	AttributeBoneWeight
	AttributeUser0
	AttributeUser1
	AttributeUser2
	AttributeUser3
	AttributeUser4
	AttributeUser5
	AttributeUser6
	AttributeUser7
	AttributeUser8
	AttributeUser9
	AttributeUser10
	AttributeUser11
	AttributeInterleave
)

// GlDataType is the GL-style element type tag stored on vertex buffers
// and face descriptors.
type GlDataType uint32

const (
	GlByte   GlDataType = 0x1400
	GlUByte  GlDataType = 0x1401
	GlShort  GlDataType = 0x1402
	GlUShort GlDataType = 0x1403
	GlFloat  GlDataType = 0x1406
	GlFixed  GlDataType = 0x140C
)

// ByteSize returns the element width in bytes, or (0, false) for
// GlFixed, whose size this format leaves undefined (§9 Open Questions).
func (t GlDataType) ByteSize() (int, bool) {
	switch t {
	case GlByte, GlUByte:
		return 1, true
	case GlShort, GlUShort:
		return 2, true
	case GlFloat:
		return 4, true
	default:
		return 0, false
	}
}

func readGlDataType(r io.Reader) (GlDataType, error) {
	v, err := readU32(r)
	return GlDataType(v), err
}

// VertexBufferType is a redundant-looking classification field stored
// alongside AttributeName on every VertexBufferCommon; preserved
// verbatim, not used to drive dispatch (the wrapping discriminant does
// that).
type VertexBufferType uint32

const (
	VertexBufferTypeNone VertexBufferType = iota
	VertexBufferTypeFixed
	VertexBufferTypeInterleaved
)

// VertexBufferCommon is the (attribute_name, vertex_buffer_type) pair
// prefixing every VertexBuffer variant's body.
type VertexBufferCommon struct {
	AttributeName    AttributeName
	VertexBufferType VertexBufferType
}

func readVertexBufferCommon(r io.Reader) (VertexBufferCommon, error) {
	name, err := readU32(r)
	if err != nil {
		return VertexBufferCommon{}, err
	}
	kind, err := readU32(r)
	if err != nil {
		return VertexBufferCommon{}, err
	}
	return VertexBufferCommon{AttributeName: AttributeName(name), VertexBufferType: VertexBufferType(kind)}, nil
}

const (
	discriminantVBAttribute  uint32 = 0x40000001
	discriminantVBInterleave uint32 = 0x40000002
	discriminantVBFixed      uint32 = 0x80000000
)

// VertexBufferAttribute is a standalone per-attribute vertex buffer:
// raw element bytes plus the format/scale/offset needed to interpret
// them.
type VertexBufferAttribute struct {
	Common       VertexBufferCommon
	BufferObj    uint32
	LocationFlag uint32
	RawBytes     []byte
	LocationPtr  uint32
	MemoryArea   uint32
	Format       GlDataType
	Elements     uint32
	Scale        float32
	Offset       uint32
}

func readByteValue(r io.ReadSeeker) (byte, error) { return readU8(r) }

func readVertexBufferAttributeBody(r io.ReadSeeker) (VertexBufferAttribute, error) {
	common, err := readVertexBufferCommon(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	bufferObj, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	locationFlag, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	rawBytes, err := readInlineList(r, readByteValue)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	locationPtr, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	memoryArea, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	format, err := readGlDataType(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	elements, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	scale, err := readF32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	offset, err := readU32(r)
	if err != nil {
		return VertexBufferAttribute{}, err
	}
	return VertexBufferAttribute{
		Common:       common,
		BufferObj:    bufferObj,
		LocationFlag: locationFlag,
		RawBytes:     rawBytes,
		LocationPtr:  locationPtr,
		MemoryArea:   memoryArea,
		Format:       format,
		Elements:     elements,
		Scale:        scale,
		Offset:       offset,
	}, nil
}

// VertexBufferInterleaved packs several attributes into one strided
// buffer; its nested Attributes share the parent's raw_bytes framing
// but are each read as a full VertexBufferAttribute body behind a
// pointer list asserting magic 0x40000001.
type VertexBufferInterleaved struct {
	Common       VertexBufferCommon
	BufferObj    uint32
	LocationFlag uint32
	RawBytes     []byte
	LocationPtr  uint32
	MemoryArea   uint32
	VertexStride uint32
	Attributes   []VertexBufferAttribute
}

func readVertexBufferInterleavedBody(r io.ReadSeeker) (VertexBufferInterleaved, error) {
	common, err := readVertexBufferCommon(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	bufferObj, err := readU32(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	locationFlag, err := readU32(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	rawBytes, err := readInlineList(r, readByteValue)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	locationPtr, err := readU32(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	memoryArea, err := readU32(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	vertexStride, err := readU32(r)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	attributes, err := readPointerListMagic(r, discriminantVBAttribute, true, readVertexBufferAttributeBody)
	if err != nil {
		return VertexBufferInterleaved{}, err
	}
	return VertexBufferInterleaved{
		Common:       common,
		BufferObj:    bufferObj,
		LocationFlag: locationFlag,
		RawBytes:     rawBytes,
		LocationPtr:  locationPtr,
		MemoryArea:   memoryArea,
		VertexStride: vertexStride,
		Attributes:   attributes,
	}, nil
}

// VertexBufferFixed stores a constant per-component value shared by
// every vertex, rather than a per-vertex array.
type VertexBufferFixed struct {
	Common   VertexBufferCommon
	Format   GlDataType
	Elements uint32
	Scale    float32
	Vector   []float32
}

func readF32Value(r io.ReadSeeker) (float32, error) { return readF32(r) }

func readVertexBufferFixedBody(r io.ReadSeeker) (VertexBufferFixed, error) {
	common, err := readVertexBufferCommon(r)
	if err != nil {
		return VertexBufferFixed{}, err
	}
	format, err := readGlDataType(r)
	if err != nil {
		return VertexBufferFixed{}, err
	}
	elements, err := readU32(r)
	if err != nil {
		return VertexBufferFixed{}, err
	}
	scale, err := readF32(r)
	if err != nil {
		return VertexBufferFixed{}, err
	}
	vector, err := readInlineList(r, readF32Value)
	if err != nil {
		return VertexBufferFixed{}, err
	}
	return VertexBufferFixed{Common: common, Format: format, Elements: elements, Scale: scale, Vector: vector}, nil
}

// VertexBufferVariant discriminates VertexBuffer's three shapes.
type VertexBufferVariant int

const (
	VertexBufferKindAttribute VertexBufferVariant = iota
	VertexBufferKindInterleaved
	VertexBufferKindFixed
)

// VertexBuffer is the sum of the three on-disk vertex buffer shapes,
// dispatched by a leading discriminant (§3 "VertexBuffer").
type VertexBuffer struct {
	Variant     VertexBufferVariant
	Attribute   VertexBufferAttribute
	Interleaved VertexBufferInterleaved
	Fixed       VertexBufferFixed
}

func readVertexBufferValue(r io.ReadSeeker) (VertexBuffer, error) {
	discriminant, err := readDiscriminant(r)
	if err != nil {
		return VertexBuffer{}, err
	}
	switch discriminant {
	case discriminantVBAttribute:
		v, err := readVertexBufferAttributeBody(r)
		if err != nil {
			return VertexBuffer{}, err
		}
		return VertexBuffer{Variant: VertexBufferKindAttribute, Attribute: v}, nil
	case discriminantVBInterleave:
		v, err := readVertexBufferInterleavedBody(r)
		if err != nil {
			return VertexBuffer{}, err
		}
		return VertexBuffer{Variant: VertexBufferKindInterleaved, Interleaved: v}, nil
	case discriminantVBFixed:
		v, err := readVertexBufferFixedBody(r)
		if err != nil {
			return VertexBuffer{}, err
		}
		return VertexBuffer{Variant: VertexBufferKindFixed, Fixed: v}, nil
	default:
		return VertexBuffer{}, newErr(ErrUnknownDiscriminant, "unknown vertex buffer discriminant 0x%08x", discriminant)
	}
}
