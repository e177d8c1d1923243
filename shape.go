package bcres

import (
	"io"

	"github.com/Darxoon/ctr-bcres/geom"
)

const magicShape uint32 = 0x10000001

// BoundingBox is an optional oriented bounding volume attached to a
// Shape.
type BoundingBox struct {
	Flags       uint32
	Center      geom.Vec3
	Orientation geom.Mat3
	Size        geom.Vec3
}

func readBoundingBox(r io.Reader) (BoundingBox, error) {
	flags, err := readU32(r)
	if err != nil {
		return BoundingBox{}, err
	}
	center, err := readVec3(r)
	if err != nil {
		return BoundingBox{}, err
	}
	orientation, err := readMat3(r)
	if err != nil {
		return BoundingBox{}, err
	}
	size, err := readVec3(r)
	if err != nil {
		return BoundingBox{}, err
	}
	return BoundingBox{Flags: flags, Center: center, Orientation: orientation, Size: size}, nil
}

// SubMeshSkinning classifies how a SubMesh's vertices are bound to
// bones.
type SubMeshSkinning uint32

const (
	SkinningNone SubMeshSkinning = iota
	SkinningRigid
	SkinningSmooth
)

// SubMesh groups faces sharing the same bone binding.
type SubMesh struct {
	BoneIndices []uint32
	Skinning    SubMeshSkinning
	Faces       []Face
}

func readSubMeshValue(r io.ReadSeeker) (SubMesh, error) {
	boneIndices, err := readInlineList(r, readU32Value)
	if err != nil {
		return SubMesh{}, err
	}
	skinningRaw, err := readU32(r)
	if err != nil {
		return SubMesh{}, err
	}
	faces, err := readPointerList(r, readFaceValue)
	if err != nil {
		return SubMesh{}, err
	}
	return SubMesh{BoneIndices: boneIndices, Skinning: SubMeshSkinning(skinningRaw), Faces: faces}, nil
}

// Face is a list of draw-call descriptors plus opaque console-specific
// bookkeeping (buffer_objs, command_alloc — see §9 Open Questions).
type Face struct {
	FaceDescriptors []FaceDescriptor
	BufferObjs      []uint32
	Flags           uint32
	CommandAlloc    uint32
}

func readFaceValue(r io.ReadSeeker) (Face, error) {
	descriptors, err := readPointerList(r, readFaceDescriptorValue)
	if err != nil {
		return Face{}, err
	}
	bufferObjs, err := readInlineList(r, readU32Value)
	if err != nil {
		return Face{}, err
	}
	flags, err := readU32(r)
	if err != nil {
		return Face{}, err
	}
	commandAlloc, err := readU32(r)
	if err != nil {
		return Face{}, err
	}
	return Face{FaceDescriptors: descriptors, BufferObjs: bufferObjs, Flags: flags, CommandAlloc: commandAlloc}, nil
}

// FaceDescriptor carries one draw call's vertex-index buffer, widened
// to u16 on load regardless of its on-disk 1- or 2-byte element type,
// per §4.H / §8 "Index widening".
type FaceDescriptor struct {
	Format         GlDataType
	PrimitiveMode  uint8
	Visible        uint8
	Indices        []uint16
	BoundingVolume uint32
}

func readFaceDescriptorValue(r io.ReadSeeker) (FaceDescriptor, error) {
	format, err := readGlDataType(r)
	if err != nil {
		return FaceDescriptor{}, err
	}
	size, ok := format.ByteSize()
	if !ok || (size != 1 && size != 2) {
		return FaceDescriptor{}, newErr(ErrInvalidValue, "face descriptor format must be a 1- or 2-byte type, got %v", format)
	}
	primitiveMode, err := readU8(r)
	if err != nil {
		return FaceDescriptor{}, err
	}
	visible, err := readU8(r)
	if err != nil {
		return FaceDescriptor{}, err
	}
	if _, err := readBytes(r, 2); err != nil { // padding
		return FaceDescriptor{}, err
	}

	rawBytes, err := readInlineList(r, readByteValue)
	if err != nil {
		return FaceDescriptor{}, err
	}

	var indices []uint16
	if len(rawBytes) > 0 {
		switch size {
		case 1:
			indices = make([]uint16, len(rawBytes))
			for i, b := range rawBytes {
				indices[i] = uint16(b)
			}
		case 2:
			if len(rawBytes)%2 != 0 {
				return FaceDescriptor{}, newErr(ErrInvalidValue, "face descriptor raw byte buffer has odd length %d for a 2-byte index type", len(rawBytes))
			}
			indices = make([]uint16, len(rawBytes)/2)
			for i := range indices {
				indices[i] = uint16(rawBytes[2*i]) | uint16(rawBytes[2*i+1])<<8
			}
		}
	}

	if _, err := readBytes(r, 6*4); err != nil { // six skipped reserved fields
		return FaceDescriptor{}, err
	}
	boundingVolume, err := readU32(r)
	if err != nil {
		return FaceDescriptor{}, err
	}

	return FaceDescriptor{
		Format:         format,
		PrimitiveMode:  primitiveMode,
		Visible:        visible,
		Indices:        indices,
		BoundingVolume: boundingVolume,
	}, nil
}

// Shape is a mesh's geometry: an optional bounding box, the
// invariant-zero position_offset, sub-meshes, and vertex buffers.
type Shape struct {
	Object         ObjectHeader
	Flags          uint32
	BoundingBox    *BoundingBox
	PositionOffset geom.Vec3
	SubMeshes      []SubMesh
	BaseAddress    uint32
	VertexBuffers  []VertexBuffer
}

func readShapeValue(r io.ReadSeeker) (Shape, error) {
	object, err := readObjectHeader(r, magicShape)
	if err != nil {
		return Shape{}, err
	}
	flags, err := readU32(r)
	if err != nil {
		return Shape{}, err
	}

	bbPtr, hasBB, err := readRelativePointer(r)
	if err != nil {
		return Shape{}, err
	}
	var bb *BoundingBox
	if hasBB {
		if err := scopedSeek(r, bbPtr, func() error {
			v, err := readBoundingBox(r)
			if err != nil {
				return err
			}
			bb = &v
			return nil
		}); err != nil {
			return Shape{}, err
		}
	}

	positionOffset, err := readVec3(r)
	if err != nil {
		return Shape{}, err
	}
	if !positionOffset.IsZero() {
		return Shape{}, newErr(ErrInvalidValue, "Shape.position_offset must be zero, got %+v", positionOffset)
	}

	subMeshes, err := readPointerList(r, readSubMeshValue)
	if err != nil {
		return Shape{}, err
	}
	baseAddress, err := readU32(r)
	if err != nil {
		return Shape{}, err
	}
	vertexBuffers, err := readPointerList(r, readVertexBufferValue)
	if err != nil {
		return Shape{}, err
	}

	return Shape{
		Object:         object,
		Flags:          flags,
		BoundingBox:    bb,
		PositionOffset: positionOffset,
		SubMeshes:      subMeshes,
		BaseAddress:    baseAddress,
		VertexBuffers:  vertexBuffers,
	}, nil
}
