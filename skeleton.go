package bcres

import (
	"io"

	"github.com/Darxoon/ctr-bcres/geom"
)

const magicSkeleton uint32 = 0x02000000

// SkeletonScalingRule selects how a bone's scale composes with its
// parent's.
type SkeletonScalingRule uint32

const (
	ScalingStandard SkeletonScalingRule = iota
	ScalingMaya
	ScalingSoftImage
)

// Bone is one node of a Skeleton's hierarchy. The four sibling/child
// pointers are on-disk cross references preserved for round-trip but
// never dereferenced; Index/ParentIndex are the authoritative tree
// structure (§9 "Cyclic bone graph").
type Bone struct {
	Name    string
	HasName bool

	Flags       uint32
	Index       uint32
	ParentIndex uint32

	ParentPtr      Pointer
	HasParentPtr   bool
	ChildPtr       Pointer
	HasChildPtr    bool
	PrevSiblingPtr Pointer
	HasPrevSibling bool
	NextSiblingPtr Pointer
	HasNextSibling bool

	Scale       geom.Vec3
	Rotation    geom.Vec3
	Translation geom.Vec3

	Local        geom.Mat3x4
	World        geom.Mat3x4
	InverseWorld geom.Mat3x4

	BillboardMode uint32

	MetadataPtr Pointer
	HasMetadata bool
}

func readBoneValue(r io.ReadSeeker) (Bone, error) {
	namePtr, hasName, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
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
			return Bone{}, err
		}
	}

	flags, err := readU32(r)
	if err != nil {
		return Bone{}, err
	}
	index, err := readU32(r)
	if err != nil {
		return Bone{}, err
	}
	parentIndex, err := readU32(r)
	if err != nil {
		return Bone{}, err
	}

	parentPtr, hasParentPtr, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
	}
	childPtr, hasChildPtr, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
	}
	prevSiblingPtr, hasPrevSibling, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
	}
	nextSiblingPtr, hasNextSibling, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
	}

	scale, err := readVec3(r)
	if err != nil {
		return Bone{}, err
	}
	rotation, err := readVec3(r)
	if err != nil {
		return Bone{}, err
	}
	translation, err := readVec3(r)
	if err != nil {
		return Bone{}, err
	}

	local, err := readMat3x4(r)
	if err != nil {
		return Bone{}, err
	}
	world, err := readMat3x4(r)
	if err != nil {
		return Bone{}, err
	}
	inverseWorld, err := readMat3x4(r)
	if err != nil {
		return Bone{}, err
	}

	billboardMode, err := readU32(r)
	if err != nil {
		return Bone{}, err
	}
	metadataPtr, hasMetadata, err := readRelativePointer(r)
	if err != nil {
		return Bone{}, err
	}

	return Bone{
		Name:           name,
		HasName:        hasName,
		Flags:          flags,
		Index:          index,
		ParentIndex:    parentIndex,
		ParentPtr:      parentPtr,
		HasParentPtr:   hasParentPtr,
		ChildPtr:       childPtr,
		HasChildPtr:    hasChildPtr,
		PrevSiblingPtr: prevSiblingPtr,
		HasPrevSibling: hasPrevSibling,
		NextSiblingPtr: nextSiblingPtr,
		HasNextSibling: hasNextSibling,
		Scale:          scale,
		Rotation:       rotation,
		Translation:    translation,
		Local:          local,
		World:          world,
		InverseWorld:   inverseWorld,
		BillboardMode:  billboardMode,
		MetadataPtr:    metadataPtr,
		HasMetadata:    hasMetadata,
	}, nil
}

// Skeleton is a named dictionary of Bone plus the index of the root
// bone. Magic 0x02000000.
type Skeleton struct {
	Object      ObjectHeader
	Bones       *Dictionary[Bone]
	RootBone    Pointer
	ScalingRule SkeletonScalingRule
	Flags       uint32
}

func readSkeletonValue(r io.ReadSeeker) (Skeleton, error) {
	object, err := readObjectHeader(r, magicSkeleton)
	if err != nil {
		return Skeleton{}, err
	}

	boneCount, err := readU32(r)
	if err != nil {
		return Skeleton{}, err
	}
	bonesPtr, hasBones, err := readRelativePointer(r)
	if err != nil {
		return Skeleton{}, err
	}
	if !hasBones {
		return Skeleton{}, newErr(ErrUnexpectedNull, "skeleton is missing its required bones dictionary")
	}
	var bones *Dictionary[Bone]
	if err := scopedSeek(r, bonesPtr, func() error {
		d, err := readDictionary(r, readBoneValue)
		if err != nil {
			return err
		}
		bones = d
		return nil
	}); err != nil {
		return Skeleton{}, err
	}
	if bones.Count() != boneCount {
		return Skeleton{}, newErr(ErrCountMismatch, "skeleton bones dict has %d entries, declared %d", bones.Count(), boneCount)
	}

	rootBone, hasRootBone, err := readRelativePointer(r)
	if err != nil {
		return Skeleton{}, err
	}
	if !hasRootBone {
		return Skeleton{}, newErr(ErrUnexpectedNull, "skeleton is missing its required root bone pointer")
	}

	scalingRule, err := readU32(r)
	if err != nil {
		return Skeleton{}, err
	}
	flags, err := readU32(r)
	if err != nil {
		return Skeleton{}, err
	}

	return Skeleton{
		Object:      object,
		Bones:       bones,
		RootBone:    rootBone,
		ScalingRule: SkeletonScalingRule(scalingRule),
		Flags:       flags,
	}, nil
}
