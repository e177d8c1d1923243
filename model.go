package bcres

import "io"

const (
	discriminantModelStandard uint32 = 0x40000012
	discriminantModelSkeletal uint32 = 0x40000092
	magicMesh                 uint32 = 0x01000000
)

// ModelVariant discriminates whether a Model carries a Skeleton.
type ModelVariant int

const (
	ModelStandard ModelVariant = iota
	ModelSkeletal
)

// Visibility is a named on/off flag in a Model's mesh-node-visibility
// dictionary.
type Visibility struct {
	Name    string
	HasName bool
	Visible bool
}

func readVisibilityValue(r io.ReadSeeker) (Visibility, error) {
	namePtr, hasName, err := readRelativePointer(r)
	if err != nil {
		return Visibility{}, err
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
			return Visibility{}, err
		}
	}
	visibleRaw, err := readU32(r)
	if err != nil {
		return Visibility{}, err
	}
	return Visibility{Name: name, HasName: hasName, Visible: visibleRaw != 0}, nil
}

// ModelCommon is the payload shared by both Model variants.
type ModelCommon struct {
	Object    ObjectHeader
	Node      NodeHeader
	Transform Transform

	Meshes []Mesh

	Materials    *Dictionary[Material]
	HasMaterials bool

	Shapes []Shape

	Visibilities    *Dictionary[Visibility]
	HasVisibilities bool

	Flags       uint32
	FaceCulling uint32
	LayerID     uint32
}

// Model is either a Standard mesh collection or a Skeletal one carrying
// an additional bone hierarchy, per §3 "Model" (discriminants
// 0x40000012 / 0x40000092).
type Model struct {
	Common   ModelCommon
	Variant  ModelVariant
	Skeleton *Skeleton
}

func readModelValue(r io.ReadSeeker) (Model, error) {
	discriminant, err := readDiscriminant(r)
	if err != nil {
		return Model{}, err
	}
	var variant ModelVariant
	switch discriminant {
	case discriminantModelStandard:
		variant = ModelStandard
	case discriminantModelSkeletal:
		variant = ModelSkeletal
	default:
		return Model{}, newErr(ErrUnknownDiscriminant, "unknown model discriminant 0x%08x", discriminant)
	}

	object, err := readObjectHeaderBody(r, magicFromU32(discriminant))
	if err != nil {
		return Model{}, err
	}
	node, err := readNodeHeader(r)
	if err != nil {
		return Model{}, err
	}
	transform, err := readTransform(r)
	if err != nil {
		return Model{}, err
	}

	meshes, err := readPointerList(r, readMeshValue)
	if err != nil {
		return Model{}, err
	}

	materialsCount, err := readU32(r)
	if err != nil {
		return Model{}, err
	}
	materialsPtr, hasMaterials, err := readRelativePointer(r)
	if err != nil {
		return Model{}, err
	}
	var materials *Dictionary[Material]
	if hasMaterials {
		if err := scopedSeek(r, materialsPtr, func() error {
			d, err := readDictionary(r, readMaterialValue)
			if err != nil {
				return err
			}
			materials = d
			return nil
		}); err != nil {
			return Model{}, err
		}
		if materials.Count() != materialsCount {
			return Model{}, newErr(ErrCountMismatch, "model materials dict has %d entries, declared %d", materials.Count(), materialsCount)
		}
	}

	shapes, err := readPointerList(r, readShapeValue)
	if err != nil {
		return Model{}, err
	}

	visibilitiesCount, err := readU32(r)
	if err != nil {
		return Model{}, err
	}
	visibilitiesPtr, hasVisibilities, err := readRelativePointer(r)
	if err != nil {
		return Model{}, err
	}
	var visibilities *Dictionary[Visibility]
	if hasVisibilities {
		if err := scopedSeek(r, visibilitiesPtr, func() error {
			d, err := readDictionary(r, readVisibilityValue)
			if err != nil {
				return err
			}
			visibilities = d
			return nil
		}); err != nil {
			return Model{}, err
		}
		if visibilities.Count() != visibilitiesCount {
			return Model{}, newErr(ErrCountMismatch, "model visibilities dict has %d entries, declared %d", visibilities.Count(), visibilitiesCount)
		}
	}

	flags, err := readU32(r)
	if err != nil {
		return Model{}, err
	}
	faceCulling, err := readU32(r)
	if err != nil {
		return Model{}, err
	}
	layerID, err := readU32(r)
	if err != nil {
		return Model{}, err
	}

	common := ModelCommon{
		Object:          object,
		Node:            node,
		Transform:       transform,
		Meshes:          meshes,
		Materials:       materials,
		HasMaterials:    hasMaterials,
		Shapes:          shapes,
		Visibilities:    visibilities,
		HasVisibilities: hasVisibilities,
		Flags:           flags,
		FaceCulling:     faceCulling,
		LayerID:         layerID,
	}

	if variant == ModelStandard {
		return Model{Common: common, Variant: variant}, nil
	}

	skeletonPtr, hasSkeleton, err := readRelativePointer(r)
	if err != nil {
		return Model{}, err
	}
	if !hasSkeleton {
		return Model{}, newErr(ErrUnexpectedNull, "skeletal model is missing its required skeleton pointer")
	}
	var skeleton Skeleton
	if err := scopedSeek(r, skeletonPtr, func() error {
		s, err := readSkeletonValue(r)
		if err != nil {
			return err
		}
		skeleton = s
		return nil
	}); err != nil {
		return Model{}, err
	}

	return Model{Common: common, Variant: variant, Skeleton: &skeleton}, nil
}

// Mesh references a Shape and Material by index and carries draw-order
// metadata. Fixed-size record, magic 0x01000000.
type Mesh struct {
	Object         ObjectHeader
	ShapeIndex     uint32
	MaterialIndex  uint32
	ParentPtr      int32
	Visible        uint8
	RenderPriority uint8
	MeshNodeIndex  uint16
	PrimitiveIndex uint32
}

func readMeshValue(r io.ReadSeeker) (Mesh, error) {
	object, err := readObjectHeader(r, magicMesh)
	if err != nil {
		return Mesh{}, err
	}
	shapeIndex, err := readU32(r)
	if err != nil {
		return Mesh{}, err
	}
	materialIndex, err := readU32(r)
	if err != nil {
		return Mesh{}, err
	}
	parentPtr, err := readI32(r)
	if err != nil {
		return Mesh{}, err
	}
	visible, err := readU8(r)
	if err != nil {
		return Mesh{}, err
	}
	renderPriority, err := readU8(r)
	if err != nil {
		return Mesh{}, err
	}
	meshNodeIndex, err := readU16(r)
	if err != nil {
		return Mesh{}, err
	}
	primitiveIndex, err := readU32(r)
	if err != nil {
		return Mesh{}, err
	}
	return Mesh{
		Object:         object,
		ShapeIndex:     shapeIndex,
		MaterialIndex:  materialIndex,
		ParentPtr:      parentPtr,
		Visible:        visible,
		RenderPriority: renderPriority,
		MeshNodeIndex:  meshNodeIndex,
		PrimitiveIndex: primitiveIndex,
	}, nil
}
