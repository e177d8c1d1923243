package bcres

import (
	"io"

	"github.com/Darxoon/ctr-bcres/geom"
)

const magicMaterial uint32 = 0x08000000

// RgbaColor is a packed 8-bit-per-channel color, as stored in
// MaterialColors.
type RgbaColor struct {
	R, G, B, A uint8
}

func readRgbaColor(r io.Reader) (RgbaColor, error) {
	b, err := readBytes(r, 4)
	if err != nil {
		return RgbaColor{}, err
	}
	return RgbaColor{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func writeRgbaColor(w io.Writer, c RgbaColor) error {
	_, err := w.Write([]byte{c.R, c.G, c.B, c.A})
	return err
}

// MaterialColors holds the fixed-function color registers: eleven
// float colors followed by their packed-byte counterparts plus a
// command cache word.
type MaterialColors struct {
	EmissionFloat, AmbientFloat, DiffuseFloat                        geom.Vec4
	Specular0Float, Specular1Float                                   geom.Vec4
	Constant0Float, Constant1Float, Constant2Float                   geom.Vec4
	Constant3Float, Constant4Float, Constant5Float                   geom.Vec4
	Emission, Ambient, Diffuse, Specular0, Specular1                 RgbaColor
	Constant0, Constant1, Constant2, Constant3, Constant4, Constant5 RgbaColor
	CommandCache                                                     uint32
}

func readMaterialColors(r io.Reader) (MaterialColors, error) {
	floats := make([]geom.Vec4, 11)
	for i := range floats {
		v, err := readVec4(r)
		if err != nil {
			return MaterialColors{}, err
		}
		floats[i] = v
	}
	colors := make([]RgbaColor, 11)
	for i := range colors {
		c, err := readRgbaColor(r)
		if err != nil {
			return MaterialColors{}, err
		}
		colors[i] = c
	}
	commandCache, err := readU32(r)
	if err != nil {
		return MaterialColors{}, err
	}
	return MaterialColors{
		EmissionFloat: floats[0], AmbientFloat: floats[1], DiffuseFloat: floats[2],
		Specular0Float: floats[3], Specular1Float: floats[4],
		Constant0Float: floats[5], Constant1Float: floats[6], Constant2Float: floats[7],
		Constant3Float: floats[8], Constant4Float: floats[9], Constant5Float: floats[10],
		Emission: colors[0], Ambient: colors[1], Diffuse: colors[2],
		Specular0: colors[3], Specular1: colors[4],
		Constant0: colors[5], Constant1: colors[6], Constant2: colors[7],
		Constant3: colors[8], Constant4: colors[9], Constant5: colors[10],
		CommandCache: commandCache,
	}, nil
}

// Rasterization is the face-culling/polygon-offset fixed-function
// state.
type Rasterization struct {
	IsPolygonOffsetEnabled uint32
	FaceCulling            uint32
	PolygonOffsetUnit      float32
	FaceCullingCommand     [2]uint32
}

func readRasterization(r io.Reader) (Rasterization, error) {
	enabled, err := readU32(r)
	if err != nil {
		return Rasterization{}, err
	}
	faceCulling, err := readU32(r)
	if err != nil {
		return Rasterization{}, err
	}
	unit, err := readF32(r)
	if err != nil {
		return Rasterization{}, err
	}
	cmd, err := readU32Array(r, 2)
	if err != nil {
		return Rasterization{}, err
	}
	return Rasterization{
		IsPolygonOffsetEnabled: enabled,
		FaceCulling:            faceCulling,
		PolygonOffsetUnit:      unit,
		FaceCullingCommand:     [2]uint32{cmd[0], cmd[1]},
	}, nil
}

// FragmentOp is the depth/blend/stencil fixed-function state.
type FragmentOp struct {
	DepthFlags      uint32
	DepthCommands   [4]uint32
	BlendMode       uint32
	BlendColor      geom.Vec4
	BlendCommands   [6]uint32
	StencilCommands [4]uint32
}

func readFragmentOp(r io.Reader) (FragmentOp, error) {
	depthFlags, err := readU32(r)
	if err != nil {
		return FragmentOp{}, err
	}
	depthCmd, err := readU32Array(r, 4)
	if err != nil {
		return FragmentOp{}, err
	}
	blendMode, err := readU32(r)
	if err != nil {
		return FragmentOp{}, err
	}
	blendColor, err := readVec4(r)
	if err != nil {
		return FragmentOp{}, err
	}
	blendCmd, err := readU32Array(r, 6)
	if err != nil {
		return FragmentOp{}, err
	}
	stencilCmd, err := readU32Array(r, 4)
	if err != nil {
		return FragmentOp{}, err
	}
	return FragmentOp{
		DepthFlags:      depthFlags,
		DepthCommands:   [4]uint32{depthCmd[0], depthCmd[1], depthCmd[2], depthCmd[3]},
		BlendMode:       blendMode,
		BlendColor:      blendColor,
		BlendCommands:   [6]uint32{blendCmd[0], blendCmd[1], blendCmd[2], blendCmd[3], blendCmd[4], blendCmd[5]},
		StencilCommands: [4]uint32{stencilCmd[0], stencilCmd[1], stencilCmd[2], stencilCmd[3]},
	}, nil
}

// TextureCoord is one UV channel's source/mapping configuration plus
// its 3x4 transform matrix.
type TextureCoord struct {
	SourceCoordIndex     uint32
	MappingType          uint32
	ReferenceCameraIndex uint32
	TransformType        uint32
	Scale                geom.Vec2
	Rotation             float32
	Translation          geom.Vec2
	Flags                uint32
	Transform            geom.Mat3x4
}

func readTextureCoord(r io.Reader) (TextureCoord, error) {
	sourceCoordIndex, err := readU32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	mappingType, err := readU32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	referenceCameraIndex, err := readU32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	transformType, err := readU32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	scale, err := readVec2(r)
	if err != nil {
		return TextureCoord{}, err
	}
	rotation, err := readF32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	translation, err := readVec2(r)
	if err != nil {
		return TextureCoord{}, err
	}
	flags, err := readU32(r)
	if err != nil {
		return TextureCoord{}, err
	}
	transform, err := readMat3x4(r)
	if err != nil {
		return TextureCoord{}, err
	}
	return TextureCoord{
		SourceCoordIndex:     sourceCoordIndex,
		MappingType:          mappingType,
		ReferenceCameraIndex: referenceCameraIndex,
		TransformType:        transformType,
		Scale:                scale,
		Rotation:             rotation,
		Translation:          translation,
		Flags:                flags,
		Transform:            transform,
	}, nil
}

const magicTextureReference uint32 = 0x20000004
const magicTextureMapperOrSampler uint32 = 0x80000000

// TextureReference names an external texture by path and/or an
// in-archive pointer.
type TextureReference struct {
	Object     ObjectHeader
	Path       string
	HasPath    bool
	TexturePtr uint32
}

func readTextureReference(r io.ReadSeeker) (TextureReference, error) {
	object, err := readObjectHeader(r, magicTextureReference)
	if err != nil {
		return TextureReference{}, err
	}
	pathPtr, hasPath, err := readRelativePointer(r)
	if err != nil {
		return TextureReference{}, err
	}
	var path string
	if hasPath {
		if err := scopedSeek(r, pathPtr, func() error {
			s, err := readCString(r)
			if err != nil {
				return err
			}
			path = s
			return nil
		}); err != nil {
			return TextureReference{}, err
		}
	}
	texturePtr, err := readU32(r)
	if err != nil {
		return TextureReference{}, err
	}
	return TextureReference{Object: object, Path: path, HasPath: hasPath, TexturePtr: texturePtr}, nil
}

// TextureSampler stores the minification filter selected for a mapper;
// parent_mapper is a back-reference preserved verbatim, never
// dereferenced.
type TextureSampler struct {
	ParentMapper    Pointer
	HasParentMapper bool
	MinFilter       uint32
}

func readTextureSampler(r io.ReadSeeker) (TextureSampler, error) {
	if err := readMagic32(r, magicTextureMapperOrSampler); err != nil {
		return TextureSampler{}, err
	}
	parentMapper, hasParentMapper, err := readRelativePointer(r)
	if err != nil {
		return TextureSampler{}, err
	}
	minFilter, err := readU32(r)
	if err != nil {
		return TextureSampler{}, err
	}
	return TextureSampler{ParentMapper: parentMapper, HasParentMapper: hasParentMapper, MinFilter: minFilter}, nil
}

// TextureMapper binds a texture and sampler to one of a Material's
// three texture-coordinate channels.
type TextureMapper struct {
	DynamicAlloc uint32
	Texture      *TextureReference
	Sampler      *TextureSampler
	Commands     [14]uint32
	CommandsLen  uint32
}

func readTextureMapper(r io.ReadSeeker) (TextureMapper, error) {
	if err := readMagic32(r, magicTextureMapperOrSampler); err != nil {
		return TextureMapper{}, err
	}
	dynamicAlloc, err := readU32(r)
	if err != nil {
		return TextureMapper{}, err
	}

	texPtr, hasTex, err := readRelativePointer(r)
	if err != nil {
		return TextureMapper{}, err
	}
	var texture *TextureReference
	if hasTex {
		if err := scopedSeek(r, texPtr, func() error {
			v, err := readTextureReference(r)
			if err != nil {
				return err
			}
			texture = &v
			return nil
		}); err != nil {
			return TextureMapper{}, err
		}
	}

	samplerPtr, hasSampler, err := readRelativePointer(r)
	if err != nil {
		return TextureMapper{}, err
	}
	var sampler *TextureSampler
	if hasSampler {
		if err := scopedSeek(r, samplerPtr, func() error {
			v, err := readTextureSampler(r)
			if err != nil {
				return err
			}
			sampler = &v
			return nil
		}); err != nil {
			return TextureMapper{}, err
		}
	}

	commands, err := readU32Array(r, 14)
	if err != nil {
		return TextureMapper{}, err
	}
	commandsLen, err := readU32(r)
	if err != nil {
		return TextureMapper{}, err
	}
	var fixed [14]uint32
	copy(fixed[:], commands)
	return TextureMapper{
		DynamicAlloc: dynamicAlloc,
		Texture:      texture,
		Sampler:      sampler,
		Commands:     fixed,
		CommandsLen:  commandsLen,
	}, nil
}

func readMagic32(r io.Reader, want uint32) error {
	got, err := readU32(r)
	if err != nil {
		return err
	}
	if got != want {
		return newErr(ErrUnknownDiscriminant, "want magic 0x%08x, got 0x%08x", want, got)
	}
	return nil
}

// Material is the fixed-function shading state for a mesh: colors,
// rasterizer/fragment state, up to three UV channels and their texture
// mappers. Magic 0x08000000.
type Material struct {
	Object                 ObjectHeader
	Flags                  uint32
	TexCoordConfig         uint32
	RenderLayer            uint32
	Colors                 MaterialColors
	Rasterization          Rasterization
	FragmentOp             FragmentOp
	UsedTextureCoordsCount uint32
	TextureCoords          [3]TextureCoord
	TextureMappers         [3]*TextureMapper
}

func readMaterialValue(r io.ReadSeeker) (Material, error) {
	object, err := readObjectHeader(r, magicMaterial)
	if err != nil {
		return Material{}, err
	}
	flags, err := readU32(r)
	if err != nil {
		return Material{}, err
	}
	texCoordConfig, err := readU32(r)
	if err != nil {
		return Material{}, err
	}
	renderLayer, err := readU32(r)
	if err != nil {
		return Material{}, err
	}
	colors, err := readMaterialColors(r)
	if err != nil {
		return Material{}, err
	}
	rasterization, err := readRasterization(r)
	if err != nil {
		return Material{}, err
	}
	fragmentOp, err := readFragmentOp(r)
	if err != nil {
		return Material{}, err
	}
	usedTextureCoordsCount, err := readU32(r)
	if err != nil {
		return Material{}, err
	}

	var texCoords [3]TextureCoord
	for i := range texCoords {
		tc, err := readTextureCoord(r)
		if err != nil {
			return Material{}, err
		}
		texCoords[i] = tc
	}

	var mapperPtrs [3]struct {
		ptr Pointer
		ok  bool
	}
	for i := range mapperPtrs {
		ptr, ok, err := readRelativePointer(r)
		if err != nil {
			return Material{}, err
		}
		mapperPtrs[i] = struct {
			ptr Pointer
			ok  bool
		}{ptr, ok}
	}

	var mappers [3]*TextureMapper
	for i, mp := range mapperPtrs {
		if !mp.ok {
			continue
		}
		if err := scopedSeek(r, mp.ptr, func() error {
			v, err := readTextureMapper(r)
			if err != nil {
				return err
			}
			mappers[i] = &v
			return nil
		}); err != nil {
			return Material{}, err
		}
	}

	return Material{
		Object:                 object,
		Flags:                  flags,
		TexCoordConfig:         texCoordConfig,
		RenderLayer:            renderLayer,
		Colors:                 colors,
		Rasterization:          rasterization,
		FragmentOp:             fragmentOp,
		UsedTextureCoordsCount: usedTextureCoordsCount,
		TextureCoords:          texCoords,
		TextureMappers:         mappers,
	}, nil
}
