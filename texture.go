package bcres

import "io"

// PicaTextureFormat is the console GPU's pixel-format enumeration.
type PicaTextureFormat uint32

const (
	FormatRGBA8    PicaTextureFormat = iota // 32 bpp
	FormatRGB8                              // 24 bpp
	FormatRGBA5551                          // 16 bpp
	FormatRGB565                            // 16 bpp
	FormatRGBA4                             // 16 bpp
	FormatLA8                               // 16 bpp
	FormatHiLo8                             // 16 bpp
	FormatL8                                // 8 bpp
	FormatA8                                // 8 bpp
	FormatLA4                               // 8 bpp
	FormatL4                                // 4 bpp
	FormatA4                                // 4 bpp
	FormatETC1                              // 4 bpp
	FormatETC1A4                            // 8 bpp
)

var textureFormatBitsPerPixel = [...]uint32{
	FormatRGBA8: 32, FormatRGB8: 24, FormatRGBA5551: 16, FormatRGB565: 16,
	FormatRGBA4: 16, FormatLA8: 16, FormatHiLo8: 16, FormatL8: 8,
	FormatA8: 8, FormatLA4: 8, FormatL4: 4, FormatA4: 4,
	FormatETC1: 4, FormatETC1A4: 8,
}

// BitsPerPixel returns the fixed bit depth for f, or 0 for an
// out-of-range value.
func (f PicaTextureFormat) BitsPerPixel() uint32 {
	if int(f) < 0 || int(f) >= len(textureFormatBitsPerPixel) {
		return 0
	}
	return textureFormatBitsPerPixel[f]
}

const (
	discriminantTextureImage2D uint32 = 0x20000011
	discriminantTextureCube    uint32 = 0x20000009
)

// ImageData is one mip level / cube face's metadata plus its raw,
// still-swizzled pixel bytes. The bytes live in the file's shared image
// section; this record only ever stores a length and pointer into it.
type ImageData struct {
	Height       uint32
	Width        uint32
	BufferLength uint32
	DynamicAlloc uint32
	BitsPerPixel uint32
	MemoryArea   uint32
	ImageBytes   []byte
}

func readImageData(r io.ReadSeeker) (ImageData, error) {
	height, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	width, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	if _, err := readU32(r); err != nil { // reserved
		return ImageData{}, err
	}
	bufferLength, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	bufferPtr, hasBuffer, err := readRelativePointer(r)
	if err != nil {
		return ImageData{}, err
	}
	dynamicAlloc, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	bitsPerPixel, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	locationPtr, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}
	if locationPtr != 0 {
		return ImageData{}, newErr(ErrInvalidValue, "ImageData.location_ptr must be 0, got %d", locationPtr)
	}
	memoryArea, err := readU32(r)
	if err != nil {
		return ImageData{}, err
	}

	var imageBytes []byte
	if hasBuffer {
		if err := scopedSeek(r, bufferPtr, func() error {
			b, err := readBytes(r, int(bufferLength))
			if err != nil {
				return err
			}
			imageBytes = b
			return nil
		}); err != nil {
			return ImageData{}, err
		}
	}

	return ImageData{
		Height:       height,
		Width:        width,
		BufferLength: bufferLength,
		DynamicAlloc: dynamicAlloc,
		BitsPerPixel: bitsPerPixel,
		MemoryArea:   memoryArea,
		ImageBytes:   imageBytes,
	}, nil
}

// writeImageData emits the fixed ImageData record with buffer_ptr
// zeroed, and queues the raw bytes with ctx.registerImage against that
// placeholder's location for the image-section back-patch.
func writeImageData(w io.WriteSeeker, ctx *writeContext, img ImageData) error {
	if err := writeU32(w, img.Height); err != nil {
		return err
	}
	if err := writeU32(w, img.Width); err != nil {
		return err
	}
	if err := writeU32(w, 0); err != nil {
		return err
	}
	if err := writeU32(w, img.BufferLength); err != nil {
		return err
	}
	bufferPos, err := currentPos(w)
	if err != nil {
		return err
	}
	if err := writeU32(w, 0); err != nil {
		return err
	}
	ctx.registerImage(bufferPos, img.ImageBytes)
	if err := writeU32(w, img.DynamicAlloc); err != nil {
		return err
	}
	if err := writeU32(w, img.BitsPerPixel); err != nil {
		return err
	}
	if err := writeU32(w, 0); err != nil { // location_ptr
		return err
	}
	return writeU32(w, img.MemoryArea)
}

// TextureCommon is the metadata shared by every Texture variant.
type TextureCommon struct {
	Object       ObjectHeader
	Height       uint32
	Width        uint32
	GlFormat     uint32
	GlType       uint32
	MipmapSize   uint32
	TextureObj   uint32
	LocationFlag uint32
	Format       PicaTextureFormat
}

func readTextureCommon(r io.ReadSeeker) (TextureCommon, error) {
	obj, err := readObjectHeaderNoMagicCheck(r)
	if err != nil {
		return TextureCommon{}, err
	}
	height, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	width, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	glFormat, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	glType, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	mipmapSize, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	textureObj, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	locationFlag, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	format, err := readU32(r)
	if err != nil {
		return TextureCommon{}, err
	}
	return TextureCommon{
		Object:       obj,
		Height:       height,
		Width:        width,
		GlFormat:     glFormat,
		GlType:       glType,
		MipmapSize:   mipmapSize,
		TextureObj:   textureObj,
		LocationFlag: locationFlag,
		Format:       PicaTextureFormat(format),
	}, nil
}

func writeTextureCommon(w io.WriteSeeker, ctx *writeContext, c TextureCommon) error {
	if err := writeObjectHeader(w, ctx, c.Object); err != nil {
		return err
	}
	if err := writeU32(w, c.Height); err != nil {
		return err
	}
	if err := writeU32(w, c.Width); err != nil {
		return err
	}
	if err := writeU32(w, c.GlFormat); err != nil {
		return err
	}
	if err := writeU32(w, c.GlType); err != nil {
		return err
	}
	if err := writeU32(w, c.MipmapSize); err != nil {
		return err
	}
	if err := writeU32(w, c.TextureObj); err != nil {
		return err
	}
	if err := writeU32(w, c.LocationFlag); err != nil {
		return err
	}
	return writeU32(w, uint32(c.Format))
}

// TextureVariant discriminates Texture's payload shape.
type TextureVariant int

const (
	TextureImage2D TextureVariant = iota
	TextureCubeVariant
)

// Texture is either a single optional 2D image or six required cube
// faces, per §3 "Texture".
type Texture struct {
	Common  TextureCommon
	Variant TextureVariant

	Image *ImageData   // set when Variant == TextureImage2D and present.
	Cube  [6]ImageData // set when Variant == TextureCubeVariant.
}

// Size is the total length of t's raw image bytes. FromSingleTexture
// adds it to 0x180 to get file_length (§4.F); with a short name, 0x180
// is where that wrapper's image bytes begin.
func (t Texture) Size() int {
	n := 0
	if t.Image != nil {
		n += len(t.Image.ImageBytes)
	}
	for _, f := range t.Cube {
		n += len(f.ImageBytes)
	}
	return n
}

func readTextureValue(r io.ReadSeeker) (Texture, error) {
	discriminant, err := readDiscriminant(r)
	if err != nil {
		return Texture{}, err
	}
	switch discriminant {
	case discriminantTextureImage2D:
		common, err := readTextureCommon(r)
		if err != nil {
			return Texture{}, err
		}
		imgPtr, hasImg, err := readRelativePointer(r)
		if err != nil {
			return Texture{}, err
		}
		var img *ImageData
		if hasImg {
			if err := scopedSeek(r, imgPtr, func() error {
				v, err := readImageData(r)
				if err != nil {
					return err
				}
				img = &v
				return nil
			}); err != nil {
				return Texture{}, err
			}
		}
		return Texture{Common: common, Variant: TextureImage2D, Image: img}, nil

	case discriminantTextureCube:
		common, err := readTextureCommon(r)
		if err != nil {
			return Texture{}, err
		}
		var faces [6]ImageData
		for i := 0; i < 6; i++ {
			facePtr, hasFace, err := readRelativePointer(r)
			if err != nil {
				return Texture{}, err
			}
			if !hasFace {
				return Texture{}, newErr(ErrUnexpectedNull, "cube texture face %d pointer is null", i)
			}
			if err := scopedSeek(r, facePtr, func() error {
				v, err := readImageData(r)
				if err != nil {
					return err
				}
				faces[i] = v
				return nil
			}); err != nil {
				return Texture{}, err
			}
		}
		return Texture{Common: common, Variant: TextureCubeVariant, Cube: faces}, nil

	default:
		return Texture{}, newErr(ErrUnknownDiscriminant, "unknown texture discriminant 0x%08x", discriminant)
	}
}

// writeTextureValue implements §4.G "Write (Image2D only)"; Cube and
// absent-image variants fail with ErrUnsupported rather than silently
// dropping data.
func writeTextureValue(w io.WriteSeeker, ctx *writeContext, t Texture) error {
	if t.Variant != TextureImage2D {
		return newErr(ErrUnsupported, "cube texture write is not supported")
	}
	if t.Image == nil {
		return newErr(ErrUnsupported, "absent-image texture write is not supported")
	}
	if err := writeU32(w, discriminantTextureImage2D); err != nil {
		return err
	}
	if err := writeTextureCommon(w, ctx, t.Common); err != nil {
		return err
	}
	if err := writeU32(w, 4); err != nil { // relative image pointer: the ImageData record starts 4 bytes ahead.
		return err
	}
	return writeImageData(w, ctx, *t.Image)
}
