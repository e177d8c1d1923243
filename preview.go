package bcres

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// DecodeFunc unswizzles raw console-native pixel bytes into RGBA. This
// module never implements one itself (block decoding/swizzling is a
// separate concern, per spec.md §1 "Out of scope" and §6
// decode_swizzled_buffer); callers inject their own.
type DecodeFunc func(format PicaTextureFormat, width, height uint32, data []byte) (*image.NRGBA, error)

// ToImage decodes img's raw bytes via decode, using img's own stored
// geometry.
func (img *ImageData) ToImage(format PicaTextureFormat, decode DecodeFunc) (*image.NRGBA, error) {
	if decode == nil {
		return nil, newErr(ErrUnsupported, "no decode function supplied")
	}
	return decode(format, img.Width, img.Height, img.ImageBytes)
}

// WritePNG encodes img as a PNG, for dumping a decoded texture to disk
// for inspection.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteCubeCross composites six equal-size cube faces into a standard
// plus-shaped cross layout and writes it as a single PNG. Face order
// matches Texture.Cube: +X, -X, +Y, -Y, +Z, -Z.
func WriteCubeCross(w io.Writer, faces [6]image.Image) error {
	bounds := faces[0].Bounds()
	size := bounds.Dx()
	for i, f := range faces {
		if f.Bounds().Dx() != size || f.Bounds().Dy() != size {
			return newErr(ErrInvalidValue, "cube face %d has mismatched size %v, want %dx%d", i, f.Bounds(), size, size)
		}
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size*4, size*3))

	type placement struct {
		col, row int
		face     image.Image
	}
	// +X, -X, +Y, -Y, +Z, -Z laid out as a plus-shaped cross:
	//        +Y
	//   -X   +Z   +X   -Z
	//        -Y
	placements := []placement{
		{2, 1, faces[0]}, // +X
		{0, 1, faces[1]}, // -X
		{1, 0, faces[2]}, // +Y
		{1, 2, faces[3]}, // -Y
		{1, 1, faces[4]}, // +Z
		{3, 1, faces[5]}, // -Z
	}
	for _, p := range placements {
		dstRect := image.Rect(p.col*size, p.row*size, (p.col+1)*size, (p.row+1)*size)
		draw.Draw(canvas, dstRect, p.face, p.face.Bounds().Min, draw.Src)
	}

	return WritePNG(w, canvas)
}

// textureFormatName renders f as a readable name for diagnostics. No
// code in this package calls it; it has no effect on parsing.
func textureFormatName(f PicaTextureFormat) string {
	names := [...]string{
		"RGBA8", "RGB8", "RGBA5551", "RGB565", "RGBA4", "LA8", "HiLo8",
		"L8", "A8", "LA4", "L4", "A4", "ETC1", "ETC1A4",
	}
	if int(f) < 0 || int(f) >= len(names) {
		return fmt.Sprintf("Format(%d)", f)
	}
	return names[f]
}
