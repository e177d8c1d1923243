// Package geom holds the fixed-layout float32 geometry primitives used
// throughout the container format: vectors and matrices that are read
// and written as flat little-endian fields, never as a general-purpose
// runtime math library. See bcres.Transform, bcres.Shape.BoundingBox,
// and bcres.Bone for their embedding points.
package geom

import "io"

// Vec2 is a two-component float32 vector, stored x then y.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three-component float32 vector, stored x, y, z.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four-component float32 vector, stored x, y, z, w.
type Vec4 struct {
	X, Y, Z, W float32
}

// IsZero reports whether v is the zero vector. Used to check the
// Shape.position_offset invariant.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// reader/writer function types let this package stay decoupled from
// package bcres's primitive I/O helpers; the caller supplies them.
type f32Reader func(io.Reader) (float32, error)
type f32Writer func(io.Writer, float32) error

// ReadVec2 reads a Vec2 using the supplied float32 reader.
func ReadVec2(r io.Reader, readF32 f32Reader) (Vec2, error) {
	x, err := readF32(r)
	if err != nil {
		return Vec2{}, err
	}
	y, err := readF32(r)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: x, Y: y}, nil
}

// WriteVec2 writes a Vec2 using the supplied float32 writer.
func WriteVec2(w io.Writer, v Vec2, writeF32 f32Writer) error {
	if err := writeF32(w, v.X); err != nil {
		return err
	}
	return writeF32(w, v.Y)
}

// ReadVec3 reads a Vec3 using the supplied float32 reader.
func ReadVec3(r io.Reader, readF32 f32Reader) (Vec3, error) {
	x, err := readF32(r)
	if err != nil {
		return Vec3{}, err
	}
	y, err := readF32(r)
	if err != nil {
		return Vec3{}, err
	}
	z, err := readF32(r)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: x, Y: y, Z: z}, nil
}

// WriteVec3 writes a Vec3 using the supplied float32 writer.
func WriteVec3(w io.Writer, v Vec3, writeF32 f32Writer) error {
	if err := writeF32(w, v.X); err != nil {
		return err
	}
	if err := writeF32(w, v.Y); err != nil {
		return err
	}
	return writeF32(w, v.Z)
}

// ReadVec4 reads a Vec4 using the supplied float32 reader.
func ReadVec4(r io.Reader, readF32 f32Reader) (Vec4, error) {
	x, err := readF32(r)
	if err != nil {
		return Vec4{}, err
	}
	y, err := readF32(r)
	if err != nil {
		return Vec4{}, err
	}
	z, err := readF32(r)
	if err != nil {
		return Vec4{}, err
	}
	w4, err := readF32(r)
	if err != nil {
		return Vec4{}, err
	}
	return Vec4{X: x, Y: y, Z: z, W: w4}, nil
}

// WriteVec4 writes a Vec4 using the supplied float32 writer.
func WriteVec4(w io.Writer, v Vec4, writeF32 f32Writer) error {
	if err := writeF32(w, v.X); err != nil {
		return err
	}
	if err := writeF32(w, v.Y); err != nil {
		return err
	}
	if err := writeF32(w, v.Z); err != nil {
		return err
	}
	return writeF32(w, v.W)
}
