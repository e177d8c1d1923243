package bcres

import (
	"io"

	"github.com/Darxoon/ctr-bcres/geom"
)

// Thin bindings from package geom's reader/writer-func signature to this
// package's own readF32/writeF32, so call sites read as readVec3(r)
// rather than threading the primitive funcs through every call.

func readVec2(r io.Reader) (geom.Vec2, error) { return geom.ReadVec2(r, readF32) }
func writeVec2(w io.Writer, v geom.Vec2) error { return geom.WriteVec2(w, v, writeF32) }

func readVec3(r io.Reader) (geom.Vec3, error) { return geom.ReadVec3(r, readF32) }
func writeVec3(w io.Writer, v geom.Vec3) error { return geom.WriteVec3(w, v, writeF32) }

func readVec4(r io.Reader) (geom.Vec4, error) { return geom.ReadVec4(r, readF32) }
func writeVec4(w io.Writer, v geom.Vec4) error { return geom.WriteVec4(w, v, writeF32) }

func readMat3(r io.Reader) (geom.Mat3, error) { return geom.ReadMat3(r, readF32) }
func writeMat3(w io.Writer, m geom.Mat3) error { return geom.WriteMat3(w, m, writeF32) }

func readMat3x4(r io.Reader) (geom.Mat3x4, error) { return geom.ReadMat3x4(r, readF32) }
func writeMat3x4(w io.Writer, m geom.Mat3x4) error { return geom.WriteMat3x4(w, m, writeF32) }
