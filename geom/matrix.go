package geom

import "io"

// Mat3 is a 3x3 float32 matrix, M[row][col]. On disk it is stored
// column by column: for each of the 3 columns, its 3 row entries are
// written consecutively (see ReadMat3/WriteMat3).
type Mat3 struct {
	M [3][3]float32
}

// Mat3x4 is a 3-row, 4-column float32 matrix, M[row][col]. Used for the
// affine local/world/inverse-world transforms on Transform and Bone:
// the upper 3x3 is rotation+scale, the fourth column is translation.
// Stored column by column like Mat3.
type Mat3x4 struct {
	M [3][4]float32
}

// ReadMat3 reads a Mat3, column-major on disk.
func ReadMat3(r io.Reader, readF32 f32Reader) (Mat3, error) {
	var m Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			v, err := readF32(r)
			if err != nil {
				return Mat3{}, err
			}
			m.M[row][col] = v
		}
	}
	return m, nil
}

// WriteMat3 writes a Mat3, column-major on disk.
func WriteMat3(w io.Writer, m Mat3, writeF32 f32Writer) error {
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			if err := writeF32(w, m.M[row][col]); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadMat3x4 reads a Mat3x4, column-major on disk (4 columns of 3 rows
// each).
func ReadMat3x4(r io.Reader, readF32 f32Reader) (Mat3x4, error) {
	var m Mat3x4
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			v, err := readF32(r)
			if err != nil {
				return Mat3x4{}, err
			}
			m.M[row][col] = v
		}
	}
	return m, nil
}

// WriteMat3x4 writes a Mat3x4, column-major on disk.
func WriteMat3x4(w io.Writer, m Mat3x4, writeF32 f32Writer) error {
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			if err := writeF32(w, m.M[row][col]); err != nil {
				return err
			}
		}
	}
	return nil
}
