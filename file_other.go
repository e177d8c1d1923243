//go:build !unix

package bcres

import (
	"fmt"
	"os"
)

// LoadFile reads path's full contents into memory. Non-unix platforms
// have no portable mmap here, so this just copies the file, mirroring
// the teacher's per-platform fallback split.
func LoadFile(path string) (data []byte, release func() error, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("bcres: read %s: %w", path, err)
	}
	return raw, func() error { return nil }, nil
}
