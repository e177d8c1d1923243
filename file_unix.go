//go:build unix

package bcres

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// LoadFile materializes path's full contents in memory for Parse, per
// spec.md §5's synchronous, whole-file model. On unix this memory-maps
// the file read-only instead of copying it; release must be called
// once the caller is done with the returned bytes.
func LoadFile(path string) (data []byte, release func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("bcres: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("bcres: stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		slog.Debug("bcres: mmap failed, falling back to ReadFile", "path", path, "error", err)
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, nil, fmt.Errorf("bcres: read %s: %w", path, readErr)
		}
		return raw, func() error { return nil }, nil
	}

	return mapped, func() error { return unix.Munmap(mapped) }, nil
}
