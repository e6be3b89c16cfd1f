//go:build linux || darwin

package dirstorage

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/user/pocketshow/pkg/ports"
)

// Info reports the capacity of the file system holding the root.
func (s *Storage) Info() (ports.Info, error) {
	if !s.Ready() {
		return ports.Info{}, ports.ErrNotReady
	}
	var st unix.Statfs_t
	if err := unix.Statfs(s.root, &st); err != nil {
		return ports.Info{}, fmt.Errorf("statfs %s: %w", s.root, err)
	}
	bs := uint64(st.Bsize)
	return ports.Info{
		TotalBytes: uint64(st.Blocks) * bs,
		FreeBytes:  uint64(st.Bavail) * bs,
	}, nil
}
