//go:build !linux && !darwin

package dirstorage

import "github.com/user/pocketshow/pkg/ports"

// Info is not available on this platform; capacity reads as zero.
func (s *Storage) Info() (ports.Info, error) {
	if !s.Ready() {
		return ports.Info{}, ports.ErrNotReady
	}
	return ports.Info{}, nil
}
