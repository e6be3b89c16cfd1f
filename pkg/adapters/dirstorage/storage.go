// Package dirstorage implements Storage over a host directory standing
// in for the device's removable card.
package dirstorage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/pocketshow/pkg/ports"
)

// Storage serves files under a root directory. Storage paths are slash
// separated relative to the root and may not escape it.
type Storage struct {
	root string
}

// New creates storage rooted at dir. The directory does not have to
// exist; Ready reports whether it currently does.
func New(dir string) *Storage {
	return &Storage{root: filepath.Clean(dir)}
}

// Root returns the host directory backing the storage.
func (s *Storage) Root() string {
	return s.root
}

// Ready reports whether the root exists and is a directory.
func (s *Storage) Ready() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// resolve maps a storage path to a host path jailed under the root.
func (s *Storage) resolve(path string) (string, error) {
	clean := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if clean != s.root && !strings.HasPrefix(clean, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes storage root: %s", path)
	}
	return clean, nil
}

// Open opens an existing file for reading.
func (s *Storage) Open(path string) (ports.File, error) {
	if !s.Ready() {
		return nil, ports.ErrNotReady
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Create creates or truncates a file for writing, making parent
// directories as needed.
func (s *Storage) Create(path string) (ports.WritableFile, error) {
	if !s.Ready() {
		return nil, ports.ErrNotReady
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(full); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// List returns the entries of a directory, directories first and names
// sorted within each group. Dotfiles are host noise and skipped.
func (s *Storage) List(dir string) ([]ports.Entry, error) {
	if !s.Ready() {
		return nil, ports.ErrNotReady
	}
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	items, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]ports.Entry, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item.Name(), ".") {
			continue
		}
		e := ports.Entry{Name: item.Name(), Dir: item.IsDir()}
		if !e.Dir {
			if info, err := item.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Stat describes a single path.
func (s *Storage) Stat(path string) (ports.Entry, error) {
	if !s.Ready() {
		return ports.Entry{}, ports.ErrNotReady
	}
	full, err := s.resolve(path)
	if err != nil {
		return ports.Entry{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ports.Entry{}, fmt.Errorf("%w: %s", ports.ErrNotFound, path)
		}
		return ports.Entry{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return ports.Entry{Name: info.Name(), Dir: info.IsDir(), Size: info.Size()}, nil
}

// Remove deletes a file.
func (s *Storage) Remove(path string) error {
	if !s.Ready() {
		return ports.ErrNotReady
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ports.ErrNotFound, path)
		}
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

var _ ports.Storage = (*Storage)(nil)
