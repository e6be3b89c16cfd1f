// Package ports defines interfaces for external dependencies.
package ports

import (
	"errors"
	"io"
)

// Sentinel errors reported by Storage implementations.
var (
	// ErrNotReady indicates the storage medium is not mounted or usable.
	ErrNotReady = errors.New("storage not ready")

	// ErrNotFound indicates the requested path does not exist.
	ErrNotFound = errors.New("file not found")
)

// File is an open source file: readable, seekable, closable.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WritableFile is an open destination file.
type WritableFile interface {
	io.Writer
	io.Closer
}

// Entry describes one item of a directory listing.
type Entry struct {
	Name string
	Dir  bool
	Size int64
}

// Info reports the capacity of the storage medium.
type Info struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// Storage abstracts the removable medium holding media sources.
// Paths are slash separated and relative to the medium root.
type Storage interface {
	// Ready reports whether the medium is mounted and usable.
	Ready() bool

	// Open opens an existing file for reading. A missing path returns an
	// error wrapping ErrNotFound; an unavailable medium returns ErrNotReady.
	Open(path string) (File, error)

	// Create creates or truncates a file for writing, making parent
	// directories as needed.
	Create(path string) (WritableFile, error)

	// List returns the entries of a directory, directories first and
	// names sorted within each group.
	List(dir string) ([]Entry, error)

	// Stat describes a single path.
	Stat(path string) (Entry, error)

	// Remove deletes a file.
	Remove(path string) error

	// Info reports total and free capacity of the medium.
	Info() (Info, error)
}
