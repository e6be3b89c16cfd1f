// Package mocks provides hand-written mock implementations of the port
// interfaces for tests.
package mocks

import (
	"bytes"

	"github.com/user/pocketshow/pkg/ports"
)

// File is an in-memory implementation of ports.File.
type File struct {
	r *bytes.Reader

	// ReadErr, when set, is returned by every Read call.
	ReadErr error

	// CloseCalls counts Close invocations.
	CloseCalls int
}

// NewFile creates a File holding data.
func NewFile(data []byte) *File {
	return &File{r: bytes.NewReader(data)}
}

func (f *File) Read(p []byte) (int, error) {
	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	return f.r.Read(p)
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.r.Seek(offset, whence)
}

func (f *File) Close() error {
	f.CloseCalls++
	return nil
}

var _ ports.File = (*File)(nil)

// WriteFile is an in-memory implementation of ports.WritableFile. The
// owning Storage publishes its contents on Close.
type WriteFile struct {
	buf    bytes.Buffer
	onDone func([]byte)
}

func (f *WriteFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *WriteFile) Close() error {
	if f.onDone != nil {
		f.onDone(f.buf.Bytes())
		f.onDone = nil
	}
	return nil
}

var _ ports.WritableFile = (*WriteFile)(nil)
