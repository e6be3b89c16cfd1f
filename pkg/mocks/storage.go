package mocks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/user/pocketshow/pkg/ports"
)

// Storage is a mock implementation of ports.Storage backed by an
// in-memory path map. Paths are slash separated, no leading slash.
type Storage struct {
	mu    sync.RWMutex
	ready bool
	files map[string][]byte

	// Function overrides for error injection
	OpenFunc   func(path string) (ports.File, error)
	CreateFunc func(path string) (ports.WritableFile, error)

	// Recorded calls for verification
	OpenCalls   []string
	CreateCalls []string
	RemoveCalls []string

	// LastFile is the File handed out by the most recent Open.
	LastFile *File
}

// NewStorage creates a ready mock storage.
func NewStorage() *Storage {
	return &Storage{ready: true, files: make(map[string][]byte)}
}

// SetReady flips the medium availability.
func (m *Storage) SetReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = ready
}

// Put stores a file.
func (m *Storage) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[normalize(path)] = append([]byte(nil), data...)
}

// Data returns the stored contents of path.
func (m *Storage) Data(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[normalize(path)]
	return data, ok
}

func (m *Storage) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

func (m *Storage) Open(path string) (ports.File, error) {
	m.mu.Lock()
	m.OpenCalls = append(m.OpenCalls, path)
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return nil, ports.ErrNotReady
	}
	data, ok := m.files[normalize(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, path)
	}
	f := NewFile(data)
	m.LastFile = f
	return f, nil
}

func (m *Storage) Create(path string) (ports.WritableFile, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, path)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(path)
	}
	if !m.Ready() {
		return nil, ports.ErrNotReady
	}
	name := normalize(path)
	return &WriteFile{onDone: func(data []byte) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.files[name] = append([]byte(nil), data...)
	}}, nil
}

func (m *Storage) List(dir string) ([]ports.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ready {
		return nil, ports.ErrNotReady
	}

	prefix := normalize(dir)
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]ports.Entry)
	for path, data := range m.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := path[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name := rest[:i]
			seen[name] = ports.Entry{Name: name, Dir: true}
		} else {
			seen[rest] = ports.Entry{Name: rest, Size: int64(len(data))}
		}
	}

	entries := make([]ports.Entry, 0, len(seen))
	for _, e := range seen {
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

func (m *Storage) Stat(path string) (ports.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ready {
		return ports.Entry{}, ports.ErrNotReady
	}
	name := normalize(path)
	if data, ok := m.files[name]; ok {
		base := name
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			base = name[i+1:]
		}
		return ports.Entry{Name: base, Size: int64(len(data))}, nil
	}
	prefix := name + "/"
	for path := range m.files {
		if strings.HasPrefix(path, prefix) {
			return ports.Entry{Name: name, Dir: true}, nil
		}
	}
	return ports.Entry{}, fmt.Errorf("%w: %s", ports.ErrNotFound, path)
}

func (m *Storage) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, path)
	name := normalize(path)
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("%w: %s", ports.ErrNotFound, path)
	}
	delete(m.files, name)
	return nil
}

func (m *Storage) Info() (ports.Info, error) {
	if !m.Ready() {
		return ports.Info{}, ports.ErrNotReady
	}
	return ports.Info{TotalBytes: 8 << 30, FreeBytes: 4 << 30}, nil
}

func normalize(path string) string {
	return strings.Trim(path, "/")
}

var _ ports.Storage = (*Storage)(nil)
