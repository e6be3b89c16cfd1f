// Package textview implements the text file viewer.
package textview

import (
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/shell"
)

// MaxFileSize caps how much of a file is loaded. Larger files are cut
// at the cap and marked truncated on screen.
const MaxFileSize = 32 * 1024

// App shows one text file at a time.
type App struct {
	mu      sync.Mutex
	storage ports.Storage
	log     ports.Logger

	pending   string
	path      string
	size      int64
	lines     []string
	truncated bool
}

// New creates the viewer.
func New(storage ports.Storage, log ports.Logger) *App {
	return &App{
		storage: storage,
		log:     log.WithComponent("textview"),
	}
}

func (a *App) ID() string    { return "textview" }
func (a *App) Title() string { return "Text Viewer" }

// SetFilePath records the file to load on the next Create.
func (a *App) SetFilePath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = path
}

// Create loads the pending file, or reloads the previous one when no
// new path was set. With no file at all the viewer opens empty.
func (a *App) Create() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending != "" {
		a.path = a.pending
		a.pending = ""
	}
	if a.path == "" {
		return nil
	}
	return a.loadLocked()
}

// Destroy drops the loaded content. The path survives so returning to
// the viewer shows the same file again.
func (a *App) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = nil
	a.truncated = false
	a.size = 0
}

func (a *App) loadLocked() error {
	f, err := a.storage.Open(a.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", a.path, err)
	}

	a.truncated = len(data) > MaxFileSize
	if a.truncated {
		data = data[:MaxFileSize]
	}
	a.size = int64(len(data))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	a.lines = strings.Split(text, "\n")
	a.log.Debug("loaded %s: %d bytes", a.path, a.size)
	return nil
}

// Path returns the file currently shown, or an empty string.
func (a *App) Path() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.path
}

// Truncated reports whether the file was cut at the cap.
func (a *App) Truncated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.truncated
}

// Screen shows the file name, its loaded size and the content.
func (a *App) Screen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.path == "" {
		return []string{"no file selected"}
	}

	lines := []string{fmt.Sprintf("File: %s (%s)", path.Base(a.path), formatSize(a.size)), ""}
	lines = append(lines, a.lines...)
	if a.truncated {
		lines = append(lines, "", fmt.Sprintf("--- truncated at %d KB ---", MaxFileSize/1024))
	}
	return lines
}

func formatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

var _ shell.App = (*App)(nil)
