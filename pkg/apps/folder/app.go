// Package folder implements the storage browser.
package folder

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/shell"
)

// Targets are the handoffs for opening a file in another app. Each
// callback records the path on the target app and switches to it.
type Targets struct {
	OpenText  func(path string) error
	OpenVideo func(path string) error
}

// App browses the card contents. A missing card is a status line, not
// a failure: the browser stays usable and Refresh picks the card up
// once it appears.
type App struct {
	mu      sync.Mutex
	storage ports.Storage
	targets Targets
	log     ports.Logger

	dir     string
	entries []ports.Entry
	status  string
}

// New creates the browser rooted at the storage mount point.
func New(storage ports.Storage, targets Targets, log ports.Logger) *App {
	return &App{
		storage: storage,
		targets: targets,
		log:     log.WithComponent("folder"),
	}
}

func (a *App) ID() string    { return "folder" }
func (a *App) Title() string { return "Files" }

// Create resets to the mount root and reads it.
func (a *App) Create() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dir = ""
	a.refreshLocked()
	return nil
}

// Destroy drops the listing.
func (a *App) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dir = ""
	a.entries = nil
	a.status = ""
}

// Refresh re-reads the current directory.
func (a *App) Refresh() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refreshLocked()
}

func (a *App) refreshLocked() {
	a.entries = nil
	if !a.storage.Ready() {
		a.status = "storage not ready"
		return
	}
	entries, err := a.storage.List(a.dir)
	if err != nil {
		a.log.Warn("list %s: %v", a.displayPathLocked(), err)
		a.status = fmt.Sprintf("cannot read %s", a.displayPathLocked())
		return
	}
	a.entries = entries
	a.status = ""
}

// Enter descends into directory entry n, numbered from 1 as displayed.
func (a *App) Enter(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, err := a.entryLocked(n)
	if err != nil {
		return err
	}
	if !e.Dir {
		return fmt.Errorf("not a directory: %s", e.Name)
	}
	a.dir = path.Join(a.dir, e.Name)
	a.refreshLocked()
	return nil
}

// Up ascends one directory, stopping at the mount root.
func (a *App) Up() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dir == "" {
		return
	}
	a.dir = path.Dir(a.dir)
	if a.dir == "." {
		a.dir = ""
	}
	a.refreshLocked()
}

// Open dispatches file entry n by extension: containers go to the
// video player, text-like files to the text viewer. The handoff runs
// unlocked because switching apps destroys this one.
func (a *App) Open(n int) error {
	a.mu.Lock()
	e, err := a.entryLocked(n)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	if e.Dir {
		a.mu.Unlock()
		return fmt.Errorf("not a file: %s", e.Name)
	}
	full := path.Join(a.dir, e.Name)

	var open func(string) error
	switch {
	case IsContainerFile(e.Name):
		open = a.targets.OpenVideo
	case IsTextFile(e.Name):
		open = a.targets.OpenText
	default:
		a.status = fmt.Sprintf("unsupported file: %s", e.Name)
		a.mu.Unlock()
		return fmt.Errorf("unsupported file: %s", e.Name)
	}
	a.mu.Unlock()

	if open == nil {
		return fmt.Errorf("no app wired for %s", e.Name)
	}
	a.log.Info("opening %s", full)
	return open(full)
}

// Screen shows the path, card space, the listing and any status line.
func (a *App) Screen() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	lines := []string{a.displayPathLocked(), a.cardInfoLocked(), ""}
	for i, e := range a.entries {
		if e.Dir {
			lines = append(lines, fmt.Sprintf("  %d. [DIR] %s", i+1, e.Name))
		} else {
			lines = append(lines, fmt.Sprintf("  %d. %s  %s", i+1, e.Name, formatSize(e.Size)))
		}
	}
	if len(a.entries) == 0 && a.status == "" {
		lines = append(lines, "  (empty)")
	}
	if a.status != "" {
		lines = append(lines, "", a.status)
	}
	return lines
}

func (a *App) entryLocked(n int) (ports.Entry, error) {
	if n < 1 || n > len(a.entries) {
		return ports.Entry{}, fmt.Errorf("no entry %d", n)
	}
	return a.entries[n-1], nil
}

func (a *App) displayPathLocked() string {
	return "/" + a.dir
}

func (a *App) cardInfoLocked() string {
	if !a.storage.Ready() {
		return "card: not ready"
	}
	info, err := a.storage.Info()
	if err != nil {
		return "card: ready"
	}
	return fmt.Sprintf("card: %s free of %s", formatSize(int64(info.FreeBytes)), formatSize(int64(info.TotalBytes)))
}

// IsContainerFile reports whether name looks like a playable recording.
func IsContainerFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".mjpeg", ".mjpg":
		return true
	}
	return false
}

// IsTextFile reports whether name looks viewable as text.
func IsTextFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".txt", ".log", ".cfg", ".conf", ".ini", ".json", ".xml", ".csv":
		return true
	}
	return false
}

// formatSize formats a byte count the way the device screen does.
func formatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
	}
}

var _ shell.App = (*App)(nil)
