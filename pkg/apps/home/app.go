// Package home implements the launcher menu.
package home

import (
	"fmt"

	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/shell"
)

// App lists the other apps and launches them.
type App struct {
	entries []shell.Descriptor
	open    func(id string) error
	log     ports.Logger
}

// New creates the launcher. The open callback performs the actual app
// switch; entries appear in the menu in the given order.
func New(log ports.Logger, open func(id string) error, entries ...shell.Descriptor) *App {
	return &App{
		entries: entries,
		open:    open,
		log:     log.WithComponent("home"),
	}
}

func (a *App) ID() string    { return "home" }
func (a *App) Title() string { return "Home" }

// Create has nothing to build; the menu is static.
func (a *App) Create() error { return nil }

// Destroy has nothing to release.
func (a *App) Destroy() {}

// Screen lists the menu, numbered as Open expects.
func (a *App) Screen() []string {
	lines := []string{"Select an app:", ""}
	for i, e := range a.entries {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, e.Title))
	}
	return lines
}

// Entries returns the menu in display order.
func (a *App) Entries() []shell.Descriptor {
	out := make([]shell.Descriptor, len(a.entries))
	copy(out, a.entries)
	return out
}

// Open launches menu entry n, numbered from 1 as displayed.
func (a *App) Open(n int) error {
	if n < 1 || n > len(a.entries) {
		return fmt.Errorf("no menu entry %d", n)
	}
	entry := a.entries[n-1]
	a.log.Debug("launching %s", entry.ID)
	return a.open(entry.ID)
}

var _ shell.App = (*App)(nil)
