package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/user/pocketshow/pkg/ports"
)

// Manager owns the app registry and the active app. The first
// registered app is the home app.
type Manager struct {
	mu     sync.Mutex
	apps   []App
	index  map[string]App
	active App
	log    ports.Logger
}

// NewManager creates a manager over a fixed registry. Registration
// order is preserved; IDs must be unique.
func NewManager(log ports.Logger, apps ...App) (*Manager, error) {
	if len(apps) == 0 {
		return nil, fmt.Errorf("no apps registered")
	}
	index := make(map[string]App, len(apps))
	for _, app := range apps {
		if _, dup := index[app.ID()]; dup {
			return nil, fmt.Errorf("duplicate app id: %s", app.ID())
		}
		index[app.ID()] = app
	}
	return &Manager{
		apps:  apps,
		index: index,
		log:   log.WithComponent("shell"),
	}, nil
}

// Home activates the first registered app.
func (m *Manager) Home() error {
	return m.SwitchTo(m.apps[0].ID())
}

// SwitchTo activates the app with the given id. The target is created
// before the previous app is destroyed, so a failed create leaves the
// previous app on screen. Switching to the active app is a no-op.
func (m *Manager) SwitchTo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.index[id]
	if !ok {
		return fmt.Errorf("unknown app: %s", id)
	}
	if m.active == target {
		m.log.Debug("already on %s", id)
		return nil
	}

	if err := target.Create(); err != nil {
		target.Destroy()
		return fmt.Errorf("create %s: %w", id, err)
	}

	prev := m.active
	m.active = target
	if prev != nil {
		prev.Destroy()
	}

	m.log.Info("switched to %s", id)
	return nil
}

// ActiveID returns the id of the active app, or an empty string before
// the first switch.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return ""
	}
	return m.active.ID()
}

// Apps lists the registry in registration order.
func (m *Manager) Apps() []Descriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]Descriptor, len(m.apps))
	for i, app := range m.apps {
		list[i] = Descriptor{ID: app.ID(), Title: app.Title()}
	}
	return list
}

// Render writes the active app's title and screen to w.
func (m *Manager) Render(w io.Writer) {
	m.mu.Lock()
	active := m.active
	m.mu.Unlock()
	if active == nil {
		return
	}

	fmt.Fprintf(w, "=== %s ===\n", active.Title())
	for _, line := range active.Screen() {
		fmt.Fprintln(w, line)
	}
}

// Close destroys the active app.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Destroy()
		m.active = nil
	}
}
