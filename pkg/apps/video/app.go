// Package video implements the player app around a playback session.
package video

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/user/pocketshow/pkg/player"
	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/shell"
)

// ErrNoVideo is returned by transport methods before a file is loaded.
var ErrNoVideo = errors.New("no video loaded")

// App plays one container at a time. It owns at most one session: the
// previous session is closed before a new file opens, and navigating
// away closes whatever is playing.
type App struct {
	mu      sync.Mutex
	storage ports.Storage
	sink    ports.DisplaySink
	sched   ports.FrameScheduler
	log     ports.Logger

	pending string
	path    string
	session *player.Session
}

// New creates the player app.
func New(storage ports.Storage, sink ports.DisplaySink, sched ports.FrameScheduler, log ports.Logger) *App {
	return &App{
		storage: storage,
		sink:    sink,
		sched:   sched,
		log:     log,
	}
}

func (a *App) ID() string    { return "video" }
func (a *App) Title() string { return "Video Player" }

// SetFilePath records the file to open on the next Create.
func (a *App) SetFilePath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = path
}

// Create opens the pending file. Any previous session is closed first
// so only one source is ever open. Without a pending file the player
// opens idle.
func (a *App) Create() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pending == "" {
		return nil
	}
	next := a.pending
	a.pending = ""

	if a.session != nil {
		a.session.Close()
		a.session = nil
		a.path = ""
	}

	session, err := player.Open(a.storage, next, player.Options{
		Sink:      a.sink,
		Scheduler: a.sched,
		Logger:    a.log,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", next, err)
	}
	a.session = session
	a.path = next
	return nil
}

// Destroy ends playback and releases the source.
func (a *App) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	a.path = ""
	a.pending = ""
}

// Session returns the live session, or nil when idle. Used by hosts
// that poll playback state.
func (a *App) Session() *player.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// Play starts or resumes playback.
func (a *App) Play() error {
	s, err := a.current()
	if err != nil {
		return err
	}
	return s.Play()
}

// Pause suspends playback, keeping the position.
func (a *App) Pause() error {
	s, err := a.current()
	if err != nil {
		return err
	}
	return s.Pause()
}

// Stop ends playback and rewinds.
func (a *App) Stop() error {
	s, err := a.current()
	if err != nil {
		return err
	}
	return s.Stop()
}

// TogglePause flips between playing and paused, the device's single
// play button.
func (a *App) TogglePause() error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if s.State() == player.StatePlaying {
		return s.Pause()
	}
	return s.Play()
}

// Seek jumps to the given frame.
func (a *App) Seek(frame int) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	return s.SeekToFrame(frame)
}

func (a *App) current() (*player.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, ErrNoVideo
	}
	return a.session, nil
}

// Screen shows the source, state, a progress bar and the clock.
func (a *App) Screen() []string {
	a.mu.Lock()
	session := a.session
	source := a.path
	a.mu.Unlock()

	if session == nil {
		return []string{"no video selected"}
	}

	state := session.State()
	p := session.Progress()

	lines := []string{
		fmt.Sprintf("File: %s", path.Base(source)),
		fmt.Sprintf("State: %s", state),
		progressBar(p),
		p.Clock(),
	}
	if state == player.StateError {
		if err := session.Err(); err != nil {
			lines = append(lines, fmt.Sprintf("error: %v", err))
		}
	}
	return lines
}

// progressBar renders a 20-cell bar with the percentage.
func progressBar(p player.Progress) string {
	const cells = 20
	filled := p.Percent * cells / 100
	if filled > cells {
		filled = cells
	}
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", filled),
		strings.Repeat("-", cells-filled),
		p.Percent)
}

var _ shell.App = (*App)(nil)
