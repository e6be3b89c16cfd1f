// Package integration contains integration tests for the playback engine.
package integration

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/pocketshow/pkg/adapters/dirstorage"
	"github.com/user/pocketshow/pkg/adapters/ggrender"
	"github.com/user/pocketshow/pkg/adapters/logger"
	"github.com/user/pocketshow/pkg/adapters/nullsink"
	"github.com/user/pocketshow/pkg/adapters/pngsink"
	"github.com/user/pocketshow/pkg/adapters/ticker"
	"github.com/user/pocketshow/pkg/apps/folder"
	"github.com/user/pocketshow/pkg/apps/home"
	"github.com/user/pocketshow/pkg/apps/textview"
	"github.com/user/pocketshow/pkg/apps/video"
	"github.com/user/pocketshow/pkg/mjpeg"
	"github.com/user/pocketshow/pkg/player"
	"github.com/user/pocketshow/pkg/report"
	"github.com/user/pocketshow/pkg/shell"
	"github.com/user/pocketshow/pkg/testpattern"
)

// TestPlaybackRunsToEnd plays a generated clip against the real wall
// clock scheduler and verifies every frame reaches the sink.
func TestPlaybackRunsToEnd(t *testing.T) {
	storage := dirstorage.New(t.TempDir())
	generateClip(t, storage, "clips/run.mjpeg", 12, 30)

	sink := nullsink.New()
	session, err := player.Open(storage, "clips/run.mjpeg", player.Options{
		Sink:      sink,
		Scheduler: ticker.New(),
		Logger:    logger.NewNoop(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer session.Close()

	if err := session.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitState(t, session, player.StateStopped, 5*time.Second)

	if got := sink.Presented(); got != 12 {
		t.Errorf("expected 12 presented frames, got %d", got)
	}
	if p := session.Progress(); p.Frame != 0 {
		t.Errorf("expected cursor rewound to 0, got %d", p.Frame)
	}
}

// TestPauseFreezesCursor pauses mid-stream and verifies the cursor
// holds its position until playback resumes.
func TestPauseFreezesCursor(t *testing.T) {
	storage := dirstorage.New(t.TempDir())
	generateClip(t, storage, "clips/pause.mjpeg", 60, 30)

	sink := nullsink.New()
	session, err := player.Open(storage, "clips/pause.mjpeg", player.Options{
		Sink:      sink,
		Scheduler: ticker.New(),
		Logger:    logger.NewNoop(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer session.Close()

	if err := session.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Let a few frames through before pausing.
	deadline := time.Now().Add(3 * time.Second)
	for session.Progress().Frame < 5 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for playback to advance")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err := session.Pause(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := session.Progress().Frame
	time.Sleep(150 * time.Millisecond)
	if got := session.Progress().Frame; got != frame {
		t.Errorf("cursor moved while paused: %d -> %d", frame, got)
	}
	if got := session.State(); got != player.StatePaused {
		t.Errorf("expected paused state, got %v", got)
	}

	// Resume and run to the end.
	if err := session.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitState(t, session, player.StateStopped, 5*time.Second)

	if got := sink.Presented(); got != 60 {
		t.Errorf("expected 60 presented frames, got %d", got)
	}
}

// TestSeekSkipsAhead starts playback from a later frame and verifies
// only the remaining frames are delivered.
func TestSeekSkipsAhead(t *testing.T) {
	storage := dirstorage.New(t.TempDir())
	generateClip(t, storage, "clips/seek.mjpeg", 40, 20)

	sink := nullsink.New()
	session, err := player.Open(storage, "clips/seek.mjpeg", player.Options{
		Sink:      sink,
		Scheduler: ticker.New(),
		Logger:    logger.NewNoop(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer session.Close()

	if err := session.SeekToFrame(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := session.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitState(t, session, player.StateStopped, 5*time.Second)

	if got := sink.Presented(); got != 10 {
		t.Errorf("expected 10 presented frames, got %d", got)
	}
}

// TestPngSinkDumpsFrames plays through the png sink and checks the
// numbered files land on the card with the stream dimensions.
func TestPngSinkDumpsFrames(t *testing.T) {
	root := t.TempDir()
	storage := dirstorage.New(root)
	generateClip(t, storage, "clips/dump.mjpeg", 6, 20)

	sink := pngsink.New("frames", storage, ggrender.New(), nil, logger.NewNoop())
	session, err := player.Open(storage, "clips/dump.mjpeg", player.Options{
		Sink:      sink,
		Scheduler: ticker.New(),
		Logger:    logger.NewNoop(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer session.Close()

	if err := session.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitState(t, session, player.StateStopped, 5*time.Second)

	entries, err := storage.List("frames")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("expected 6 dumped frames, got %d", len(entries))
	}
	if entries[0].Name != "frame-0000.png" {
		t.Errorf("unexpected first frame name: %s", entries[0].Name)
	}

	f, err := os.Open(filepath.Join(root, "frames", "frame-0000.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode dumped frame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 64 {
		t.Errorf("expected 48x64 frame, got %dx%d", b.Dx(), b.Dy())
	}
}

// TestScanMatchesGeneratedClip scans a freshly generated container and
// expects a clean report.
func TestScanMatchesGeneratedClip(t *testing.T) {
	storage := dirstorage.New(t.TempDir())
	generateClip(t, storage, "clips/scan.mjpeg", 15, 10)

	f, err := storage.Open("clips/scan.mjpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	reader, err := mjpeg.OpenReader(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rep, err := report.Scan(reader, "clips/scan.mjpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rep.Complete() {
		t.Error("expected a complete stream")
	}
	if rep.FramesFound != 15 {
		t.Errorf("expected 15 frames, got %d", rep.FramesFound)
	}
	if rep.Header.FrameRate != 10 {
		t.Errorf("expected 10 fps, got %d", rep.Header.FrameRate)
	}
}

// TestShellPlaysClipFromFolder walks the whole device flow: home menu
// to file browser to video player to playback end.
func TestShellPlaysClipFromFolder(t *testing.T) {
	storage := dirstorage.New(t.TempDir())
	generateClip(t, storage, "clips/trip.mjpeg", 8, 20)

	log := logger.NewNoop()
	sink := nullsink.New()

	var m *shell.Manager
	textApp := textview.New(storage, log)
	videoApp := video.New(storage, sink, ticker.New(), log)
	folderApp := folder.New(storage, folder.Targets{
		OpenText: func(path string) error {
			textApp.SetFilePath(path)
			return m.SwitchTo(textApp.ID())
		},
		OpenVideo: func(path string) error {
			videoApp.SetFilePath(path)
			return m.SwitchTo(videoApp.ID())
		},
	}, log)
	homeApp := home.New(log, func(id string) error { return m.SwitchTo(id) },
		shell.Descriptor{ID: folderApp.ID(), Title: folderApp.Title()},
	)

	m, err := shell.NewManager(log, homeApp, folderApp, textApp, videoApp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	if err := m.Home(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := homeApp.Open(1); err != nil {
		t.Fatalf("open file browser: %v", err)
	}
	if err := folderApp.Enter(1); err != nil {
		t.Fatalf("enter clips: %v", err)
	}
	if err := folderApp.Open(1); err != nil {
		t.Fatalf("open clip: %v", err)
	}
	if got := m.ActiveID(); got != videoApp.ID() {
		t.Fatalf("expected video app active, got %s", got)
	}

	if err := videoApp.Play(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitState(t, videoApp.Session(), player.StateStopped, 5*time.Second)

	if got := sink.Presented(); got != 8 {
		t.Errorf("expected 8 presented frames, got %d", got)
	}

	// Leaving the player tears the session down.
	if err := m.Home(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if videoApp.Session() != nil {
		t.Error("expected session closed after leaving the player")
	}
}

// generateClip writes a small test pattern container to storage.
func generateClip(t *testing.T, storage *dirstorage.Storage, path string, frames, fps uint32) {
	t.Helper()

	f, err := storage.Create(path)
	if err != nil {
		t.Fatalf("create clip: %v", err)
	}
	_, err = testpattern.Generate(f, testpattern.Options{
		Frames: frames,
		Rate:   fps,
		Width:  48,
		Height: 64,
	})
	if err != nil {
		f.Close()
		t.Fatalf("generate clip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close clip: %v", err)
	}
}

// waitState polls the session until it reaches the wanted state.
func waitState(t *testing.T, session *player.Session, want player.State, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for session.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %v, still %v", want, session.State())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
