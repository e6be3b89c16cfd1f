package folder

import (
	"strings"
	"testing"

	"github.com/user/pocketshow/pkg/adapters/logger"
	"github.com/user/pocketshow/pkg/mocks"
)

func seededStorage() *mocks.Storage {
	storage := mocks.NewStorage()
	storage.Put("clips/trip.mjpeg", make([]byte, 2048))
	storage.Put("clips/notes.txt", []byte("hello"))
	storage.Put("readme.txt", []byte("root file"))
	storage.Put("firmware.bin", make([]byte, 100))
	return storage
}

func createApp(t *testing.T, storage *mocks.Storage, targets Targets) *App {
	t.Helper()
	app := New(storage, targets, logger.NewNoop())
	if err := app.Create(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return app
}

func TestApp_ListsRootDirectoriesFirst(t *testing.T) {
	app := createApp(t, seededStorage(), Targets{})

	screen := strings.Join(app.Screen(), "\n")
	if !strings.Contains(screen, "1. [DIR] clips") {
		t.Fatalf("expected clips dir first, got %q", screen)
	}
	if !strings.Contains(screen, "firmware.bin  100 B") {
		t.Fatalf("expected file with size, got %q", screen)
	}
	if !strings.Contains(screen, "card: 4.0 GB free of 8.0 GB") {
		t.Fatalf("expected card space line, got %q", screen)
	}
}

func TestApp_NotReadyShowsStatus(t *testing.T) {
	storage := seededStorage()
	storage.SetReady(false)
	app := createApp(t, storage, Targets{})

	screen := strings.Join(app.Screen(), "\n")
	if !strings.Contains(screen, "storage not ready") {
		t.Fatalf("expected not-ready status, got %q", screen)
	}

	// Card inserted later: refresh picks it up
	storage.SetReady(true)
	app.Refresh()
	screen = strings.Join(app.Screen(), "\n")
	if strings.Contains(screen, "storage not ready") {
		t.Fatalf("expected status cleared after refresh, got %q", screen)
	}
	if !strings.Contains(screen, "[DIR] clips") {
		t.Fatalf("expected listing after refresh, got %q", screen)
	}
}

func TestApp_EnterAndUp(t *testing.T) {
	app := createApp(t, seededStorage(), Targets{})

	if err := app.Enter(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	screen := strings.Join(app.Screen(), "\n")
	if !strings.Contains(screen, "/clips") {
		t.Fatalf("expected path line /clips, got %q", screen)
	}
	if !strings.Contains(screen, "trip.mjpeg") {
		t.Fatalf("expected directory contents, got %q", screen)
	}

	app.Up()
	screen = strings.Join(app.Screen(), "\n")
	if !strings.Contains(screen, "[DIR] clips") {
		t.Fatalf("expected root listing after up, got %q", screen)
	}

	// Up at the root stays at the root
	app.Up()
	if got := app.Screen()[0]; got != "/" {
		t.Fatalf("expected root path, got %q", got)
	}
}

func TestApp_EnterRejectsFiles(t *testing.T) {
	app := createApp(t, seededStorage(), Targets{})

	// Entry 2 is firmware.bin (first file after the clips dir)
	if err := app.Enter(2); err == nil {
		t.Fatal("expected error entering a file")
	}
	if err := app.Enter(99); err == nil {
		t.Fatal("expected error for out-of-range entry")
	}
}

func TestApp_OpenDispatchesByExtension(t *testing.T) {
	var gotVideo, gotText string
	targets := Targets{
		OpenText:  func(path string) error { gotText = path; return nil },
		OpenVideo: func(path string) error { gotVideo = path; return nil },
	}
	app := createApp(t, seededStorage(), targets)

	if err := app.Enter(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// clips/: 1. notes.txt, 2. trip.mjpeg
	if err := app.Open(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotVideo != "clips/trip.mjpeg" {
		t.Fatalf("expected video handoff with full path, got %q", gotVideo)
	}

	if err := app.Open(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotText != "clips/notes.txt" {
		t.Fatalf("expected text handoff with full path, got %q", gotText)
	}
}

func TestApp_OpenUnsupportedFile(t *testing.T) {
	app := createApp(t, seededStorage(), Targets{})

	// Root: 1. [DIR] clips, 2. firmware.bin, 3. readme.txt
	if err := app.Open(2); err == nil {
		t.Fatal("expected error for unsupported file")
	}
	screen := strings.Join(app.Screen(), "\n")
	if !strings.Contains(screen, "unsupported file: firmware.bin") {
		t.Fatalf("expected unsupported status on screen, got %q", screen)
	}

	if err := app.Open(1); err == nil {
		t.Fatal("expected error opening a directory")
	}
}

func TestIsContainerFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"trip.mjpeg", true},
		{"TRIP.MJPEG", true},
		{"clip.mjpg", true},
		{"clip.Mjpg", true},
		{"movie.mp4", false},
		{"mjpeg", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := IsContainerFile(tt.name); got != tt.want {
			t.Errorf("IsContainerFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsTextFile(t *testing.T) {
	for _, name := range []string{"a.txt", "a.log", "a.cfg", "a.conf", "a.ini", "a.json", "a.xml", "a.csv", "A.TXT"} {
		if !IsTextFile(name) {
			t.Errorf("expected %q to be a text file", name)
		}
	}
	for _, name := range []string{"a.bin", "a.mjpeg", "noext", "a.md"} {
		if IsTextFile(name) {
			t.Errorf("expected %q not to be a text file", name)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{2 * 1024 * 1024, "2.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.bytes); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
