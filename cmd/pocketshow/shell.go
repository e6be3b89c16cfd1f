package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pocketshow/pkg/adapters/dirstorage"
	"github.com/user/pocketshow/pkg/adapters/ticker"
	"github.com/user/pocketshow/pkg/apps/folder"
	"github.com/user/pocketshow/pkg/apps/home"
	"github.com/user/pocketshow/pkg/apps/textview"
	"github.com/user/pocketshow/pkg/apps/video"
	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/shell"
)

// shellCommand defines the shell subcommand.
func shellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  l10n.T("Drive the app shell interactively"),
		Action: runShell,
	}
}

// deck bundles the manager with the concrete apps the shell commands
// address directly.
type deck struct {
	m      *shell.Manager
	home   *home.App
	folder *folder.App
	video  *video.App
}

func runShell(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	log := buildLogger(cfg)
	storage := dirstorage.New(cfg.Root)

	sink, err := buildSink(cfg, storage, log)
	if err != nil {
		return err
	}

	// Apps hand off through the manager, so the closures capture the
	// variable before the manager exists.
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
		shell.Descriptor{ID: videoApp.ID(), Title: videoApp.Title()},
		shell.Descriptor{ID: textApp.ID(), Title: textApp.Title()},
	)

	m, err = shell.NewManager(log, homeApp, folderApp, textApp, videoApp)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Home(); err != nil {
		return err
	}

	d := &deck{m: m, home: homeApp, folder: folderApp, video: videoApp}
	return d.loop(log)
}

// loop reads commands until quit, EOF or a signal.
func (d *deck) loop(log ports.Logger) error {
	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	d.m.Render(os.Stdout)
	fmt.Println(l10n.T(`Type "help" for commands.`))

	for {
		fmt.Print("pocketshow> ")
		select {
		case <-sigCh:
			fmt.Println()
			log.Warn(l10n.T("Interrupted, shutting down..."))
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return nil
			}
			done, err := d.dispatch(line)
			if done {
				return nil
			}
			if err != nil {
				fmt.Println(l10n.F("error: %v", err))
			}
			d.m.Render(os.Stdout)
		}
	}
}

func (d *deck) dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "h":
		printHelp()
		return false, nil
	case "home":
		return false, d.m.Home()
	case "apps":
		for i, a := range d.m.Apps() {
			fmt.Printf("  %d. %s\n", i+1, a.Title)
		}
		return false, nil
	case "open":
		n, err := number(args)
		if err != nil {
			return false, err
		}
		return false, d.open(n)
	case "enter":
		n, err := number(args)
		if err != nil {
			return false, err
		}
		return false, d.folder.Enter(n)
	case "up":
		d.folder.Up()
		return false, nil
	case "refresh":
		d.folder.Refresh()
		return false, nil
	case "play":
		return false, d.video.Play()
	case "pause":
		return false, d.video.Pause()
	case "stop":
		return false, d.video.Stop()
	case "toggle", "t":
		return false, d.video.TogglePause()
	case "seek":
		n, err := number(args)
		if err != nil {
			return false, err
		}
		return false, d.video.Seek(n)
	case "screen", "s":
		// The screen is redrawn after every command anyway.
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// open routes a numeric select to whichever app owns the screen.
func (d *deck) open(n int) error {
	switch d.m.ActiveID() {
	case d.home.ID():
		return d.home.Open(n)
	case d.folder.ID():
		return d.folder.Open(n)
	default:
		return fmt.Errorf("nothing to open here")
	}
}

func number(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", args[0])
	}
	return n, nil
}

func printHelp() {
	fmt.Println(l10n.T("Commands:"))
	fmt.Println("  apps               " + l10n.T("List installed apps"))
	fmt.Println("  open N             " + l10n.T("Open menu entry or file N"))
	fmt.Println("  enter N            " + l10n.T("Enter directory N"))
	fmt.Println("  up                 " + l10n.T("Go to the parent directory"))
	fmt.Println("  refresh            " + l10n.T("Re-read the current directory"))
	fmt.Println("  play, pause, stop  " + l10n.T("Control playback"))
	fmt.Println("  toggle             " + l10n.T("The play/pause button"))
	fmt.Println("  seek N             " + l10n.T("Jump to frame N"))
	fmt.Println("  home               " + l10n.T("Back to the launcher"))
	fmt.Println("  screen             " + l10n.T("Redraw the screen"))
	fmt.Println("  quit               " + l10n.T("Leave the shell"))
}
