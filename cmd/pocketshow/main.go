// Package main provides the CLI entry point for pocketshow.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pocketshow/pkg/adapters/asciisink"
	"github.com/user/pocketshow/pkg/adapters/dirstorage"
	"github.com/user/pocketshow/pkg/adapters/ggrender"
	"github.com/user/pocketshow/pkg/adapters/logger"
	"github.com/user/pocketshow/pkg/adapters/mp4export"
	"github.com/user/pocketshow/pkg/adapters/nullsink"
	"github.com/user/pocketshow/pkg/adapters/pngsink"
	"github.com/user/pocketshow/pkg/adapters/ticker"
	"github.com/user/pocketshow/pkg/config"
	"github.com/user/pocketshow/pkg/mjpeg"
	"github.com/user/pocketshow/pkg/player"
	"github.com/user/pocketshow/pkg/ports"
	"github.com/user/pocketshow/pkg/report"
	"github.com/user/pocketshow/pkg/testpattern"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp assembles the CLI application.
func newApp() *cli.App {
	return &cli.App{
		Name:    "pocketshow",
		Usage:   l10n.T("Play and inspect pocket video containers"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Path to YAML configuration file"),
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   l10n.T("Card directory holding clips and reports"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Commands: []*cli.Command{
			playCommand(),
			infoCommand(),
			genCommand(),
			exportCommand(),
			shellCommand(),
		},
	}
}

// resolveConfig merges defaults, the optional config file and CLI flags,
// in that order.
func resolveConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("root") {
		cfg.Root = c.String("root")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.Quiet = true
	}
	return cfg, nil
}

func buildLogger(cfg config.Config) ports.Logger {
	if cfg.Quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// buildSink creates the configured display sink.
func buildSink(cfg config.Config, storage ports.Storage, log ports.Logger) (ports.DisplaySink, error) {
	switch cfg.Sink {
	case "ascii":
		return asciisink.New(ggrender.New(), log, cfg.Ascii.Columns, cfg.Ascii.Rows), nil
	case "png":
		return pngsink.New(cfg.DumpDir, storage, ggrender.New(), config.ParseColor(cfg.Background), log), nil
	case "null":
		return nullsink.New(), nil
	default:
		return nil, fmt.Errorf("unknown sink %q (want ascii, png or null)", cfg.Sink)
	}
}

// playCommand defines the play subcommand.
func playCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play a video container from the card"),
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "sink",
				Aliases: []string{"s"},
				Usage:   l10n.T("Display sink (ascii, png, null)"),
			},
			&cli.StringFlag{
				Name:  "dump-dir",
				Usage: l10n.T("Directory for png sink output"),
			},
			&cli.IntFlag{
				Name:  "from",
				Usage: l10n.T("Start playback at this frame"),
			},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("play: expected one container path")
	}
	path := c.Args().Get(0)

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("sink") {
		cfg.Sink = c.String("sink")
	}
	if c.IsSet("dump-dir") {
		cfg.DumpDir = c.String("dump-dir")
	}

	log := buildLogger(cfg)
	storage := dirstorage.New(cfg.Root)

	sink, err := buildSink(cfg, storage, log)
	if err != nil {
		return err
	}

	// The session settles to stopped on its own at the end of the
	// stream, so completion is observed through the state hook rather
	// than by polling.
	done := make(chan player.State, 1)
	session, err := player.Open(storage, path, player.Options{
		Sink:      sink,
		Scheduler: ticker.New(),
		Logger:    log,
		OnState: func(old, now player.State) {
			if now == player.StateStopped || now == player.StateError {
				select {
				case done <- now:
				default:
				}
			}
		},
	})
	if err != nil {
		return err
	}
	defer session.Close()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if from := c.Int("from"); from > 0 {
		if err := session.SeekToFrame(from); err != nil {
			return err
		}
	}

	hdr := session.Header()
	log.Info(l10n.F("Playing %s (%d frames, %d fps)...", path, hdr.FrameCount, hdr.FrameRate))

	if err := session.Play(); err != nil {
		return err
	}

	// The ascii sink owns stdout, so the progress line goes to stderr
	// and is skipped entirely when frames are already visible.
	progress := cfg.Sink != "ascii" && !cfg.Quiet
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-sigCh:
			if progress {
				fmt.Fprintln(os.Stderr)
			}
			log.Warn(l10n.T("Interrupted, shutting down..."))
			session.Stop()
			return nil
		case final := <-done:
			if progress {
				fmt.Fprintln(os.Stderr)
			}
			if final == player.StateError {
				return session.Err()
			}
			log.Info(l10n.T("Playback finished"))
			return nil
		case <-tick.C:
			if progress {
				p := session.Progress()
				fmt.Fprintf(os.Stderr, "\r%s %3d%%", p.Clock(), p.Percent)
			}
		}
	}
}

// infoCommand defines the info subcommand.
func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Inspect a container and report its health"),
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "report",
				Usage: l10n.T("Write the report to this card path (Markdown)"),
			},
		},
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("info: expected one container path")
	}
	path := c.Args().Get(0)

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	storage := dirstorage.New(cfg.Root)

	f, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := mjpeg.OpenReader(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rep, err := report.Scan(reader, path)
	if err != nil {
		return err
	}

	formatter := report.NewMarkdownFormatter(
		report.WithTranslator(l10n.T),
		report.WithVersion(version),
	)

	if out := c.String("report"); out != "" {
		if err := report.NewWriter(formatter, storage).Write(out, rep); err != nil {
			return err
		}
		buildLogger(cfg).Info(l10n.F("Report saved to %s", out))
		return nil
	}

	fmt.Print(formatter.Format(rep))
	return nil
}

// genCommand defines the gen subcommand.
func genCommand() *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     l10n.T("Generate a synthetic test container"),
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "frames",
				Value: testpattern.DefaultFrames,
				Usage: l10n.T("Number of frames"),
			},
			&cli.IntFlag{
				Name:  "fps",
				Value: testpattern.DefaultRate,
				Usage: l10n.T("Frame rate"),
			},
			&cli.IntFlag{
				Name:  "width",
				Value: testpattern.DefaultWidth,
				Usage: l10n.T("Frame width in pixels"),
			},
			&cli.IntFlag{
				Name:  "height",
				Value: testpattern.DefaultHeight,
				Usage: l10n.T("Frame height in pixels"),
			},
		},
		Action: runGen,
	}
}

func runGen(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("gen: expected one output path")
	}
	path := c.Args().Get(0)

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	log := buildLogger(cfg)
	storage := dirstorage.New(cfg.Root)

	f, err := storage.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	n, err := testpattern.Generate(f, testpattern.Options{
		Frames:  uint32(c.Int("frames")),
		Rate:    uint32(c.Int("fps")),
		Width:   uint32(c.Int("width")),
		Height:  uint32(c.Int("height")),
		Quality: cfg.Quality,
	})
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.Info(l10n.F("Generated %d frames to %s", n, path))
	return nil
}

// exportCommand defines the export subcommand.
func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Export a container to fragmented MP4"),
		ArgsUsage: "SRC DST",
		Action:    runExport,
	}
}

func runExport(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("export: expected source and destination paths")
	}
	src, dst := c.Args().Get(0), c.Args().Get(1)

	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}
	log := buildLogger(cfg)
	storage := dirstorage.New(cfg.Root)

	f, err := storage.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	reader, err := mjpeg.OpenReader(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	data, err := mp4export.Export(reader)
	if err != nil {
		return err
	}

	out, err := storage.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	log.Info(l10n.F("Exported %s (%d bytes)", dst, len(data)))
	return nil
}
