// Package asciisink renders presented frames as ASCII art on a terminal.
package asciisink

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/image/draw"

	"github.com/user/pocketshow/pkg/ports"
)

// ramp maps luminance to glyphs, darkest first.
const ramp = " .:-=+*#%@"

// DefaultCols and DefaultRows fit a frame into a standard 80x24
// terminal with room for a status line.
const (
	DefaultCols = 64
	DefaultRows = 22
)

// Sink draws each presented frame as a block of ASCII characters.
// On a terminal the cursor is moved back up between frames so the
// block repaints in place.
type Sink struct {
	mu       sync.Mutex
	out      io.Writer
	renderer ports.FrameRenderer
	log      ports.Logger
	cols     int
	rows     int
	repaint  bool
	drawn    bool
}

// New creates a sink writing to stdout. In-place repainting is enabled
// when stdout is a terminal.
func New(renderer ports.FrameRenderer, log ports.Logger, cols, rows int) *Sink {
	s := NewWith(os.Stdout, renderer, log, cols, rows)
	s.repaint = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return s
}

// NewWith creates a sink on an explicit writer with repainting
// disabled. Tests use it to capture output.
func NewWith(out io.Writer, renderer ports.FrameRenderer, log ports.Logger, cols, rows int) *Sink {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Sink{
		out:      out,
		renderer: renderer,
		log:      log.WithComponent("asciisink"),
		cols:     cols,
		rows:     rows,
	}
}

// Present decodes the frame, downsamples it to the character grid and
// writes one line per row. Frames that fail to decode are skipped.
func (s *Sink) Present(frame []byte, width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.renderer.Decode(frame)
	if err != nil {
		s.log.Warn("frame skipped: %v", err)
		return
	}

	grid := image.NewRGBA(image.Rect(0, 0, s.cols, s.rows))
	draw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	if s.repaint && s.drawn {
		fmt.Fprintf(&b, "\033[%dA", s.rows)
	}
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			b.WriteByte(glyph(grid.RGBAAt(x, y)))
		}
		b.WriteByte('\n')
	}
	io.WriteString(s.out, b.String())
	s.drawn = true
}

// glyph picks a ramp character by pixel luminance.
func glyph(c color.RGBA) byte {
	// Rec. 601 luma weights
	luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	idx := luma * len(ramp) / 256
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}

var _ ports.DisplaySink = (*Sink)(nil)
