package report

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders a Report as a Markdown document.
type MarkdownFormatter struct {
	translate func(key string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets a translation function for headings and labels.
func WithTranslator(t func(key string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes a tool version in the document header.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(rep *Report) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Container Report"))
	fmt.Fprintf(&b, "%s: %s", t("Generated"), rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	if f.version != "" {
		fmt.Fprintf(&b, " (pocketshow %s)", f.version)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: `%s`\n", t("Path"), rep.Source)
	if rep.Degraded {
		fmt.Fprintf(&b, "- %s: %s\n", t("Header"), t("missing, defaults assumed"))
	} else {
		fmt.Fprintf(&b, "- %s: %s\n", t("Header"), t("complete"))
	}
	b.WriteString("\n")

	hdr := rep.Header
	fmt.Fprintf(&b, "## %s\n\n", t("Stream"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Item"), t("Value"))
	b.WriteString("|------|-------|\n")
	fmt.Fprintf(&b, "| %s | %d |\n", t("Declared frames"), hdr.FrameCount)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Frames found"), rep.FramesFound)
	fmt.Fprintf(&b, "| %s | %d fps |\n", t("Frame rate"), hdr.FrameRate)
	fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Dimensions"), hdr.Width, hdr.Height)
	d := hdr.Duration()
	fmt.Fprintf(&b, "| %s | %02d:%02d |\n", t("Nominal length"), d/60, d%60)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Payload"), formatBytes(rep.PayloadBytes))
	if rep.FramesFound > 0 {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Smallest frame"), formatBytes(int64(rep.MinFrameBytes)))
		fmt.Fprintf(&b, "| %s | %s |\n", t("Largest frame"), formatBytes(int64(rep.MaxFrameBytes)))
	}
	b.WriteString("\n")

	notes := f.notes(rep)
	if len(notes) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Notes"))
		for _, note := range notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (f *MarkdownFormatter) notes(rep *Report) []string {
	t := f.translate
	var notes []string
	if rep.Truncated {
		notes = append(notes, t("the last record is cut short and will not play"))
	}
	if rep.Corrupt {
		notes = append(notes, fmt.Sprintf("%s %d (%s %s)",
			t("corrupt length prefix at record"), rep.FramesFound,
			t("declared"), formatBytes(int64(rep.CorruptSize))))
	}
	if !rep.Degraded && !rep.Truncated && !rep.Corrupt && rep.FramesFound < rep.Header.FrameCount {
		notes = append(notes, fmt.Sprintf("%s (%d < %d)",
			t("stream is shorter than its header declares"),
			rep.FramesFound, rep.Header.FrameCount))
	}
	return notes
}

// formatBytes formats a byte count in human-readable form.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
