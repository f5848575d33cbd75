// Package term renders the customers and receivables pages in a terminal
// and asks confirmations on stdin.
package term

import (
	"io"
	"os"

	"github.com/boddenberg/ardesk-go/internal/view"

	"github.com/charmbracelet/lipgloss"
	xterm "golang.org/x/term"
)

// Theme defines the colors used for badges and table chrome.
type Theme struct {
	Primary  lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Warning  lipgloss.Color
	Info     lipgloss.Color
	Muted    lipgloss.Color
}

// DefaultTheme mirrors the badge colors of the web pages.
func DefaultTheme() Theme {
	return Theme{
		Primary:  lipgloss.Color("#4169E1"),
		Positive: lipgloss.Color("#28A745"),
		Negative: lipgloss.Color("#DC3545"),
		Warning:  lipgloss.Color("#FFC107"),
		Info:     lipgloss.Color("#17A2B8"),
		Muted:    lipgloss.Color("#808080"),
	}
}

// Options configures a Renderer.
type Options struct {
	Theme   Theme
	NoColor bool
}

// Renderer writes styled text to an output stream.
type Renderer struct {
	out      io.Writer
	theme    Theme
	noColor  bool
	renderer *lipgloss.Renderer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts Options) *Renderer {
	return &Renderer{
		out:      out,
		theme:    opts.Theme,
		noColor:  opts.NoColor,
		renderer: lipgloss.NewRenderer(out),
	}
}

// NewStdoutRenderer writes to stdout, disabling colors when stdout is not
// a terminal.
func NewStdoutRenderer() *Renderer {
	return NewRenderer(os.Stdout, Options{
		Theme:   DefaultTheme(),
		NoColor: !xterm.IsTerminal(int(os.Stdout.Fd())),
	})
}

func (r *Renderer) style() lipgloss.Style {
	return r.renderer.NewStyle()
}

func (r *Renderer) apply(text string, style lipgloss.Style) string {
	if r.noColor {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) toneColor(t view.Tone) lipgloss.Color {
	switch t {
	case view.TonePositive:
		return r.theme.Positive
	case view.ToneNegative:
		return r.theme.Negative
	case view.ToneWarning:
		return r.theme.Warning
	case view.ToneInfo:
		return r.theme.Info
	default:
		return r.theme.Muted
	}
}

func (r *Renderer) badge(b view.Badge) string {
	return r.apply(b.Text, r.style().Foreground(r.toneColor(b.Tone)).Bold(true))
}

func (r *Renderer) muted(text string) string {
	return r.apply(text, r.style().Foreground(r.theme.Muted))
}

func (r *Renderer) title(text string) string {
	return r.apply(text, r.style().Foreground(r.theme.Primary).Bold(true))
}

func (r *Renderer) println(s string) {
	_, _ = io.WriteString(r.out, s+"\n")
}
