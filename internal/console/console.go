// Package console prints the styled progress and result lines of doclinks.
//
// Styles are rendered for the writer they are attached to, so output piped to
// a file or a CI log carries no escape sequences.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// dividerWidth is the number of characters in a divider line.
const dividerWidth = 70

// Theme is the colour palette of the console.
type Theme struct {
	Header  lipgloss.Color
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Link    lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() Theme {
	return Theme{
		Header:  lipgloss.Color("#7C3AED"), // Purple
		Info:    lipgloss.Color("#06B6D4"), // Cyan
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
		Link:    lipgloss.Color("#89B4FA"), // Blue
		Muted:   lipgloss.Color("#6C7086"), // Gray
	}
}

// Styles contains the pre-configured styles of one console.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Link      lipgloss.Style
	Divider   lipgloss.Style
}

// NewStyles builds the styles of theme for renderer.
func NewStyles(r *lipgloss.Renderer, theme Theme) Styles {
	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(theme.Header),
		Subheader: r.NewStyle().Bold(true).Foreground(theme.Info),
		Info:      r.NewStyle().Foreground(theme.Info),
		Success:   r.NewStyle().Foreground(theme.Success),
		Warning:   r.NewStyle().Foreground(theme.Warning),
		Error:     r.NewStyle().Bold(true).Foreground(theme.Error),
		Link:      r.NewStyle().Underline(true).Foreground(theme.Link),
		Divider:   r.NewStyle().Foreground(theme.Muted),
	}
}

// Console writes styled lines to a writer.
type Console struct {
	w      io.Writer
	styles Styles
}

// New creates a Console writing to w with the default theme.
func New(w io.Writer) *Console {
	return &Console{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w), DefaultTheme()),
	}
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.w
}

func (c *Console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.w, style.Render(fmt.Sprintf(format, args...)))
}

// Header prints a bold title line.
func (c *Console) Header(format string, args ...any) { c.line(c.styles.Header, format, args...) }

// Subheader prints a section title.
func (c *Console) Subheader(format string, args ...any) { c.line(c.styles.Subheader, format, args...) }

// Info prints an informational line.
func (c *Console) Info(format string, args ...any) { c.line(c.styles.Info, format, args...) }

// Success prints a success line.
func (c *Console) Success(format string, args ...any) { c.line(c.styles.Success, format, args...) }

// Warning prints a warning line.
func (c *Console) Warning(format string, args ...any) { c.line(c.styles.Warning, format, args...) }

// Error prints an error line.
func (c *Console) Error(format string, args ...any) { c.line(c.styles.Error, format, args...) }

// Link prints a path or URL.
func (c *Console) Link(format string, args ...any) { c.line(c.styles.Link, format, args...) }

// Println prints an unstyled line.
func (c *Console) Println(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Blank prints an empty line.
func (c *Console) Blank() {
	fmt.Fprintln(c.w)
}

// Divider prints a horizontal rule.
func (c *Console) Divider() {
	fmt.Fprintln(c.w, c.styles.Divider.Render(strings.Repeat("━", dividerWidth)))
}

// Confirm asks question and reads one line from in.
// It returns true only for "y" or "yes" (any case). Anything else, including
// an empty answer or end of input, is a no.
func (c *Console) Confirm(in io.Reader, question string) bool {
	fmt.Fprint(c.w, c.styles.Warning.Render(question+" (y/N): "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(c.w)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
