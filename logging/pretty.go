package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/praise/tui/theme"
)

// PrettyLogger writes human-facing command output styled with the theme.
// Diagnostics go through NewLogger instead.
type PrettyLogger struct {
	w     io.Writer
	t     *theme.Theme
	key   lipgloss.Style
	value lipgloss.Style
	path  lipgloss.Style
}

// NewPrettyLogger returns a PrettyLogger writing to stderr.
func NewPrettyLogger() *PrettyLogger {
	t := theme.DefaultTheme
	return &PrettyLogger{
		w:     os.Stderr,
		t:     t,
		key:   t.Muted,
		value: lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		path:  lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Cyan),
	}
}

// WithWriter redirects the output.
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.w = w
	return p
}

func (p *PrettyLogger) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Success prints message behind a check mark.
func (p *PrettyLogger) Success(message string) {
	p.printf("%s\n", p.t.Success.Render("✓ "+message))
}

// WarnPretty prints message behind a warning sign.
func (p *PrettyLogger) WarnPretty(message string) {
	p.printf("%s\n", p.t.Warning.Render("⚠ "+message))
}

// ErrorPretty prints message and, if set, err.
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	if err != nil {
		message += ": " + err.Error()
	}
	p.printf("%s\n", p.t.Error.Render("✗ "+message))
}

// Field prints a key: value line.
func (p *PrettyLogger) Field(key string, value interface{}) {
	p.printf("%s: %s\n", p.key.Render(key), p.value.Render(fmt.Sprint(value)))
}

// Path prints a labelled file path.
func (p *PrettyLogger) Path(label, path string) {
	p.printf("%s: %s\n", p.key.Render(label), p.path.Render(path))
}

// Praise prints a praise message with the time it was given below it.
func (p *PrettyLogger) Praise(message, timestamp string) {
	p.printf("%s\n%s %s\n", p.t.Praise.Render(message), p.key.Render("🕒"), p.value.Render(timestamp))
}

// Divider prints a horizontal rule.
func (p *PrettyLogger) Divider() {
	p.printf("%s\n", p.key.Render(strings.Repeat("─", 60)))
}
