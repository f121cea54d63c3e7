package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/prompts/tui/theme"
)

// PrettyLogger writes human-facing command results, styled with the active theme.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
}

// NewPrettyLogger returns a PrettyLogger writing to stdout.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stdout,
		theme:  theme.DefaultTheme,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// WithTheme overrides the theme used for styling.
func (p *PrettyLogger) WithTheme(t *theme.Theme) *PrettyLogger {
	if t != nil {
		p.theme = t
	}
	return p
}

// Success prints message with a checkmark.
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Success.Render("✓"), message)
}

// InfoPretty prints an informational line.
func (p *PrettyLogger) InfoPretty(message string) {
	fmt.Fprintln(p.writer, p.theme.Info.Render(message))
}

// WarnPretty prints a warning line.
func (p *PrettyLogger) WarnPretty(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Warning.Render("!"), p.theme.Warning.Render(message))
}

// ErrorPretty prints message and, when present, err.
func (p *PrettyLogger) ErrorPretty(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s", p.theme.Error.Render("✗"), p.theme.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", err.Error())
	}
	fmt.Fprintln(p.writer)
}

// Field prints an aligned key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.theme.Muted.Render(fmt.Sprintf("%-10s", key+":")),
		fmt.Sprint(value))
}

// Path prints a labelled file path.
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.theme.Muted.Render(fmt.Sprintf("%-10s", label+":")),
		p.theme.Accent.Render(path))
}

// Blank prints a blank line
func (p *PrettyLogger) Blank() {
	fmt.Fprintln(p.writer)
}
