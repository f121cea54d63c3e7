// Package tui holds terminal UI setup shared by the interactive commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI sets the lipgloss color profile before a program starts.
// CLICOLOR_FORCE=1 or COLORTERM=truecolor force full color even when output
// is not a terminal; NO_COLOR disables color entirely.
func InitializeTUI() {
	switch {
	case os.Getenv("NO_COLOR") != "":
		lipgloss.SetColorProfile(termenv.Ascii)
	case os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
