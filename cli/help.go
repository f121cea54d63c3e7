package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/prompts/tui/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	maxWidth = 72
	minWidth = 40
)

// terminalWidth returns the stdout width clamped to [minWidth, maxWidth].
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	return min(width, maxWidth)
}

// wrapText wraps text to width, preserving existing line breaks.
func wrapText(text string, width int) string {
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			out = append(out, paragraph)
			continue
		}
		var line string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// SetStyledHelp applies themed help output to cmd. Cobra inherits the help
// func, so setting it on the root covers every subcommand.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		renderHelp(c.OutOrStdout(), c, theme.DefaultTheme)
	})
}

// PrintError prints a styled error message to stderr with a help hint.
func PrintError(cmd *cobra.Command, err error) {
	t := theme.DefaultTheme
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", t.Error.Render("Error:"), err.Error())
	fmt.Fprintln(cmd.ErrOrStderr(), t.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

func renderHelp(w io.Writer, cmd *cobra.Command, t *theme.Theme) {
	section := lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange)
	name := lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue)
	flagStyle := lipgloss.NewStyle().Foreground(t.Colors.Violet)
	width := terminalWidth() - 2

	fmt.Fprintln(w, " "+t.Title.Render(strings.ToUpper(cmd.CommandPath())))
	if cmd.Short != "" {
		fmt.Fprintln(w, " "+lipgloss.NewStyle().Italic(true).Render(cmd.Short))
	}
	if long := strings.TrimSpace(cmd.Long); long != "" && long != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(long, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(w, "\n "+section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(w, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		pad := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				pad = max(pad, len(sub.Name()))
			}
		}
		fmt.Fprintln(w, "\n "+section.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				fmt.Fprintf(w, " %s%s  %s\n", name.Render(sub.Name()), strings.Repeat(" ", pad-len(sub.Name())), sub.Short)
			}
		}
	}

	var flags []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			flags = append(flags, f)
		}
	})
	if len(flags) > 0 {
		fmt.Fprintln(w, "\n "+section.Render("FLAGS"))
		pad := 0
		for _, f := range flags {
			pad = max(pad, len(flagName(f)))
		}
		for _, f := range flags {
			usage := f.Usage
			if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
				usage += t.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
			}
			fmt.Fprintf(w, " %s%s  %s\n", flagStyle.Render(flagName(f)), strings.Repeat(" ", pad-len(flagName(f))), usage)
		}
	}

	if cmd.Example != "" {
		fmt.Fprintln(w, "\n "+section.Render("EXAMPLES"))
		for _, line := range strings.Split(cmd.Example, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintln(w, "   "+t.Muted.Render(trimmed))
			default:
				fmt.Fprintln(w, "   "+trimmed)
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// flagName returns "-f, --flag" or "    --flag".
func flagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return fmt.Sprintf("    --%s", f.Name)
}
