// Package theme holds the color palettes and lipgloss styles shared by the
// prompts CLI and editor.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/prompts/pkg/jsondoc"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaDarkGreen              = "#98BB6C"
	kanagawaDarkYellow             = "#FF9E3B"
	kanagawaDarkRed                = "#FF5D62"
	kanagawaDarkOrange             = "#FFA066"
	kanagawaDarkCyan               = "#7E9CD8"
	kanagawaDarkBlue               = "#7FB4CA"
	kanagawaDarkViolet             = "#957FB8"
	kanagawaDarkLightText          = "#DCD7BA"
	kanagawaDarkMutedText          = "#727169"
	kanagawaDarkBorder             = "#363646"
	kanagawaDarkSelectedBackground = "#223249"
)

// --- Kanagawa Wave (light-inspired) palette ---
const (
	kanagawaLightGreen              = "#4E7C5A"
	kanagawaLightYellow             = "#A68A64"
	kanagawaLightRed                = "#C34043"
	kanagawaLightOrange             = "#CC6B4E"
	kanagawaLightCyan               = "#5B8BBE"
	kanagawaLightBlue               = "#4F7CAC"
	kanagawaLightViolet             = "#674D7A"
	kanagawaLightLightText          = "#2B2F42"
	kanagawaLightMutedText          = "#6C7086"
	kanagawaLightBorder             = "#B5BDC5"
	kanagawaLightSelectedBackground = "#E2E6F3"
)

// --- Gruvbox palette ---
const (
	gruvboxDarkGreen               = "#B8BB26"
	gruvboxLightGreen              = "#98971A"
	gruvboxDarkYellow              = "#FABD2F"
	gruvboxLightYellow             = "#D79921"
	gruvboxDarkRed                 = "#FB4934"
	gruvboxLightRed                = "#CC241D"
	gruvboxDarkOrange              = "#FE8019"
	gruvboxLightOrange             = "#D65D0E"
	gruvboxDarkCyan                = "#83A598"
	gruvboxLightCyan               = "#458588"
	gruvboxDarkBlue                = "#458588"
	gruvboxLightBlue               = "#076678"
	gruvboxDarkViolet              = "#B16286"
	gruvboxLightViolet             = "#8F3F71"
	gruvboxDarkLightText           = "#EBDBB2"
	gruvboxLightLightText          = "#3C3836"
	gruvboxDarkMutedText           = "#BDAE93"
	gruvboxLightMutedText          = "#928374"
	gruvboxDarkBorder              = "#504945"
	gruvboxLightBorder             = "#D5C4A1"
	gruvboxDarkSelectedBackground  = "#32302F"
	gruvboxLightSelectedBackground = "#F2E5BC"
)

// Colors is one palette.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
}

// Theme is the set of styles built from a palette.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Input       lipgloss.Style
	Placeholder lipgloss.Style
	Highlight   lipgloss.Style
	Accent      lipgloss.Style

	// Tree rendering
	Key     lipgloss.Style
	String  lipgloss.Style
	Number  lipgloss.Style
	Boolean lipgloss.Style
	Null    lipgloss.Style
	Summary lipgloss.Style
	Guide   lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
}

// DefaultTheme is selected by GROVE_THEME, falling back to kanagawa.
var DefaultTheme = NewThemeWithName(os.Getenv("GROVE_THEME"))

// NewThemeWithName builds the named theme. Unknown names fall back to the
// default palette.
func NewThemeWithName(name string) *Theme {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	build, ok := themeRegistry[key]
	if !ok {
		key = defaultThemeName
		build = themeRegistry[key]
	}
	return newThemeFromColors(key, build())
}

// ValueStyle returns the style used for a leaf of the given kind.
func (t *Theme) ValueStyle(kind jsondoc.Kind) lipgloss.Style {
	switch kind {
	case jsondoc.KindString:
		return t.String
	case jsondoc.KindNumber:
		return t.Number
	case jsondoc.KindBoolean:
		return t.Boolean
	case jsondoc.KindNull:
		return t.Null
	}
	return t.Summary
}

func newThemeFromColors(name string, colors Colors) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:  lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Input: lipgloss.NewStyle().Foreground(colors.LightText),
		Placeholder: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			Italic(true),
		Highlight: lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),

		Key:     lipgloss.NewStyle().Foreground(colors.Blue),
		String:  lipgloss.NewStyle().Foreground(colors.Green),
		Number:  lipgloss.NewStyle().Foreground(colors.Orange),
		Boolean: lipgloss.NewStyle().Foreground(colors.Violet),
		Null:    lipgloss.NewStyle().Foreground(colors.MutedText).Italic(true),
		Summary: lipgloss.NewStyle().Foreground(colors.MutedText),
		Guide:   lipgloss.NewStyle().Foreground(colors.Border),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func newKanagawaColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:               lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Blue:               lipgloss.AdaptiveColor{Light: kanagawaLightBlue, Dark: kanagawaDarkBlue},
		Violet:             lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		LightText:          lipgloss.AdaptiveColor{Light: kanagawaLightLightText, Dark: kanagawaDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
		Border:             lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: kanagawaLightSelectedBackground, Dark: kanagawaDarkSelectedBackground},
	}
}

func newGruvboxColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: gruvboxLightGreen, Dark: gruvboxDarkGreen},
		Yellow:             lipgloss.AdaptiveColor{Light: gruvboxLightYellow, Dark: gruvboxDarkYellow},
		Red:                lipgloss.AdaptiveColor{Light: gruvboxLightRed, Dark: gruvboxDarkRed},
		Orange:             lipgloss.AdaptiveColor{Light: gruvboxLightOrange, Dark: gruvboxDarkOrange},
		Cyan:               lipgloss.AdaptiveColor{Light: gruvboxLightCyan, Dark: gruvboxDarkCyan},
		Blue:               lipgloss.AdaptiveColor{Light: gruvboxLightBlue, Dark: gruvboxDarkBlue},
		Violet:             lipgloss.AdaptiveColor{Light: gruvboxLightViolet, Dark: gruvboxDarkViolet},
		LightText:          lipgloss.AdaptiveColor{Light: gruvboxLightLightText, Dark: gruvboxDarkLightText},
		MutedText:          lipgloss.AdaptiveColor{Light: gruvboxLightMutedText, Dark: gruvboxDarkMutedText},
		Border:             lipgloss.AdaptiveColor{Light: gruvboxLightBorder, Dark: gruvboxDarkBorder},
		SelectedBackground: lipgloss.AdaptiveColor{Light: gruvboxLightSelectedBackground, Dark: gruvboxDarkSelectedBackground},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color("2"),
		Yellow:             lipgloss.Color("3"),
		Red:                lipgloss.Color("1"),
		Orange:             lipgloss.Color("208"),
		Cyan:               lipgloss.Color("6"),
		Blue:               lipgloss.Color("4"),
		Violet:             lipgloss.Color("5"),
		LightText:          lipgloss.Color("7"),
		MutedText:          lipgloss.Color("8"),
		Border:             lipgloss.Color("8"),
		SelectedBackground: lipgloss.Color("8"),
	}
}
