package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Highlighter applies syntax colouring to JSON and YAML command output.
type Highlighter struct {
	enabled   bool
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter returns a Highlighter. mode is "auto", "always" or "never";
// in auto mode colour is used only when w is a terminal. styleName selects a
// chroma style and falls back to chroma's default when unknown.
func NewHighlighter(w io.Writer, mode, styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	enabled := false
	switch mode {
	case "always":
		enabled = true
	case "never":
		enabled = false
	default:
		enabled = isTerminal(w)
	}

	return &Highlighter{enabled: enabled, style: style, formatter: formatter}
}

// Enabled reports whether output will be coloured.
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// Highlight returns src coloured with the lexer for language ("json" or
// "yaml"). Input is returned unchanged when disabled or on any lexer failure.
func (h *Highlighter) Highlight(language string, src []byte) []byte {
	if !h.enabled || len(src) == 0 {
		return src
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return src
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return src
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return src
	}
	return buf.Bytes()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}
