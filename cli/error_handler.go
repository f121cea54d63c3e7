package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/tui/theme"
)

// ErrorHandler turns structured errors into user-facing messages.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose, Out: out}
}

// Handle prints err with a hint matching its code and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	mark := t.Error.Render("✗")

	switch errors.GetCode(err) {
	case errors.ErrCodeDocumentNotFound:
		fmt.Fprintf(h.Out, "%s Document not found: %v\n", mark, detail(err, "id"))
		fmt.Fprintln(h.Out, t.Muted.Render("Run 'prompts list' to see available documents."))

	case errors.ErrCodeNoCurrent:
		fmt.Fprintf(h.Out, "%s No current document.\n", mark)
		fmt.Fprintln(h.Out, t.Muted.Render("Create one with 'prompts new' or select one with 'prompts use'."))

	case errors.ErrCodeInvalidJSON, errors.ErrCodeInvalidContent:
		fmt.Fprintf(h.Out, "%s %s\n", mark, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Document content must be a JSON object, e.g. '{\"model\":\"small\"}'."))

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %v\n", mark, err)
		fmt.Fprintln(h.Out, t.Muted.Render("Run 'prompts config schema' to see the accepted fields."))

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", mark, err)
	}

	if h.Verbose {
		if pe, ok := err.(*errors.PromptsError); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", pe.ToJSON())
		}
	}
	return err
}

func detail(err error, key string) interface{} {
	if pe, ok := err.(*errors.PromptsError); ok {
		if v, ok := pe.Details[key]; ok {
			return v
		}
	}
	return "?"
}

func message(err error) string {
	if pe, ok := err.(*errors.PromptsError); ok {
		return pe.Message
	}
	return err.Error()
}
