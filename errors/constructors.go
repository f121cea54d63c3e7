package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PromptsError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PromptsError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DocumentNotFound creates a document not found error
func DocumentNotFound(id string) *PromptsError {
	return New(ErrCodeDocumentNotFound, fmt.Sprintf("document '%s' not found", id)).
		WithDetail("id", id)
}

// NoCurrentDocument is returned by commands that operate on the current
// document when none is selected.
func NoCurrentDocument() *PromptsError {
	return New(ErrCodeNoCurrent, "no current document selected")
}

// InvalidJSON wraps a JSON decoding failure
func InvalidJSON(err error) *PromptsError {
	return Wrap(err, ErrCodeInvalidJSON, "invalid JSON")
}

// InvalidContent creates an error for document content whose root is not an object
func InvalidContent(kind string) *PromptsError {
	return New(ErrCodeInvalidContent,
		fmt.Sprintf("document content must be an object, got %s", kind)).
		WithDetail("kind", kind)
}

// UnknownFormat creates an error for an unsupported import/export format
func UnknownFormat(format string) *PromptsError {
	return New(ErrCodeUnknownFormat, fmt.Sprintf("unknown format '%s'", format)).
		WithDetail("format", format)
}

// SnapshotFailed wraps a persistence failure
func SnapshotFailed(code ErrorCode, path string, err error) *PromptsError {
	return Wrap(err, code, fmt.Sprintf("snapshot %s failed", snapshotVerb(code))).
		WithDetail("path", path)
}

func snapshotVerb(code ErrorCode) string {
	if code == ErrCodeSnapshotWrite {
		return "write"
	}
	return "read"
}

// QueryFailed wraps a query compilation or evaluation failure
func QueryFailed(expr string, err error) *PromptsError {
	return Wrap(err, ErrCodeQueryFailed, "query failed").
		WithDetail("expression", expr)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *PromptsError {
	return New(ErrCodeInvalidInput, reason)
}
