package logging

import (
	"io"
	"os"
	"sync"
)

// swappableWriter forwards writes to a target that can be replaced while
// loggers hold a reference to it.
type swappableWriter struct {
	mu     sync.RWMutex
	target io.Writer
}

func (w *swappableWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.target.Write(p)
}

func (w *swappableWriter) set(target io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.target = target
}

var stderrOutput = &swappableWriter{target: os.Stderr}

// SetGlobalOutput redirects every logger's stderr sink. The editor points it
// at io.Discard while the alternate screen is active.
func SetGlobalOutput(w io.Writer) {
	stderrOutput.set(w)
}

// GetGlobalOutput returns the writer loggers use in place of os.Stderr.
func GetGlobalOutput() io.Writer {
	return stderrOutput
}
