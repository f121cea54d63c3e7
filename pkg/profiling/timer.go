// Package profiling records nested timing spans for a single command run.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper ends a span started with Start.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	recorder *recorder
}

func (s *span) Stop() {
	s.recorder.end(s)
}

type recorder struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

var global = &recorder{}

// Enable starts recording. Spans started before Enable are not recorded.
func Enable() {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.enabled {
		return
	}
	global.enabled = true
	global.root = &span{name: "total", start: time.Now(), recorder: global}
	global.stack = []*span{global.root}
}

// Reset discards all recorded spans and disables recording.
func Reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.enabled = false
	global.root = nil
	global.stack = nil
}

// Start opens a span nested under the innermost open span.
func Start(name string) Stopper {
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.enabled {
		return noopStopper{}
	}
	parent := global.stack[len(global.stack)-1]
	s := &span{name: name, start: time.Now(), recorder: global}
	parent.children = append(parent.children, s)
	global.stack = append(global.stack, s)
	return s
}

func (r *recorder) end(s *span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.duration = time.Since(s.start)
	// Pop s and anything left open inside it.
	for i := len(r.stack) - 1; i > 0; i-- {
		if r.stack[i] == s {
			r.stack = r.stack[:i]
			return
		}
	}
}

// Summarize writes the recorded span tree with each span's share of the
// total run time.
func Summarize(w io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.enabled || global.root == nil {
		return
	}
	total := time.Since(global.root.start)
	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, child := range global.root.children {
		writeSpan(w, child, 0, total)
	}
	fmt.Fprintf(w, "total: %v\n", total.Round(100*time.Microsecond))
}

func writeSpan(w io.Writer, s *span, depth int, total time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), pct)
	for _, child := range s.children {
		writeSpan(w, child, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}
