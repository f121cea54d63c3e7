// Package keymap resolves vim-style multi-key sequences such as gg, dd and zR.
package keymap

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout is how long a partial sequence waits for its next key.
const DefaultTimeout = time.Second

// SequenceState buffers keys until they form a complete binding.
type SequenceState struct {
	buffer     string
	lastUpdate time.Time
	timeout    time.Duration
	now        func() time.Time
}

// NewSequenceState creates a sequence buffer with DefaultTimeout.
func NewSequenceState() *SequenceState {
	return NewSequenceStateWithTimeout(DefaultTimeout)
}

// NewSequenceStateWithTimeout creates a sequence buffer. A zero timeout
// never expires partial input.
func NewSequenceStateWithTimeout(timeout time.Duration) *SequenceState {
	return &SequenceState{timeout: timeout, now: time.Now}
}

// UpdateKey appends keyStr to the buffer, discarding stale input first.
func (s *SequenceState) UpdateKey(keyStr string) string {
	now := s.now()
	if s.timeout > 0 && now.Sub(s.lastUpdate) > s.timeout {
		s.buffer = ""
	}
	s.lastUpdate = now
	s.buffer += keyStr
	return s.buffer
}

// Update is UpdateKey for a key message.
func (s *SequenceState) Update(msg tea.KeyMsg) string {
	return s.UpdateKey(msg.String())
}

// Clear resets the buffer. Call it after acting on a match.
func (s *SequenceState) Clear() {
	s.buffer = ""
}

// Buffer returns the pending keys.
func (s *SequenceState) Buffer() string {
	return s.buffer
}

// IsPending reports whether keys are buffered.
func (s *SequenceState) IsPending() bool {
	return s.buffer != ""
}

// Matches reports whether buffer equals one of binding's keys.
func Matches(buffer string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == buffer {
			return true
		}
	}
	return false
}

// MatchesAny returns the index of the first binding buffer matches.
func MatchesAny(buffer string, bindings ...key.Binding) (int, bool) {
	for i, binding := range bindings {
		if Matches(buffer, binding) {
			return i, true
		}
	}
	return -1, false
}

// IsPrefix reports whether buffer is a strict prefix of one of binding's keys.
func IsPrefix(buffer string, binding key.Binding) bool {
	if buffer == "" {
		return false
	}
	for _, k := range binding.Keys() {
		if len(buffer) < len(k) && strings.HasPrefix(k, buffer) {
			return true
		}
	}
	return false
}

// IsPrefixOfAny reports whether buffer is a strict prefix of any binding.
func IsPrefixOfAny(buffer string, bindings ...key.Binding) bool {
	for _, binding := range bindings {
		if IsPrefix(buffer, binding) {
			return true
		}
	}
	return false
}

// SequenceResult is the outcome of feeding one key into a SequenceState.
type SequenceResult int

const (
	// SequenceNone means the buffer cannot become any binding.
	SequenceNone SequenceResult = iota
	// SequencePending means more keys may complete a binding.
	SequencePending
	// SequenceMatch means the buffer equals a binding.
	SequenceMatch
)

// Process feeds msg into the buffer and classifies the result. On a match
// the index of the matching binding is returned, otherwise -1. The caller
// clears the buffer on SequenceMatch and SequenceNone.
func (s *SequenceState) Process(msg tea.KeyMsg, bindings ...key.Binding) (SequenceResult, int) {
	return s.ProcessKey(msg.String(), bindings...)
}

// ProcessKey is Process for a key string.
func (s *SequenceState) ProcessKey(keyStr string, bindings ...key.Binding) (SequenceResult, int) {
	buffer := s.UpdateKey(keyStr)
	if idx, ok := MatchesAny(buffer, bindings...); ok {
		return SequenceMatch, idx
	}
	if IsPrefixOfAny(buffer, bindings...) {
		return SequencePending, -1
	}
	return SequenceNone, -1
}
