// Package testutil holds helpers shared by the command and editor tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/stretchr/testify/require"
)

// Epoch is the instant returned first by FixedClock.
var Epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// MustObject parses src as a JSON object or fails the test.
func MustObject(t *testing.T, src string) *jsondoc.Object {
	t.Helper()

	obj, err := jsondoc.ParseObject([]byte(src))
	require.NoError(t, err, "parse %s", src)
	return obj
}

// MustJSON renders v as compact JSON or fails the test.
func MustJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := jsondoc.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// SnapshotPath returns a store path inside a fresh temp dir. The file does
// not exist yet.
func SnapshotPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "prompts", "store.json")
}

// WriteFile writes content under dir, creating parents, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// IsolateConfig points config discovery at an empty temp tree so tests never
// pick up the developer's own prompts.yml.
func IsolateConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("GROVE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("PROMPTS_CONFIG", "")
	t.Chdir(dir)
	return dir
}

// FixedClock returns a clock that starts at Epoch and advances one second per
// call.
func FixedClock() func() time.Time {
	var mu sync.Mutex
	next := Epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
