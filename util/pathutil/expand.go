// Package pathutil expands and normalizes user supplied file paths.
package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Expand replaces a leading ~ with the home directory and expands $VAR and
// ${VAR} references. The result is not made absolute.
func Expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

// NormalizeForLookup returns an absolute, symlink-resolved path suitable for
// comparing file locations. On case-insensitive platforms the result is
// lowercased. Paths that do not exist yet are only made absolute.
func NormalizeForLookup(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonical, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		canonical = absPath
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return strings.ToLower(canonical), nil
	}
	return canonical, nil
}

// SamePath reports whether a and b name the same location.
func SamePath(a, b string) bool {
	na, errA := NormalizeForLookup(a)
	nb, errB := NormalizeForLookup(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return na == nb
}
