package jsondoc

import (
	"strconv"
	"strings"
)

// PathSeparator joins path segments into a PathKey. Segments are not
// escaped, so a key containing a literal "." does not survive a
// PathToKey/KeyToPath round trip.
const PathSeparator = "."

// Path addresses a location inside a JSON tree. Object segments are keys,
// array segments are base-10 indices. The empty path is the root.
type Path []string

// PathToKey serializes p into its PathKey form.
func PathToKey(p Path) string {
	return strings.Join(p, PathSeparator)
}

// KeyToPath splits a PathKey back into a Path. The empty key is the root.
func KeyToPath(key string) Path {
	if key == "" {
		return Path{}
	}
	return Path(strings.Split(key, PathSeparator))
}

// Key returns the PathKey of p.
func (p Path) Key() string {
	return PathToKey(p)
}

// String implements fmt.Stringer. The root renders as "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	return p.Key()
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns a new path with segment appended. The receiver's backing
// array is never shared with the result.
func (p Path) Child(segment string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}

// ChildIndex returns a new path addressing array element i.
func (p Path) ChildIndex(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// Parent returns the path without its last segment.
func (p Path) Parent() (Path, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p.Clone()[:len(p)-1], true
}

// Last returns the final segment.
func (p Path) Last() (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	return p[len(p)-1], true
}

// Clone returns a copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// parseIndex parses an array segment. Only plain base-10 digits are accepted.
func parseIndex(segment string, length int) (int, bool) {
	if segment == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return 0, false
	}
	if int(n) >= length {
		return 0, false
	}
	return int(n), true
}
