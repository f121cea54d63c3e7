package jsondoc

import (
	"fmt"
	"math"
	"strconv"
)

// maxDisplayLen is the longest string shown by FormatForDisplay, ellipsis
// included.
const maxDisplayLen = 50

// FormatForDisplay renders a short, single-line summary of v. Containers are
// summarized by size rather than expanded.
func FormatForDisplay(v any) string {
	switch Classify(v) {
	case KindNull:
		return "null"
	case KindString:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		return strconv.Quote(Truncate(s, maxDisplayLen))
	case KindNumber:
		f, _ := toFloat(v)
		return FormatNumber(f)
	case KindBoolean:
		return strconv.FormatBool(v.(bool))
	case KindArray:
		return fmt.Sprintf("[%d items]", Len(v))
	case KindObject:
		return fmt.Sprintf("{%d keys}", Len(v))
	}
	return fmt.Sprintf("%v", v)
}

// Truncate shortens s to at most maxLen runes, replacing the tail with
// "..." when it is cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatNumber renders f the way JSON tooling usually does: integers without
// a fraction, exponent notation only for very large or very small values.
func FormatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
