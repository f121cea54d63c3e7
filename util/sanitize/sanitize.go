// Package sanitize cleans user supplied names for display and the filesystem.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	filenameSeparators = strings.NewReplacer(" ", "-", "_", "-", ".", "-", "/", "-", "\\", "-")
	nonFilenameRegex   = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex     = regexp.MustCompile(`-+`)
)

// maxFilenameLen bounds the stem produced by Filename.
const maxFilenameLen = 50

// Filename turns s into a kebab-case file stem. It returns "" when nothing
// usable remains.
func Filename(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = filenameSeparators.Replace(s)
	s = nonFilenameRegex.ReplaceAllString(s, "")
	s = multiDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxFilenameLen {
		s = strings.TrimRight(s[:maxFilenameLen], "-")
	}
	return s
}

// UniqueFilename returns stem+ext, suffixing -2, -3 and so on until the
// result is not in taken. The returned name is added to taken.
func UniqueFilename(stem, ext string, taken map[string]bool) string {
	name := stem + ext
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	taken[name] = true
	return name
}

// DocumentName trims s, drops control characters and collapses runs of
// whitespace to a single space.
func DocumentName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
