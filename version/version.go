// Package version exposes build metadata stamped in via -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X github.com/grovetools/prompts/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Info holds all the versioning information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns a struct populated with the version information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the info as aligned "label: value" lines.
func (i Info) String() string {
	rows := [][2]string{
		{"prompts", i.Version},
		{"commit", i.Commit},
		{"built", i.BuildDate},
		{"go", i.GoVersion},
		{"platform", i.Platform},
	}
	var b strings.Builder
	for n, row := range rows {
		if n > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-9s %s", row[0]+":", row[1])
	}
	return b.String()
}
