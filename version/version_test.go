package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")

	lines := strings.Split(info.String(), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "prompts:"))
}
