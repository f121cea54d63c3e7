package jsondoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"short string", "hi", `"hi"`},
		{"exactly fifty", strings.Repeat("b", 50), `"` + strings.Repeat("b", 50) + `"`},
		{"integer", 42.0, "42"},
		{"fraction", 0.25, "0.25"},
		{"negative", -3, "-3"},
		{"large", 1e21, "1e+21"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"null", nil, "null"},
		{"array", []any{1, 2, 3}, "[3 items]"},
		{"empty array", []any{}, "[0 items]"},
		{"object", ObjectFrom("a", 1, "b", 2), "{2 keys}"},
		{"empty object", NewObject(), "{0 keys}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForDisplay(tt.value))
		})
	}
}

func TestFormatForDisplayTruncation(t *testing.T) {
	got := FormatForDisplay(strings.Repeat("a", 60))

	inner := strings.TrimSuffix(strings.TrimPrefix(got, `"`), `"`)
	assert.Len(t, inner, 50)
	assert.True(t, strings.HasSuffix(inner, "..."))
	assert.Equal(t, strings.Repeat("a", 47), strings.TrimSuffix(inner, "..."))
	assert.Equal(t, `"`+strings.Repeat("a", 47)+`..."`, got)
}

func TestTruncateRunes(t *testing.T) {
	s := strings.Repeat("é", 10)
	assert.Equal(t, strings.Repeat("é", 5)+"...", Truncate(s, 8))
	assert.Equal(t, s, Truncate(s, 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
