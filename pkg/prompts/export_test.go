package prompts

import (
	"testing"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/pkg/jsondoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("prompt.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("dir/prompt.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("prompt.json"))
	assert.Equal(t, FormatJSON, FormatForPath("prompt"))
	assert.Equal(t, FormatMarkdown, FormatForPath("prompts/review.md"))
}

func TestMarkdown(t *testing.T) {
	t.Run("export splits template from frontmatter", func(t *testing.T) {
		doc := Document{ID: "a", Content: jsondoc.ObjectFrom(
			"model", "small",
			"template", "Summarize {{text}}\n",
		)}
		data, err := Export(doc, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "---\nmodel: small\n---\nSummarize {{text}}\n", string(data))

		back, err := Import(data, FormatMarkdown)
		require.NoError(t, err)
		assert.True(t, jsondoc.Equal(doc.Content, back))
	})

	t.Run("non-string template stays in frontmatter", func(t *testing.T) {
		doc := Document{ID: "a", Content: jsondoc.ObjectFrom("template", 3)}
		data, err := Export(doc, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "---\ntemplate: 3\n---\n", string(data))
	})

	t.Run("blank template survives a round trip", func(t *testing.T) {
		for _, tmpl := range []string{"", "  \n"} {
			doc := Document{ID: "a", Content: jsondoc.ObjectFrom("model", "small", "template", tmpl)}
			data, err := Export(doc, FormatMarkdown)
			require.NoError(t, err)

			back, err := Import(data, FormatMarkdown)
			require.NoError(t, err)
			got, ok := back.Get("template")
			require.True(t, ok, "template %q", tmpl)
			assert.Equal(t, tmpl, got)
			assert.True(t, jsondoc.Equal(doc.Content, back))
		}

		only := Document{ID: "a", Content: jsondoc.ObjectFrom("template", "")}
		data, err := Export(only, FormatMarkdown)
		require.NoError(t, err)
		back, err := Import(data, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, `{"template":""}`, mustMarshal(t, back))
	})

	t.Run("plain markdown becomes the template", func(t *testing.T) {
		back, err := Import([]byte("# Review\nBe thorough.\n"), FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, `{"template":"# Review\nBe thorough.\n"}`, mustMarshal(t, back))
	})

	t.Run("frontmatter must be a mapping", func(t *testing.T) {
		_, err := Import([]byte("---\n- a\n---\nbody"), FormatMarkdown)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidContent))
	})
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	data, err := jsondoc.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestExportJSON(t *testing.T) {
	doc := Document{ID: "a", Content: jsondoc.ObjectFrom("b", 1, "a", "<tag>")}
	data, err := Export(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": \"<tag>\"\n}\n", string(data))
}

func TestExportImportRoundTrip(t *testing.T) {
	content := jsondoc.ObjectFrom(
		"title", "Hello",
		"count", 3,
		"ratio", 0.5,
		"flags", []any{true, false, nil},
		"meta", jsondoc.ObjectFrom("zeta", "z", "alpha", "a"),
	)
	doc := Document{ID: "a", Content: content}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Export(doc, format)
			require.NoError(t, err)

			back, err := Import(data, format)
			require.NoError(t, err)
			assert.True(t, jsondoc.Equal(content, back))
			assert.Equal(t, jsondoc.Keys(content), jsondoc.Keys(back))
			meta, _ := jsondoc.Get(back, jsondoc.Path{"meta"})
			assert.Equal(t, []string{"zeta", "alpha"}, jsondoc.Keys(meta.(*jsondoc.Object)))
		})
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.ErrorCode
	}{
		{"json array root", `[1, 2]`, FormatJSON, errors.ErrCodeInvalidContent},
		{"json malformed", `{"a":`, FormatJSON, errors.ErrCodeInvalidJSON},
		{"yaml scalar root", "just text\n", FormatYAML, errors.ErrCodeInvalidContent},
		{"yaml malformed", "a: [1, 2\n", FormatYAML, errors.ErrCodeInvalidJSON},
		{"unknown format", `{}`, Format("xml"), errors.ErrCodeUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestImportEmptyYAML(t *testing.T) {
	obj, err := Import([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Len())
}
