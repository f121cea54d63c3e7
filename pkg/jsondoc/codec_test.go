package jsondoc

import (
	"testing"

	"github.com/grovetools/prompts/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"b":1,"a":{"z":true,"y":null},"c":[1,"two",{"k":"v"}]}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c"}, Keys(obj))

	a, _ := obj.Get("a")
	assert.Equal(t, []string{"z", "y"}, Keys(a.(*Object)))

	c, _ := Get(obj, Path{"c", "2", "k"})
	assert.Equal(t, "v", c)

	n, found := Get(obj, Path{"a", "y"})
	assert.True(t, found)
	assert.Nil(t, n)
}

func TestParseScalarsAndEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`"line\nbreak é"`, "line\nbreak é"},
		{`12.5`, 12.5},
		{`-3`, -3.0},
		{`true`, true},
		{`null`, nil},
		{`[]`, []any{}},
		{` [ ] `, []any{}},
	}

	for _, tt := range tests {
		got, err := Parse([]byte(tt.input))
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	v, err := Parse([]byte(`{"we\"ird\\key":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{`we"ird\key`}, Keys(v.(*Object)))
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1} trailing`} {
		_, err := Parse([]byte(input))
		assert.Error(t, err, input)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON), input)
	}
}

func TestParseNumberOutOfRange(t *testing.T) {
	for _, input := range []string{`1e400`, `{"n":-1e400}`, `[1, 2e999]`} {
		_, err := Parse([]byte(input))
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON), input)
		assert.Contains(t, err.Error(), "out of range", input)
	}

	assert.Equal(t, "1e400", ParseLiteral("1e400"))
}

func TestParseObjectRejectsNonObjectRoot(t *testing.T) {
	_, err := ParseObject([]byte(`[1,2]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidContent))

	obj, err := ParseObject([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Len())
}

func TestParseLiteral(t *testing.T) {
	assert.Equal(t, 5.0, ParseLiteral("5"))
	assert.Equal(t, true, ParseLiteral("true"))
	assert.Nil(t, ParseLiteral("null"))
	assert.Equal(t, "hello", ParseLiteral("hello"))
	assert.Equal(t, "hello", ParseLiteral(`"hello"`))
	assert.Equal(t, "", ParseLiteral(""))
	assert.Equal(t, []any{1.0}, ParseLiteral("[1]"))
}

func TestMarshalRoundTrip(t *testing.T) {
	input := `{"b":1,"a":{"z":true,"y":null},"c":[1.5,"<two>",{"k":"v"}],"e":{}}`
	v, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(ObjectFrom("b", 1, "a", []any{"x"}), "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    \"x\"\n  ]\n}", string(out))
}

func TestToPlain(t *testing.T) {
	plain := ToPlain(ObjectFrom("a", []any{ObjectFrom("b", 1)}))
	assert.Equal(t, map[string]any{"a": []any{map[string]any{"b": 1.0}}}, plain)
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := ObjectFrom(
		"zeta", "text",
		"alpha", ObjectFrom("n", 3, "f", 1.5, "flag", true, "none", nil),
		"list", []any{"true", "x"},
	)

	out, err := yaml.Marshal(ToYAMLNode(doc))
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &node))
	back, err := FromYAMLNode(&node)
	require.NoError(t, err)

	obj := back.(*Object)
	assert.Equal(t, []string{"zeta", "alpha", "list"}, Keys(obj))
	assert.True(t, Equal(doc, back), "yaml:\n%s", out)

	// A string that looks like a boolean stays a string.
	first, _ := Get(back, Path{"list", "0"})
	assert.Equal(t, "true", first)
}
