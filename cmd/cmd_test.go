package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/prompts/errors"
	"github.com/grovetools/prompts/logging"
	"github.com/grovetools/prompts/pkg/prompts"
	"github.com/grovetools/prompts/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t     *testing.T
	dir   string
	store string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := testutil.IsolateConfig(t)
	return &harness{t: t, dir: dir, store: filepath.Join(dir, "store.json")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--store", h.store}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) create(name, content string) string {
	h.t.Helper()
	out := h.mustRun("new", name, "--content", content, "--json")
	var summary documentSummary
	require.NoError(h.t, json.Unmarshal([]byte(out), &summary))
	return summary.ID
}

func (h *harness) snapshot() prompts.Snapshot {
	h.t.Helper()
	snap, err := prompts.LoadSnapshot(h.store)
	require.NoError(h.t, err)
	return snap
}

func (h *harness) content(ref string) string {
	h.t.Helper()
	out := h.mustRun("get", "--doc", ref)
	return out
}

func TestNewAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("list")
	assert.Contains(t, out, "No documents")

	id := h.create("greeting", `{"system":"be brief"}`)
	h.mustRun("new", "review", "--description", "Code review")

	snap := h.snapshot()
	require.Len(t, snap.Documents, 2)
	assert.Equal(t, "review", snap.Documents[1].Name)
	assert.Equal(t, "Code review", snap.Documents[1].Description)
	assert.Equal(t, snap.Documents[1].ID, snap.CurrentDocumentID, "new documents become current")

	out = h.mustRun("list")
	assert.Contains(t, out, "greeting")
	assert.Contains(t, out, id)

	out = h.mustRun("list", "--json")
	var summaries []documentSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[0].Keys)
	assert.True(t, summaries[1].Current)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("new", "x", "--content", `[1,2]`)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidContent))

	_, err = h.run("new", "x", "--content", `{"a":`)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidJSON))

	_, err = h.run("new", "x", "--content", `{}`, "--file", "a.json")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = os.Stat(h.store)
	assert.True(t, os.IsNotExist(err), "nothing is saved after a failed create")
}

func TestValueCommands(t *testing.T) {
	h := newHarness(t)
	h.create("chat", `{"model":"small","messages":[]}`)

	h.mustRun("set", "temperature", "0.2")
	h.mustRun("set", "options.stream", "true")
	h.mustRun("append", "messages", `{"role":"user","content":"hi"}`)
	h.mustRun("add-key", "messages.0", "name", "ada")
	h.mustRun("rm", "model")

	assert.JSONEq(t, `{
		"messages":[{"role":"user","content":"hi","name":"ada"}],
		"temperature":0.2,
		"options":{"stream":true}
	}`, h.mustRun("get"))

	assert.Equal(t, "\"hi\"\n", h.mustRun("get", "messages.0.content"))
	assert.Equal(t, "hi\n", h.mustRun("get", "messages.0.content", "--raw"))
	assert.Equal(t, "0.2\n", h.mustRun("get", "temperature"))

	_, err := h.run("get", "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = h.run("rm", "messages.0")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "array items cannot be removed")

	_, err = h.run("append", "options", "1")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "append needs an array")

	_, err = h.run("set", ".", "3")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidContent))
}

func TestPlainStringValues(t *testing.T) {
	h := newHarness(t)
	h.create("p", `{}`)

	h.mustRun("set", "greeting", "hello world")
	h.mustRun("set", "quoted", `"42"`)
	h.mustRun("set", "number", "42")

	assert.JSONEq(t, `{"greeting":"hello world","quoted":"42","number":42}`, h.mustRun("get"))
}

func TestDocumentFlagKeepsCurrent(t *testing.T) {
	h := newHarness(t)
	first := h.create("first", `{}`)
	second := h.create("second", `{}`)

	h.mustRun("set", "a", "1", "--doc", "first")

	snap := h.snapshot()
	assert.Equal(t, second, snap.CurrentDocumentID)
	assert.JSONEq(t, `{"a":1}`, h.content(first))
	assert.JSONEq(t, `{}`, h.content(second))
}

func TestResolve(t *testing.T) {
	h := newHarness(t)
	id := h.create("dup", `{}`)
	h.create("dup", `{}`)

	_, err := h.run("use", "dup")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "ambiguous names need an id")

	h.mustRun("use", id)
	assert.Equal(t, id, h.snapshot().CurrentDocumentID)

	_, err = h.run("use", "nope")
	assert.True(t, errors.Is(err, errors.ErrCodeDocumentNotFound))
}

func TestNoCurrentDocument(t *testing.T) {
	h := newHarness(t)
	id := h.create("only", `{}`)
	h.mustRun("delete", id)

	_, err := h.run("get")
	assert.True(t, errors.Is(err, errors.ErrCodeNoCurrent))
	assert.Empty(t, h.snapshot().Documents)
}

func TestRename(t *testing.T) {
	h := newHarness(t)
	id := h.create("old", `{}`)

	h.mustRun("rename", "old", "new", "--description", "renamed")

	doc, ok := h.snapshot().State().Document(id)
	require.True(t, ok)
	assert.Equal(t, "new", doc.Name)
	assert.Equal(t, "renamed", doc.Description)

	_, err := h.run("rename", id, "")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	h.create("chat", `{"system":"be brief","messages":[{"role":"user"}]}`)

	out := h.mustRun("show")
	assert.Contains(t, out, "chat")
	assert.Contains(t, out, `system: "be brief"`)
	assert.Contains(t, out, "messages: [1 items]")
	assert.NotContains(t, out, "role")

	out = h.mustRun("show", "--expand", "messages")
	assert.Contains(t, out, "[0]: {1 keys}")

	out = h.mustRun("show", "--expand-all")
	assert.Contains(t, out, `role: "user"`)

	out = h.mustRun("show", "--json")
	assert.JSONEq(t, `{"system":"be brief","messages":[{"role":"user"}]}`, out)
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	h.create("greeting", `{"model":"small","template":"Hello {{name}}\n"}`)

	out := h.mustRun("export")
	assert.Equal(t, "{\n  \"model\": \"small\",\n  \"template\": \"Hello {{name}}\\n\"\n}\n", out)

	yamlPath := filepath.Join(h.dir, "greeting.yaml")
	h.mustRun("export", "-o", yamlPath)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: small")

	mdPath := filepath.Join(h.dir, "greeting.md")
	h.mustRun("export", "-o", mdPath)
	data, err = os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "---\nmodel: small\n---\nHello {{name}}\n", string(data))

	h.mustRun("import", yamlPath)
	snap := h.snapshot()
	require.Len(t, snap.Documents, 2)
	assert.Equal(t, "greeting", snap.Documents[1].Name, "name defaults to the file name")

	h.mustRun("import", mdPath, "--name", "from-md")
	assert.JSONEq(t, `{"model":"small","template":"Hello {{name}}\n"}`, h.mustRun("get"))

	other := testutil.WriteFile(t, h.dir, "other.json", `{"replaced":true}`)
	h.mustRun("import", other, "--replace", "from-md")
	assert.JSONEq(t, `{"replaced":true}`, h.mustRun("get"))
	assert.Len(t, h.snapshot().Documents, 3)
}

func TestExportAll(t *testing.T) {
	h := newHarness(t)
	h.create("Code Review", `{"model":"large"}`)
	h.create("code review", `{"model":"small"}`)
	h.create("???", `{}`)

	_, err := h.run("export", "--all")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	dir := filepath.Join(h.dir, "exported")
	h.mustRun("export", "--all", "--format", "yaml", "-o", dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 3)
	assert.Contains(t, names, "code-review.yaml")
	assert.Contains(t, names, "code-review-2.yaml")

	data, err := os.ReadFile(filepath.Join(dir, "code-review-2.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: small")
}

func TestQuery(t *testing.T) {
	h := newHarness(t)
	h.create("chat", `{"messages":[{"role":"system","content":"a"},{"role":"user","content":"b"}]}`)

	assert.Equal(t, "\"b\"\n", h.mustRun("query", `messages[role="user"].content`))
	assert.Equal(t, "2\n", h.mustRun("query", `$count(messages)`))
	assert.Empty(t, h.mustRun("query", `nothing`))

	_, err := h.run("query", `messages[`)
	assert.True(t, errors.Is(err, errors.ErrCodeQueryFailed))
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "schema")
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "Grove Prompts Configuration", schema["title"])

	out = h.mustRun("config", "show")
	assert.Contains(t, out, "highlight: auto")

	configPath := testutil.WriteFile(t, h.dir, "custom.yml", "editor:\n  theme: monokai\n")
	out = h.mustRun("config", "show", "--config", configPath)
	assert.Contains(t, out, "theme: monokai")
}

func TestConfiguredStoragePath(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	storePath := filepath.Join(dir, "custom", "store.json")
	testutil.WriteFile(t, dir, "prompts.yml", "storage:\n  path: "+storePath+"\n")

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"new", "configured"})
	require.NoError(t, root.Execute())

	snap, err := prompts.LoadSnapshot(storePath)
	require.NoError(t, err)
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, "configured", snap.Documents[0].Name)
}

func TestSnapshotSaver(t *testing.T) {
	path := testutil.SnapshotPath(t)
	store := prompts.New(prompts.WithClock(testutil.FixedClock()), prompts.WithIDGenerator(testutil.SequentialIDs("doc")))
	loaded := prompts.SnapshotOf(store.State())
	saver := newSnapshotSaver(path, logging.NewLogger("test"), loaded)

	wrote, err := saver.Save(store.State())
	require.NoError(t, err)
	assert.False(t, wrote, "unchanged state is not written")

	store.CreateDocument("a", testutil.MustObject(t, `{"x":1}`))
	wrote, err = saver.Save(store.State())
	require.NoError(t, err)
	assert.True(t, wrote)

	store.SetSelectedPath([]string{"x"})
	wrote, err = saver.Save(store.State())
	require.NoError(t, err)
	assert.False(t, wrote, "selection is not persisted")

	onDisk, err := prompts.LoadSnapshot(path)
	require.NoError(t, err)
	assert.False(t, saver.Observe(onDisk), "our own write is not a reload")

	store.UpdateValue([]string{"x"}, 2.0)
	external := prompts.SnapshotOf(store.State())
	assert.True(t, saver.Observe(external))
	wrote, err = saver.Save(store.State())
	require.NoError(t, err)
	assert.False(t, wrote, "an observed snapshot is not written back")
}
