package main

import (
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "prompts-version",
		Tags: []string{"cli"},
		Steps: []harness.Step{
			harness.NewStep("Run 'prompts version'", func(ctx *harness.Context) error {
				out, err := mustSucceed(ctx, "version")
				if err != nil {
					return err
				}
				if err := assert.Contains(out, "prompts:", "Output should contain the version"); err != nil {
					return err
				}
				return assert.Contains(out, "platform:", "Output should contain the platform")
			}),
		},
	}
}

// DocumentLifecycleScenario creates, lists, switches and deletes documents.
func DocumentLifecycleScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-document-lifecycle",
		Description: "Creates documents, switches the current one and deletes it.",
		Tags:        []string{"cli", "documents"},
		Steps: []harness.Step{
			harness.NewStep("Create two documents", func(ctx *harness.Context) error {
				if _, err := mustSucceed(ctx, "new", "greeting", "--content", `{"system":"be brief"}`); err != nil {
					return err
				}
				_, err := mustSucceed(ctx, "new", "review", "--description", "Code review")
				return err
			}),
			harness.NewStep("List shows both, review is current", func(ctx *harness.Context) error {
				out, err := mustSucceed(ctx, "list")
				if err != nil {
					return err
				}
				if err := assert.Contains(out, "greeting", "greeting should be listed"); err != nil {
					return err
				}
				return assert.Contains(out, "review", "review should be listed")
			}),
			harness.NewStep("Switch to greeting and read it", func(ctx *harness.Context) error {
				if _, err := mustSucceed(ctx, "use", "greeting"); err != nil {
					return err
				}
				out, err := mustSucceed(ctx, "get", "system", "--raw")
				if err != nil {
					return err
				}
				return assert.Equal("be brief\n", out, "get --raw prints the plain string")
			}),
			harness.NewStep("Delete the current document", func(ctx *harness.Context) error {
				if _, err := mustSucceed(ctx, "delete", "greeting"); err != nil {
					return err
				}
				out, err := runPrompts(ctx, "get")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, out.ExitCode, "get without a current document fails"); err != nil {
					return err
				}
				return assert.Contains(out.Stderr, "No current document", "error names the missing selection")
			}),
		},
	}
}

// ValueEditingScenario drives every value command against one document.
func ValueEditingScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-value-editing",
		Description: "Sets, appends, adds and removes values by path.",
		Tags:        []string{"cli", "values"},
		Steps: []harness.Step{
			harness.NewStep("Edit values", func(ctx *harness.Context) error {
				steps := [][]string{
					{"new", "chat", "--content", `{"model":"small","messages":[]}`},
					{"set", "temperature", "0.2"},
					{"set", "options.stream", "true"},
					{"append", "messages", `{"role":"user","content":"hi"}`},
					{"add-key", "messages.0", "name", "ada"},
					{"rm", "model"},
				}
				for _, args := range steps {
					if _, err := mustSucceed(ctx, args...); err != nil {
						return err
					}
				}
				return nil
			}),
			harness.NewStep("Show the resulting tree", func(ctx *harness.Context) error {
				out, err := mustSucceed(ctx, "show", "--expand-all")
				if err != nil {
					return err
				}
				for _, want := range []string{"temperature: 0.2", "stream: true", `role: "user"`, `name: "ada"`} {
					if err := assert.Contains(out, want, fmt.Sprintf("tree should show %s", want)); err != nil {
						return err
					}
				}
				return assert.NotContains(out, "model", "removed key should be gone")
			}),
			harness.NewStep("Array items cannot be removed", func(ctx *harness.Context) error {
				out, err := runPrompts(ctx, "rm", "messages.0")
				if err != nil {
					return err
				}
				return assert.Equal(1, out.ExitCode, "rm through an array fails")
			}),
		},
	}
}

// MarkdownRoundTripScenario exports a document as markdown and imports it back.
func MarkdownRoundTripScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-markdown-round-trip",
		Description: "Exports frontmatter markdown and re-imports it under a new name.",
		Tags:        []string{"cli", "transfer"},
		Steps: []harness.Step{
			harness.NewStep("Export and import markdown", func(ctx *harness.Context) error {
				if _, err := mustSucceed(ctx, "new", "summarize", "--content", `{"model":"small","template":"Summarize {{text}}\n"}`); err != nil {
					return err
				}
				mdPath := filepath.Join(ctx.RootDir, "summarize.md")
				if _, err := mustSucceed(ctx, "export", "-o", mdPath); err != nil {
					return err
				}
				content, err := fs.ReadString(mdPath)
				if err != nil {
					return err
				}
				if err := assert.Equal("---\nmodel: small\n---\nSummarize {{text}}\n", content, "markdown export"); err != nil {
					return err
				}

				if _, err := mustSucceed(ctx, "import", mdPath, "--name", "copy"); err != nil {
					return err
				}
				out, err := mustSucceed(ctx, "query", "template")
				if err != nil {
					return err
				}
				return assert.Equal("\"Summarize {{text}}\\n\"\n", out, "template survives the round trip")
			}),
		},
	}
}

// ConfigStoragePathScenario verifies storage.path from prompts.yml is used.
func ConfigStoragePathScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-config-storage-path",
		Description: "A project prompts.yml moves the snapshot file.",
		Tags:        []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Create a document with a configured store", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("project")
				configured := filepath.Join(projectDir, "data", "prompts.json")
				if err := fs.WriteString(filepath.Join(projectDir, "prompts.yml"), "storage:\n  path: "+configured+"\n"); err != nil {
					return err
				}

				bin, err := findPromptsBinary()
				if err != nil {
					return err
				}
				cmd := ctx.Command(bin, "new", "configured").Dir(projectDir)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("`prompts new` failed: %w", result.Error)
				}

				content, err := fs.ReadString(configured)
				if err != nil {
					return fmt.Errorf("snapshot not written to configured path: %w", err)
				}
				return assert.Contains(content, `"name": "configured"`, "snapshot holds the document")
			}),
		},
	}
}

// ConfigInvalidScenario verifies invalid configuration is reported.
func ConfigInvalidScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "prompts-config-invalid",
		Tags: []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Reject an unknown highlight mode", func(ctx *harness.Context) error {
				configPath := filepath.Join(ctx.RootDir, "bad.yml")
				if err := fs.WriteString(configPath, "editor:\n  highlight: sometimes\n"); err != nil {
					return err
				}
				out, err := runPrompts(ctx, "config", "show", "--config", configPath)
				if err != nil {
					return err
				}
				if err := assert.Equal(1, out.ExitCode, "invalid config fails"); err != nil {
					return err
				}
				return assert.Contains(out.Stderr, "editor.highlight", "error names the field")
			}),
		},
	}
}
