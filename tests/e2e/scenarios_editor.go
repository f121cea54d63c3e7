package main

import (
	"fmt"
	"time"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

const editorContent = `{"system":"be brief","messages":[{"role":"user"}],"temperature":0.2}`

// startEditor creates the "chat" document and opens it in the editor.
func startEditor(ctx *harness.Context) error {
	if _, err := mustSucceed(ctx, "new", "chat", "--content", editorContent); err != nil {
		return err
	}
	bin, err := findPromptsBinary()
	if err != nil {
		return err
	}
	session, err := ctx.StartTUI(bin, []string{"--store", storePath(ctx), "edit"})
	if err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}
	ctx.Set("tui_session", session)

	if err := session.WaitForText("chat", 10*time.Second); err != nil {
		content, _ := session.Capture()
		return fmt.Errorf("editor did not open: %w\nContent: %s", err, content)
	}
	return session.WaitStable()
}

func sendKeys(session *tui.Session, keys ...string) error {
	for _, k := range keys {
		if err := session.SendKeys(k); err != nil {
			return fmt.Errorf("failed to send %q: %w", k, err)
		}
	}
	return session.WaitStable()
}

// EditorNavigationScenario expands a node and edits a value in the editor.
func EditorNavigationScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-editor-navigation",
		Description: "Expands nodes and edits a value in the tree editor, then checks it was saved.",
		Tags:        []string{"tui", "editor"},
		Steps: []harness.Step{
			harness.NewStep("Open the editor", startEditor),
			harness.NewStep("Collapsed tree shows summaries", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := session.AssertContains(`system: "be brief"`); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("system row missing: %w\nContent: %s", err, content)
				}
				return session.AssertContains("[1 items]")
			}),
			harness.NewStep("Expand messages", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendKeys(session, "j", "l"); err != nil {
					return err
				}
				if err := session.AssertContains("[0]"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("array item not shown: %w\nContent: %s", err, content)
				}
				return nil
			}),
			harness.NewStep("Edit temperature", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendKeys(session, "G", "e", "C-u"); err != nil {
					return err
				}
				if err := sendKeys(session, "0.7", "Enter"); err != nil {
					return err
				}
				if err := session.WaitForText("temperature: 0.7", 2*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("edited value not shown: %w\nContent: %s", err, content)
				}
				return nil
			}),
			harness.NewStep("Quit and read the saved value", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := session.SendKeys("q"); err != nil {
					return err
				}
				out, err := mustSucceed(ctx, "get", "temperature")
				if err != nil {
					return err
				}
				return assert.Equal("0.7\n", out, "edit was saved")
			}),
		},
	}
}

// EditorReloadScenario changes the snapshot from the CLI while the editor is
// open.
func EditorReloadScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "prompts-editor-reload",
		Description: "The editor picks up changes another process writes to the snapshot.",
		Tags:        []string{"tui", "editor", "watch"},
		Steps: []harness.Step{
			harness.NewStep("Open the editor", startEditor),
			harness.NewStep("Change a value from the CLI", func(ctx *harness.Context) error {
				_, err := mustSucceed(ctx, "set", "system", "changed elsewhere")
				return err
			}),
			harness.NewStep("Editor shows the new value", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := session.WaitForText(`"changed elsewhere"`, 5*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("editor did not reload: %w\nContent: %s", err, content)
				}
				return session.SendKeys("q")
			}),
		},
	}
}
